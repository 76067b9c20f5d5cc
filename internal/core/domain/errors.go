package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrIdentityNotFound = errors.New("identity not found")
var ErrProfileNotFound = errors.New("profile not found")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")
var ErrPostNotFound = errors.New("blog post not found")
var ErrProjectNotFound = errors.New("project not found")
var ErrSlugExists = errors.New("slug already exists")
