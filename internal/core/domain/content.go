package domain

import "time"

// BlogPost is a published or draft article on the public blog.
type BlogPost struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Content     string         `json:"content"`
	Excerpt     string         `json:"excerpt,omitempty"`
	CoverImage  string         `json:"cover_image,omitempty"`
	AuthorID    string         `json:"author_id"`
	Published   bool           `json:"published"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Tags        []string       `json:"tags"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Project is a portfolio entry.
type Project struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Slug         string         `json:"slug"`
	Description  string         `json:"description"`
	Content      string         `json:"content"`
	CoverImage   string         `json:"cover_image,omitempty"`
	AuthorID     string         `json:"author_id"`
	Published    bool           `json:"published"`
	PublishedAt  *time.Time     `json:"published_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Tags         []string       `json:"tags"`
	Technologies []string       `json:"technologies"`
	LiveURL      string         `json:"live_url,omitempty"`
	GithubURL    string         `json:"github_url,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}
