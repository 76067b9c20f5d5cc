package domain

import "time"

// Profile is the persisted application record keyed 1:1 by Identity.ID.
// Every authenticated identity is expected to have exactly one profile;
// a missing profile is an authorization failure, never a default role.
type Profile struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
