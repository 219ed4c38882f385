package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/lib/pq"
)

// Profile represents a developer profile on the board.
// UserID is the owning account; community-created profiles without an owner
// keep it null.
type Profile struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	UserID      uuid.NullUUID  `json:"userId" db:"user_id"`
	Name        string         `json:"name" db:"name"`
	Nickname    string         `json:"nickname" db:"nickname"`
	Avatar      string         `json:"avatar" db:"avatar"`
	Bio         string         `json:"bio" db:"bio"`
	Skills      pq.StringArray `json:"skills" db:"skills"`
	FunFacts    pq.StringArray `json:"funFacts" db:"fun_facts"`
	Catchphrase string         `json:"catchphrase" db:"catchphrase"`
	Mood        string         `json:"mood" db:"mood"`
	Level       int            `json:"level" db:"level"`
	XP          int64          `json:"xp" db:"xp"`
	Votes       int64          `json:"votes" db:"votes"`
	Rank        Rank           `json:"rank" db:"rank"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil pointers leave
// the stored value untouched.
type UpdateProfileRequest struct {
	Name        *string   `json:"name,omitempty"`
	Nickname    *string   `json:"nickname,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
	FunFacts    *[]string `json:"funFacts,omitempty"`
	Catchphrase *string   `json:"catchphrase,omitempty"`
	Mood        *string   `json:"mood,omitempty"`
	Level       *int      `json:"level,omitempty"`
	XP          *int64    `json:"xp,omitempty"`
}

// ListQuery is the decoded query string for profile listing.
type ListQuery struct {
	Search string `schema:"search"`
	Limit  int    `schema:"limit"`
	Offset int    `schema:"offset"`
}
