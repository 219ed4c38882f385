package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// User represents a user account record
type User struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	Password    []byte    `db:"password_hash" json:"-"`
	DisplayName string    `db:"display_name" json:"displayName"`
	Avatar      string    `db:"avatar" json:"avatar"`
	Role        string    `db:"role" json:"role"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// PublicUser is the user payload returned to clients. It never carries the
// password hash.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Public converts a User to its client-safe representation.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

// UserUpdate represents mutable user account fields.
type UserUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Password    []byte  `json:"-"`
}
