package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/lib/pq"
)

// Post types
const (
	// PostTypeNormal is a regular board update.
	PostTypeNormal = "normal"
	// PostTypeSupportCall rallies votes for a target profile.
	PostTypeSupportCall = "support_call"
)

// MaxImages bounds the number of image URLs a post may carry.
const MaxImages = 3

// Post represents a board post. Author name and avatar are snapshotted at
// creation so posts survive later account edits unchanged.
type Post struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	UserID          uuid.UUID      `db:"user_id" json:"userId"`
	AuthorName      string         `db:"author_name" json:"authorName"`
	AuthorAvatar    string         `db:"author_avatar" json:"authorAvatar"`
	Content         string         `db:"content" json:"content"`
	Type            string         `db:"type" json:"type"`
	TargetProfileID uuid.NullUUID  `db:"target_profile_id" json:"targetProfileId"`
	Images          pq.StringArray `db:"images" json:"images"`
	Likes           int64          `db:"likes" json:"likes"`
	CommentCount    int64          `db:"comment_count" json:"commentCount"`
	Pinned          bool           `db:"pinned" json:"pinned"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
}

// IsValidType checks the post type discriminator.
func IsValidType(postType string) bool {
	return postType == PostTypeNormal || postType == PostTypeSupportCall
}
