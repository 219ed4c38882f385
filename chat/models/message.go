package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Field limits
const (
	SenderNameMaxLength = 30
	MessageMaxLength    = 500
)

// Message represents one line in the shared chat room. Anonymous visitors can
// send with just a name, so the user and profile references are nullable.
type Message struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	UserID     uuid.NullUUID `db:"user_id" json:"userId"`
	ProfileID  uuid.NullUUID `db:"profile_id" json:"profileId"`
	SenderName string        `db:"sender_name" json:"senderName"`
	Avatar     string        `db:"avatar" json:"avatar"`
	Message    string        `db:"message" json:"message"`
	ReplyToID  uuid.NullUUID `db:"reply_to_id" json:"replyToId"`
	CreatedAt  time.Time     `db:"created_at" json:"createdAt"`
}
