package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Vote is one immutable ledger row: one voter backing one profile at one
// point in time. Rows are only ever appended; vote totals and ranks are
// derived by recounting, never by mutating rows.
type Vote struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ProfileID uuid.UUID `db:"profile_id" json:"profileId"`
	VoterID   string    `db:"voter_id" json:"voterId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
