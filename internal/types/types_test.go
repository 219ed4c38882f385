package types

import (
	"testing"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVoterKey(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	t.Run("authenticated voter keys on user id", func(t *testing.T) {
		v := UserVoter(userID)
		assert.Equal(t, userID.String(), v.Key())
		assert.True(t, v.IsUser())
		assert.True(t, v.Valid())
	})

	t.Run("anonymous voter keys on token", func(t *testing.T) {
		v := AnonymousVoter("visitor_abc123")
		assert.Equal(t, "visitor_abc123", v.Key())
		assert.False(t, v.IsUser())
		assert.True(t, v.Valid())
	})

	t.Run("empty identity is invalid", func(t *testing.T) {
		assert.False(t, AnonymousVoter("").Valid())
		assert.False(t, UserVoter(uuid.Nil).Valid())
		assert.False(t, UserVoter(uuid.Nil).IsUser())
	})

	t.Run("nil user id is invalid despite non-empty key", func(t *testing.T) {
		// uuid.Nil stringifies to the all-zero UUID, so Key() alone cannot
		// tell a missing authenticated identity from a present one.
		v := UserVoter(uuid.Nil)
		assert.NotEmpty(t, v.Key())
		assert.False(t, v.Valid())
	})
}
