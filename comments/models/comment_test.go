package models

import (
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewV4()
	require.NoError(t, err)
	return id
}

func makeComment(t *testing.T, parent *uuid.UUID, createdAt time.Time) *Comment {
	t.Helper()
	c := &Comment{
		ID:        newID(t),
		PostID:    uuid.UUID{},
		Content:   "hi",
		CreatedAt: createdAt,
	}
	if parent != nil {
		c.ParentID = uuid.NullUUID{UUID: *parent, Valid: true}
	}
	return c
}

func TestBuildTree(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("empty input yields empty tree", func(t *testing.T) {
		assert.Empty(t, BuildTree(nil))
		assert.Empty(t, BuildTree([]*Comment{}))
	})

	t.Run("flat comments stay roots oldest first", func(t *testing.T) {
		c1 := makeComment(t, nil, base.Add(2*time.Minute))
		c2 := makeComment(t, nil, base)
		c3 := makeComment(t, nil, base.Add(time.Minute))

		tree := BuildTree([]*Comment{c1, c2, c3})

		require.Len(t, tree, 3)
		assert.Equal(t, c2.ID, tree[0].ID)
		assert.Equal(t, c3.ID, tree[1].ID)
		assert.Equal(t, c1.ID, tree[2].ID)
	})

	t.Run("replies nest under their parent", func(t *testing.T) {
		root := makeComment(t, nil, base)
		reply1 := makeComment(t, &root.ID, base.Add(3*time.Minute))
		reply2 := makeComment(t, &root.ID, base.Add(time.Minute))
		nested := makeComment(t, &reply2.ID, base.Add(5*time.Minute))

		tree := BuildTree([]*Comment{root, reply1, reply2, nested})

		require.Len(t, tree, 1)
		require.Len(t, tree[0].Replies, 2)
		// Children sorted oldest first.
		assert.Equal(t, reply2.ID, tree[0].Replies[0].ID)
		assert.Equal(t, reply1.ID, tree[0].Replies[1].ID)
		require.Len(t, tree[0].Replies[0].Replies, 1)
		assert.Equal(t, nested.ID, tree[0].Replies[0].Replies[0].ID)
	})

	t.Run("orphans are promoted to roots", func(t *testing.T) {
		missingParent := newID(t)
		root := makeComment(t, nil, base)
		orphan := makeComment(t, &missingParent, base.Add(time.Minute))

		tree := BuildTree([]*Comment{root, orphan})

		require.Len(t, tree, 2)
		assert.Equal(t, root.ID, tree[0].ID)
		assert.Equal(t, orphan.ID, tree[1].ID)
		assert.Empty(t, tree[1].Replies)
	})

	t.Run("replies slice is never nil", func(t *testing.T) {
		root := makeComment(t, nil, base)

		tree := BuildTree([]*Comment{root})

		require.Len(t, tree, 1)
		assert.NotNil(t, tree[0].Replies)
	})
}
