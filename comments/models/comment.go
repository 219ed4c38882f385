package models

import (
	"sort"
	"time"

	uuid "github.com/gofrs/uuid"
)

// ContentMaxLength bounds the comment body.
const ContentMaxLength = 300

// Comment represents a single comment on a post. ParentID links replies to
// their parent comment; root comments have a null parent.
type Comment struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	PostID       uuid.UUID     `db:"post_id" json:"postId"`
	UserID       uuid.UUID     `db:"user_id" json:"userId"`
	AuthorName   string        `db:"author_name" json:"authorName"`
	AuthorAvatar string        `db:"author_avatar" json:"authorAvatar"`
	Content      string        `db:"content" json:"content"`
	ParentID     uuid.NullUUID `db:"parent_id" json:"parentId"`
	CreatedAt    time.Time     `db:"created_at" json:"createdAt"`
}

// CommentNode is a comment with its direct replies attached.
type CommentNode struct {
	*Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildTree assembles a flat comment list into a reply tree in a single pass.
// Children are sorted oldest-first at every level. A comment whose parent is
// missing from the list (deleted) is promoted to a root rather than dropped.
func BuildTree(comments []*Comment) []*CommentNode {
	nodes := make(map[uuid.UUID]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentNode{Comment: c, Replies: []*CommentNode{}}
	}

	roots := []*CommentNode{}
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID.Valid {
			if parent, ok := nodes[c.ParentID.UUID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortNodes(roots)
	for _, node := range nodes {
		sortNodes(node.Replies)
	}

	return roots
}

func sortNodes(nodes []*CommentNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
	})
}
