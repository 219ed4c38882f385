package services

import (
	"context"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	commenterrors "github.com/nuoidev/api/comments/errors"
	"github.com/nuoidev/api/comments/models"
	"github.com/nuoidev/api/internal/types"
	posterrors "github.com/nuoidev/api/posts/errors"
	postmodels "github.com/nuoidev/api/posts/models"
)

func newTestID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewV4()
	require.NoError(t, err)
	return id
}

func commentAuthor(t *testing.T) *types.UserContext {
	t.Helper()
	return &types.UserContext{
		UserID:      newTestID(t),
		Username:    "maker",
		DisplayName: "Mai",
		Avatar:      "https://cdn.example.com/a/mai.png",
	}
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("root comment created and count refreshed", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)
		author := commentAuthor(t)
		postID := newTestID(t)

		commentRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
		postRepo.On("FindByID", ctx, postID).Return(&postmodels.Post{ID: postID}, nil)
		commentRepo.On("Create", ctx, mock.MatchedBy(func(c *models.Comment) bool {
			return c.PostID == postID &&
				c.UserID == author.UserID &&
				c.AuthorName == "Mai" &&
				!c.ParentID.Valid
		})).Return(nil)
		commentRepo.On("CountByPost", ctx, postID).Return(int64(4), nil)
		postRepo.On("SetCommentCount", ctx, postID, int64(4)).Return(nil)

		comment, err := service.CreateComment(ctx, author, CreateCommentInput{
			PostID:  postID,
			Content: "nice one",
		})

		require.NoError(t, err)
		assert.Equal(t, "nice one", comment.Content)
		commentRepo.AssertExpectations(t)
		postRepo.AssertExpectations(t)
	})

	t.Run("unknown post rejected", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)
		postID := newTestID(t)

		commentRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
		postRepo.On("FindByID", ctx, postID).Return(nil, posterrors.ErrPostNotFound)

		_, err := service.CreateComment(ctx, commentAuthor(t), CreateCommentInput{
			PostID:  postID,
			Content: "hello?",
		})

		assert.ErrorIs(t, err, commenterrors.ErrPostNotFound)
		commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("reply to parent on same post", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)
		postID := newTestID(t)
		parentID := newTestID(t)

		commentRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
		postRepo.On("FindByID", ctx, postID).Return(&postmodels.Post{ID: postID}, nil)
		commentRepo.On("FindByID", ctx, parentID).
			Return(&models.Comment{ID: parentID, PostID: postID}, nil)
		commentRepo.On("Create", ctx, mock.MatchedBy(func(c *models.Comment) bool {
			return c.ParentID.Valid && c.ParentID.UUID == parentID
		})).Return(nil)
		commentRepo.On("CountByPost", ctx, postID).Return(int64(2), nil)
		postRepo.On("SetCommentCount", ctx, postID, int64(2)).Return(nil)

		_, err := service.CreateComment(ctx, commentAuthor(t), CreateCommentInput{
			PostID:   postID,
			Content:  "replying",
			ParentID: &parentID,
		})

		require.NoError(t, err)
		commentRepo.AssertExpectations(t)
	})

	t.Run("parent from another post rejected", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)
		postID := newTestID(t)
		otherPostID := newTestID(t)
		parentID := newTestID(t)

		commentRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
		postRepo.On("FindByID", ctx, postID).Return(&postmodels.Post{ID: postID}, nil)
		commentRepo.On("FindByID", ctx, parentID).
			Return(&models.Comment{ID: parentID, PostID: otherPostID}, nil)

		_, err := service.CreateComment(ctx, commentAuthor(t), CreateCommentInput{
			PostID:   postID,
			Content:  "replying",
			ParentID: &parentID,
		})

		assert.ErrorIs(t, err, commenterrors.ErrParentMismatch)
		commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown parent rejected", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)
		postID := newTestID(t)
		parentID := newTestID(t)

		commentRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
		postRepo.On("FindByID", ctx, postID).Return(&postmodels.Post{ID: postID}, nil)
		commentRepo.On("FindByID", ctx, parentID).
			Return(nil, commenterrors.ErrCommentNotFound)

		_, err := service.CreateComment(ctx, commentAuthor(t), CreateCommentInput{
			PostID:   postID,
			Content:  "replying",
			ParentID: &parentID,
		})

		assert.ErrorIs(t, err, commenterrors.ErrCommentNotFound)
	})
}

func TestListComments(t *testing.T) {
	ctx := context.Background()

	t.Run("returns assembled tree", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)
		postID := newTestID(t)

		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		root := &models.Comment{ID: newTestID(t), PostID: postID, CreatedAt: base}
		reply := &models.Comment{
			ID:        newTestID(t),
			PostID:    postID,
			ParentID:  uuid.NullUUID{UUID: root.ID, Valid: true},
			CreatedAt: base.Add(time.Minute),
		}

		postRepo.On("FindByID", ctx, postID).Return(&postmodels.Post{ID: postID}, nil)
		commentRepo.On("FindByPost", ctx, postID).
			Return([]*models.Comment{root, reply}, nil)

		tree, err := service.ListComments(ctx, postID)

		require.NoError(t, err)
		require.Len(t, tree, 1)
		require.Len(t, tree[0].Replies, 1)
		assert.Equal(t, reply.ID, tree[0].Replies[0].ID)
	})

	t.Run("unknown post rejected", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)
		postID := newTestID(t)

		postRepo.On("FindByID", ctx, postID).Return(nil, posterrors.ErrPostNotFound)

		_, err := service.ListComments(ctx, postID)
		assert.ErrorIs(t, err, commenterrors.ErrPostNotFound)
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes and count refreshes", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)
		userID := newTestID(t)
		postID := newTestID(t)
		commentID := newTestID(t)

		commentRepo.On("FindByID", ctx, commentID).
			Return(&models.Comment{ID: commentID, PostID: postID, UserID: userID}, nil)
		commentRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
		commentRepo.On("Delete", ctx, commentID).Return(nil)
		commentRepo.On("CountByPost", ctx, postID).Return(int64(1), nil)
		postRepo.On("SetCommentCount", ctx, postID, int64(1)).Return(nil)

		require.NoError(t, service.DeleteComment(ctx, commentID, userID))
		commentRepo.AssertExpectations(t)
		postRepo.AssertExpectations(t)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)
		commentID := newTestID(t)

		commentRepo.On("FindByID", ctx, commentID).
			Return(&models.Comment{ID: commentID, UserID: newTestID(t)}, nil)

		err := service.DeleteComment(ctx, commentID, newTestID(t))

		assert.ErrorIs(t, err, commenterrors.ErrPermissionDenied)
		commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
