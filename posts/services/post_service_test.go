package services

import (
	"context"
	"testing"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nuoidev/api/internal/types"
	posterrors "github.com/nuoidev/api/posts/errors"
	"github.com/nuoidev/api/posts/models"
	profileerrors "github.com/nuoidev/api/profiles/errors"
	profilemodels "github.com/nuoidev/api/profiles/models"
)

func testAuthor(t *testing.T) *types.UserContext {
	t.Helper()
	userID, err := uuid.NewV4()
	require.NoError(t, err)
	return &types.UserContext{
		UserID:      userID,
		Username:    "linhdev",
		DisplayName: "Linh",
		Avatar:      "https://cdn.example.com/a/linh.png",
	}
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("normal post snapshots author identity", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		profileService := new(MockProfileService)
		service := NewPostService(postRepo, profileService)
		author := testAuthor(t)

		postRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.UserID == author.UserID &&
				p.AuthorName == "Linh" &&
				p.AuthorAvatar == author.Avatar &&
				p.Type == models.PostTypeNormal &&
				!p.TargetProfileID.Valid
		})).Return(nil)

		post, err := service.CreatePost(ctx, author, CreatePostInput{
			Content: "shipped a thing today",
			Type:    models.PostTypeNormal,
		})

		require.NoError(t, err)
		assert.False(t, post.Pinned)
		assert.Zero(t, post.Likes)
		postRepo.AssertExpectations(t)
		profileService.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})

	t.Run("falls back to username when display name empty", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		profileService := new(MockProfileService)
		service := NewPostService(postRepo, profileService)
		author := testAuthor(t)
		author.DisplayName = ""

		postRepo.On("Create", ctx, mock.Anything).Return(nil)

		post, err := service.CreatePost(ctx, author, CreatePostInput{
			Content: "hello",
			Type:    models.PostTypeNormal,
		})

		require.NoError(t, err)
		assert.Equal(t, "linhdev", post.AuthorName)
	})

	t.Run("support call requires existing target profile", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		profileService := new(MockProfileService)
		service := NewPostService(postRepo, profileService)
		author := testAuthor(t)

		targetID, err := uuid.NewV4()
		require.NoError(t, err)

		profileService.On("GetProfile", ctx, targetID).
			Return(&profilemodels.Profile{ID: targetID, Name: "Mai"}, nil)
		postRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.Type == models.PostTypeSupportCall &&
				p.TargetProfileID.Valid &&
				p.TargetProfileID.UUID == targetID
		})).Return(nil)

		post, err := service.CreatePost(ctx, author, CreatePostInput{
			Content:         "vote for Mai!",
			Type:            models.PostTypeSupportCall,
			TargetProfileID: &targetID,
		})

		require.NoError(t, err)
		assert.True(t, post.TargetProfileID.Valid)
		postRepo.AssertExpectations(t)
	})

	t.Run("support call rejected when target missing", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		profileService := new(MockProfileService)
		service := NewPostService(postRepo, profileService)
		author := testAuthor(t)

		targetID, err := uuid.NewV4()
		require.NoError(t, err)

		profileService.On("GetProfile", ctx, targetID).
			Return(nil, profileerrors.ErrProfileNotFound)

		_, err = service.CreatePost(ctx, author, CreatePostInput{
			Content:         "vote!",
			Type:            models.PostTypeSupportCall,
			TargetProfileID: &targetID,
		})

		assert.ErrorIs(t, err, posterrors.ErrTargetProfileNotFound)
		postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("support call rejected without target", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		profileService := new(MockProfileService)
		service := NewPostService(postRepo, profileService)

		_, err := service.CreatePost(ctx, testAuthor(t), CreatePostInput{
			Content: "vote!",
			Type:    models.PostTypeSupportCall,
		})

		assert.ErrorIs(t, err, posterrors.ErrTargetProfileNotFound)
	})
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps limit and offset", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(MockProfileService))

		postRepo.On("Find", ctx, MaxListLimit, 0).Return([]*models.Post{}, nil)
		postRepo.On("Count", ctx).Return(int64(0), nil)

		list, err := service.ListPosts(ctx, 500, -3)

		require.NoError(t, err)
		assert.Equal(t, MaxListLimit, list.Limit)
		assert.Equal(t, 0, list.Offset)
		postRepo.AssertExpectations(t)
	})

	t.Run("defaults limit when unset", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(MockProfileService))

		postRepo.On("Find", ctx, DefaultListLimit, 0).Return([]*models.Post{}, nil)
		postRepo.On("Count", ctx).Return(int64(7), nil)

		list, err := service.ListPosts(ctx, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(7), list.Total)
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can delete", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(MockProfileService))
		author := testAuthor(t)

		postID, err := uuid.NewV4()
		require.NoError(t, err)

		postRepo.On("FindByID", ctx, postID).
			Return(&models.Post{ID: postID, UserID: author.UserID}, nil)
		postRepo.On("Delete", ctx, postID).Return(nil)

		require.NoError(t, service.DeletePost(ctx, postID, author.UserID))
		postRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(MockProfileService))

		postID, err := uuid.NewV4()
		require.NoError(t, err)
		ownerID, err := uuid.NewV4()
		require.NoError(t, err)
		strangerID, err := uuid.NewV4()
		require.NoError(t, err)

		postRepo.On("FindByID", ctx, postID).
			Return(&models.Post{ID: postID, UserID: ownerID}, nil)

		err = service.DeletePost(ctx, postID, strangerID)

		assert.ErrorIs(t, err, posterrors.ErrPermissionDenied)
		postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestLikePost(t *testing.T) {
	ctx := context.Background()

	t.Run("returns new like count", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(MockProfileService))

		postID, err := uuid.NewV4()
		require.NoError(t, err)

		postRepo.On("IncrementLikes", ctx, postID).Return(int64(42), nil)

		likes, err := service.LikePost(ctx, postID)

		require.NoError(t, err)
		assert.Equal(t, int64(42), likes)
	})

	t.Run("unknown post propagates not found", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(MockProfileService))

		postID, err := uuid.NewV4()
		require.NoError(t, err)

		postRepo.On("IncrementLikes", ctx, postID).
			Return(int64(0), posterrors.ErrPostNotFound)

		_, err = service.LikePost(ctx, postID)
		assert.ErrorIs(t, err, posterrors.ErrPostNotFound)
	})
}

func TestTogglePin(t *testing.T) {
	ctx := context.Background()

	t.Run("owner toggles pin on and off", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(MockProfileService))
		author := testAuthor(t)

		postID, err := uuid.NewV4()
		require.NoError(t, err)

		postRepo.On("FindByID", ctx, postID).
			Return(&models.Post{ID: postID, UserID: author.UserID, Pinned: false}, nil).Once()
		postRepo.On("SetPinned", ctx, postID, true).Return(nil).Once()

		post, err := service.TogglePin(ctx, postID, author.UserID)
		require.NoError(t, err)
		assert.True(t, post.Pinned)

		postRepo.On("FindByID", ctx, postID).
			Return(&models.Post{ID: postID, UserID: author.UserID, Pinned: true}, nil).Once()
		postRepo.On("SetPinned", ctx, postID, false).Return(nil).Once()

		post, err = service.TogglePin(ctx, postID, author.UserID)
		require.NoError(t, err)
		assert.False(t, post.Pinned)
		postRepo.AssertExpectations(t)
	})

	t.Run("non-owner cannot pin", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(MockProfileService))

		postID, err := uuid.NewV4()
		require.NoError(t, err)
		ownerID, err := uuid.NewV4()
		require.NoError(t, err)
		strangerID, err := uuid.NewV4()
		require.NoError(t, err)

		postRepo.On("FindByID", ctx, postID).
			Return(&models.Post{ID: postID, UserID: ownerID}, nil)

		_, err = service.TogglePin(ctx, postID, strangerID)

		assert.ErrorIs(t, err, posterrors.ErrPermissionDenied)
		postRepo.AssertNotCalled(t, "SetPinned", mock.Anything, mock.Anything, mock.Anything)
	})
}
