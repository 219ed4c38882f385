package services

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"
	"github.com/lib/pq"

	"github.com/nuoidev/api/internal/types"
	posterrors "github.com/nuoidev/api/posts/errors"
	"github.com/nuoidev/api/posts/models"
	"github.com/nuoidev/api/posts/repository"
	profileerrors "github.com/nuoidev/api/profiles/errors"
	profileservices "github.com/nuoidev/api/profiles/services"
)

const (
	// DefaultListLimit and MaxListLimit bound the board feed pagination.
	DefaultListLimit = 20
	MaxListLimit     = 50
)

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	Content         string
	Type            string
	TargetProfileID *uuid.UUID
	Images          []string
}

// PostList is a paginated feed page.
type PostList struct {
	Posts  []*models.Post `json:"posts"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// PostService defines the business operations of the posts module.
type PostService interface {
	CreatePost(ctx context.Context, author *types.UserContext, input CreatePostInput) (*models.Post, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, limit, offset int) (*PostList, error)
	DeletePost(ctx context.Context, postID, userID uuid.UUID) error
	LikePost(ctx context.Context, postID uuid.UUID) (int64, error)
	TogglePin(ctx context.Context, postID, userID uuid.UUID) (*models.Post, error)
}

type postService struct {
	postRepo       repository.PostRepository
	profileService profileservices.ProfileService
}

// NewPostService creates a post service with its dependencies injected
func NewPostService(postRepo repository.PostRepository, profileService profileservices.ProfileService) PostService {
	return &postService{
		postRepo:       postRepo,
		profileService: profileService,
	}
}

// CreatePost creates a post, snapshotting the author's display name and avatar.
// Support calls must reference an existing profile.
func (s *postService) CreatePost(ctx context.Context, author *types.UserContext, input CreatePostInput) (*models.Post, error) {
	if input.Type == models.PostTypeSupportCall {
		if input.TargetProfileID == nil {
			return nil, posterrors.ErrTargetProfileNotFound
		}
		if _, err := s.profileService.GetProfile(ctx, *input.TargetProfileID); err != nil {
			if errors.Is(err, profileerrors.ErrProfileNotFound) {
				return nil, posterrors.ErrTargetProfileNotFound
			}
			return nil, err
		}
	}

	postID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate post id: %w", err)
	}

	post := &models.Post{
		ID:           postID,
		UserID:       author.UserID,
		AuthorName:   author.DisplayName,
		AuthorAvatar: author.Avatar,
		Content:      input.Content,
		Type:         input.Type,
		Images:       pq.StringArray(input.Images),
	}
	if input.Type == models.PostTypeSupportCall && input.TargetProfileID != nil {
		post.TargetProfileID = uuid.NullUUID{UUID: *input.TargetProfileID, Valid: true}
	}
	if post.AuthorName == "" {
		post.AuthorName = author.Username
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetPost retrieves a single post
func (s *postService) GetPost(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	return s.postRepo.FindByID(ctx, postID)
}

// ListPosts retrieves a feed page, pinned posts first
func (s *postService) ListPosts(ctx context.Context, limit, offset int) (*PostList, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := s.postRepo.Find(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &PostList{
		Posts:  posts,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// DeletePost removes a post after verifying ownership
func (s *postService) DeletePost(ctx context.Context, postID, userID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return posterrors.ErrPermissionDenied
	}

	return s.postRepo.Delete(ctx, postID)
}

// LikePost increments the like counter. Likes are open to everyone and carry
// no per-user dedupe.
func (s *postService) LikePost(ctx context.Context, postID uuid.UUID) (int64, error) {
	return s.postRepo.IncrementLikes(ctx, postID)
}

// TogglePin flips the pinned flag after verifying ownership
func (s *postService) TogglePin(ctx context.Context, postID, userID uuid.UUID) (*models.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, posterrors.ErrPermissionDenied
	}

	if err := s.postRepo.SetPinned(ctx, postID, !post.Pinned); err != nil {
		return nil, err
	}
	post.Pinned = !post.Pinned

	return post, nil
}
