package services

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"

	commenterrors "github.com/nuoidev/api/comments/errors"
	"github.com/nuoidev/api/comments/models"
	"github.com/nuoidev/api/comments/repository"
	"github.com/nuoidev/api/internal/types"
	posterrors "github.com/nuoidev/api/posts/errors"
	postrepository "github.com/nuoidev/api/posts/repository"
)

// CreateCommentInput carries the fields for a new comment.
type CreateCommentInput struct {
	PostID   uuid.UUID
	Content  string
	ParentID *uuid.UUID
}

// CommentService defines the business operations of the comments module.
type CommentService interface {
	CreateComment(ctx context.Context, author *types.UserContext, input CreateCommentInput) (*models.Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]*models.CommentNode, error)
	DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    postrepository.PostRepository
}

// NewCommentService creates a comment service with its dependencies injected
func NewCommentService(commentRepo repository.CommentRepository, postRepo postrepository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment adds a comment to a post. The post must exist and a parent
// comment, when given, must belong to the same post. The post's denormalized
// comment count is recomputed in the same transaction.
func (s *commentService) CreateComment(ctx context.Context, author *types.UserContext, input CreateCommentInput) (*models.Comment, error) {
	commentID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment id: %w", err)
	}

	comment := &models.Comment{
		ID:           commentID,
		PostID:       input.PostID,
		UserID:       author.UserID,
		AuthorName:   author.DisplayName,
		AuthorAvatar: author.Avatar,
		Content:      input.Content,
	}
	if comment.AuthorName == "" {
		comment.AuthorName = author.Username
	}
	if input.ParentID != nil {
		comment.ParentID = uuid.NullUUID{UUID: *input.ParentID, Valid: true}
	}

	err = s.commentRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.postRepo.FindByID(txCtx, input.PostID); err != nil {
			if errors.Is(err, posterrors.ErrPostNotFound) {
				return commenterrors.ErrPostNotFound
			}
			return err
		}

		if input.ParentID != nil {
			parent, err := s.commentRepo.FindByID(txCtx, *input.ParentID)
			if err != nil {
				return err
			}
			if parent.PostID != input.PostID {
				return commenterrors.ErrParentMismatch
			}
		}

		if err := s.commentRepo.Create(txCtx, comment); err != nil {
			return err
		}

		return s.refreshCommentCount(txCtx, input.PostID)
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// ListComments returns the reply tree for a post
func (s *commentService) ListComments(ctx context.Context, postID uuid.UUID) ([]*models.CommentNode, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, posterrors.ErrPostNotFound) {
			return nil, commenterrors.ErrPostNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.FindByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return models.BuildTree(comments), nil
}

// DeleteComment removes a comment after verifying ownership. Replies stay in
// place; listing promotes them to roots once the parent is gone.
func (s *commentService) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return commenterrors.ErrPermissionDenied
	}

	return s.commentRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.commentRepo.Delete(txCtx, commentID); err != nil {
			return err
		}
		return s.refreshCommentCount(txCtx, comment.PostID)
	})
}

// refreshCommentCount recomputes the denormalized counter from the source rows
func (s *commentService) refreshCommentCount(ctx context.Context, postID uuid.UUID) error {
	count, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return err
	}
	return s.postRepo.SetCommentCount(ctx, postID, count)
}
