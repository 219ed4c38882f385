package services

import (
	"context"
	"fmt"

	uuid "github.com/gofrs/uuid"

	"github.com/nuoidev/api/chat/models"
	"github.com/nuoidev/api/chat/repository"
	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/pkg/log"
	"github.com/nuoidev/api/internal/types"
)

const (
	// RetentionLimit is how many messages the room keeps. Older rows are
	// pruned after each send.
	RetentionLimit = 500

	// DefaultWindow and MaxWindow bound the read window.
	DefaultWindow = 200
	MaxWindow     = RetentionLimit

	// recentCacheKey stores the cached default read window.
	recentCacheKey = "chat:recent"
)

// SendMessageInput carries the fields for a new chat message.
type SendMessageInput struct {
	SenderName string
	Message    string
	ReplyToID  *uuid.UUID
}

// ChatService defines the business operations of the chat module.
type ChatService interface {
	// SendMessage posts a message to the shared room. user may be nil for
	// anonymous senders, who must provide a name.
	SendMessage(ctx context.Context, user *types.UserContext, input SendMessageInput) (*models.Message, error)

	// RecentMessages returns the latest messages oldest first.
	RecentMessages(ctx context.Context, limit int) ([]*models.Message, error)
}

type chatService struct {
	messageRepo  repository.MessageRepository
	cacheService *cache.GenericCacheService
}

// NewChatService creates a chat service with its dependencies injected.
// cacheService may be nil; reads then always hit the database.
func NewChatService(messageRepo repository.MessageRepository, cacheService *cache.GenericCacheService) ChatService {
	return &chatService{
		messageRepo:  messageRepo,
		cacheService: cacheService,
	}
}

// SendMessage stores the message and prunes the room down to the retention
// limit in the same transaction. Authenticated senders write under their
// account identity; their display name wins over any name in the request.
func (s *chatService) SendMessage(ctx context.Context, user *types.UserContext, input SendMessageInput) (*models.Message, error) {
	messageID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate message id: %w", err)
	}

	message := &models.Message{
		ID:         messageID,
		SenderName: input.SenderName,
		Message:    input.Message,
	}
	if input.ReplyToID != nil {
		message.ReplyToID = uuid.NullUUID{UUID: *input.ReplyToID, Valid: true}
	}
	if user != nil {
		message.UserID = uuid.NullUUID{UUID: user.UserID, Valid: true}
		message.Avatar = user.Avatar
		if user.ProfileID != uuid.Nil {
			message.ProfileID = uuid.NullUUID{UUID: user.ProfileID, Valid: true}
		}
		if user.DisplayName != "" {
			message.SenderName = user.DisplayName
		} else if message.SenderName == "" {
			message.SenderName = user.Username
		}
	}

	err = s.messageRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.messageRepo.Create(txCtx, message); err != nil {
			return err
		}
		if _, err := s.messageRepo.Prune(txCtx, RetentionLimit); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRecent(ctx)

	return message, nil
}

// RecentMessages returns the latest messages oldest first. The default window
// is served cache-aside; custom windows always hit the database.
func (s *chatService) RecentMessages(ctx context.Context, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = DefaultWindow
	}
	if limit > MaxWindow {
		limit = MaxWindow
	}

	cacheable := limit == DefaultWindow
	if cacheable && s.cacheEnabled() {
		var cached []*models.Message
		if err := s.cacheService.GetCached(ctx, recentCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	messages, err := s.messageRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	if cacheable && s.cacheEnabled() {
		if err := s.cacheService.CacheData(ctx, recentCacheKey, messages); err != nil {
			log.Warn("Failed to cache recent chat window: %v", err)
		}
	}

	return messages, nil
}

func (s *chatService) cacheEnabled() bool {
	return s.cacheService != nil && s.cacheService.IsEnabled()
}

func (s *chatService) invalidateRecent(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cacheService.InvalidateKey(ctx, recentCacheKey); err != nil && err != cache.ErrKeyNotFound {
		log.Warn("Failed to invalidate chat cache: %v", err)
	}
}
