package services

import (
	"context"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nuoidev/api/chat/models"
	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/types"
)

func newChatCache(t *testing.T) *cache.GenericCacheService {
	t.Helper()
	cfg := cache.DefaultCacheConfig()
	cfg.Prefix = "test:"
	mem := cache.NewMemoryCache(cfg)
	t.Cleanup(func() { mem.Close() })
	return cache.NewGenericCacheService(mem, cfg)
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous sender keeps provided name", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		service := NewChatService(messageRepo, nil)

		messageRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *models.Message) bool {
			return m.SenderName == "guest_42" &&
				!m.UserID.Valid &&
				!m.ProfileID.Valid
		})).Return(nil)
		messageRepo.On("Prune", ctx, RetentionLimit).Return(int64(0), nil)

		msg, err := service.SendMessage(ctx, nil, SendMessageInput{
			SenderName: "guest_42",
			Message:    "hello room",
		})

		require.NoError(t, err)
		assert.Equal(t, "hello room", msg.Message)
		messageRepo.AssertExpectations(t)
	})

	t.Run("authenticated identity wins over request name", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		service := NewChatService(messageRepo, nil)

		userID := uuid.Must(uuid.NewV4())
		profileID := uuid.Must(uuid.NewV4())
		user := &types.UserContext{
			UserID:      userID,
			Username:    "linhdev",
			DisplayName: "Linh",
			Avatar:      "https://cdn.example.com/a/linh.png",
			ProfileID:   profileID,
		}

		messageRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *models.Message) bool {
			return m.SenderName == "Linh" &&
				m.UserID.Valid && m.UserID.UUID == userID &&
				m.ProfileID.Valid && m.ProfileID.UUID == profileID &&
				m.Avatar == user.Avatar
		})).Return(nil)
		messageRepo.On("Prune", ctx, RetentionLimit).Return(int64(1), nil)

		_, err := service.SendMessage(ctx, user, SendMessageInput{
			SenderName: "Impostor",
			Message:    "it's me",
		})

		require.NoError(t, err)
		messageRepo.AssertExpectations(t)
	})

	t.Run("reply reference is carried", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		service := NewChatService(messageRepo, nil)

		replyTo := uuid.Must(uuid.NewV4())

		messageRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *models.Message) bool {
			return m.ReplyToID.Valid && m.ReplyToID.UUID == replyTo
		})).Return(nil)
		messageRepo.On("Prune", ctx, RetentionLimit).Return(int64(0), nil)

		_, err := service.SendMessage(ctx, nil, SendMessageInput{
			SenderName: "guest",
			Message:    "agreed",
			ReplyToID:  &replyTo,
		})

		require.NoError(t, err)
	})

	t.Run("send invalidates cached window", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		cacheService := newChatCache(t)
		service := NewChatService(messageRepo, cacheService)

		seed := []*models.Message{
			{ID: uuid.Must(uuid.NewV4()), SenderName: "a", Message: "first"},
		}

		// Fill the cache through a default-window read.
		messageRepo.On("FindRecent", ctx, DefaultWindow).Return(seed, nil).Once()
		first, err := service.RecentMessages(ctx, 0)
		require.NoError(t, err)
		require.Len(t, first, 1)

		// Cached now; no repo expectation needed.
		_, err = service.RecentMessages(ctx, 0)
		require.NoError(t, err)

		messageRepo.On("WithTransaction", ctx, mock.Anything).Return(nil)
		messageRepo.On("Create", ctx, mock.Anything).Return(nil)
		messageRepo.On("Prune", ctx, RetentionLimit).Return(int64(0), nil)

		_, err = service.SendMessage(ctx, nil, SendMessageInput{
			SenderName: "b",
			Message:    "second",
		})
		require.NoError(t, err)

		// The next read goes back to the repository.
		updated := append(seed, &models.Message{
			ID: uuid.Must(uuid.NewV4()), SenderName: "b", Message: "second",
			CreatedAt: time.Now().UTC(),
		})
		messageRepo.On("FindRecent", ctx, DefaultWindow).Return(updated, nil).Once()

		after, err := service.RecentMessages(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, after, 2)
		messageRepo.AssertExpectations(t)
	})
}

func TestRecentMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults and caps the window", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		service := NewChatService(messageRepo, nil)

		messageRepo.On("FindRecent", ctx, DefaultWindow).Return([]*models.Message{}, nil).Once()
		_, err := service.RecentMessages(ctx, -1)
		require.NoError(t, err)

		messageRepo.On("FindRecent", ctx, MaxWindow).Return([]*models.Message{}, nil).Once()
		_, err = service.RecentMessages(ctx, 10_000)
		require.NoError(t, err)

		messageRepo.AssertExpectations(t)
	})

	t.Run("custom window bypasses the cache", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		cacheService := newChatCache(t)
		service := NewChatService(messageRepo, cacheService)

		messageRepo.On("FindRecent", ctx, 50).Return([]*models.Message{}, nil).Twice()

		_, err := service.RecentMessages(ctx, 50)
		require.NoError(t, err)
		_, err = service.RecentMessages(ctx, 50)
		require.NoError(t, err)

		messageRepo.AssertExpectations(t)
	})
}
