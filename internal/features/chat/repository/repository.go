package repository

import (
	"context"

	"github.com/aviato-app/aviato-backend/internal/features/chat/models"
)

type ChatRepository interface {
	Create(ctx context.Context, conv *models.Conversation) error
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	// GetByPair returns the conversation between two users, or
	// models.ErrConversationNotFound.
	GetByPair(ctx context.Context, a, b string) (*models.Conversation, error)
	Update(ctx context.Context, conv *models.Conversation) error
	ListByUser(ctx context.Context, userID string) ([]*models.Conversation, error)
	ListAll(ctx context.Context) ([]*models.Conversation, error)
	// CountActiveSince counts the user's conversations holding at least one
	// message whose round started after sinceMs. This is the orange-mode
	// session count.
	CountActiveSince(ctx context.Context, userID string, sinceMs int64) (int, error)
}
