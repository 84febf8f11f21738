package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aviato-app/aviato-backend/internal/features/chat/models"
	"github.com/aviato-app/aviato-backend/internal/features/chat/repository"
)

const (
	convKeyPrefix   = "conv:"
	pairKeyPrefix   = "conv:pair:"
	userConvsPrefix = "convs:user:"
)

type chatRepository struct {
	client *redis.Client
}

func NewChatRepository(client *redis.Client) repository.ChatRepository {
	return &chatRepository{client: client}
}

func convKey(id string) string {
	return convKeyPrefix + id
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return pairKeyPrefix + a + ":" + b
}

func userConvsKey(userID string) string {
	return userConvsPrefix + userID
}

func (r *chatRepository) Create(ctx context.Context, conv *models.Conversation) error {
	convJSON, err := json.Marshal(conv)
	if err != nil {
		return err
	}

	if len(conv.Participants) != 2 {
		return fmt.Errorf("conversation requires exactly two participants")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, convKey(conv.ID), convJSON, 0)
	pipe.Set(ctx, pairKey(conv.Participants[0], conv.Participants[1]), conv.ID, 0)
	pipe.SAdd(ctx, userConvsKey(conv.Participants[0]), conv.ID)
	pipe.SAdd(ctx, userConvsKey(conv.Participants[1]), conv.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	convJSON, err := r.client.Get(ctx, convKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, models.ErrConversationNotFound
		}
		return nil, err
	}

	var conv models.Conversation
	if err := json.Unmarshal(convJSON, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *chatRepository) GetByPair(ctx context.Context, a, b string) (*models.Conversation, error) {
	id, err := r.client.Get(ctx, pairKey(a, b)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, models.ErrConversationNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *chatRepository) Update(ctx context.Context, conv *models.Conversation) error {
	convJSON, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, convKey(conv.ID), convJSON, 0).Err()
}

func (r *chatRepository) ListByUser(ctx context.Context, userID string) ([]*models.Conversation, error) {
	ids, err := r.client.SMembers(ctx, userConvsKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	convs := make([]*models.Conversation, 0, len(ids))
	for _, id := range ids {
		conv, err := r.GetByID(ctx, id)
		if err != nil {
			continue
		}
		convs = append(convs, conv)
	}
	return convs, nil
}

func (r *chatRepository) ListAll(ctx context.Context) ([]*models.Conversation, error) {
	var convs []*models.Conversation
	iter := r.client.Scan(ctx, 0, convKeyPrefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		if len(key) >= len(pairKeyPrefix) && key[:len(pairKeyPrefix)] == pairKeyPrefix {
			continue
		}

		convJSON, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}

		var conv models.Conversation
		if err := json.Unmarshal(convJSON, &conv); err != nil {
			continue
		}
		convs = append(convs, &conv)
	}

	return convs, iter.Err()
}

func (r *chatRepository) CountActiveSince(ctx context.Context, userID string, sinceMs int64) (int, error) {
	convs, err := r.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, conv := range convs {
		if conv.HasMessages() && conv.TimerStarted > sinceMs {
			count++
		}
	}
	return count, nil
}
