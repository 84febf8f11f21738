package reputation

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const eventsKey = "reputation:events"

// redisEventStore appends audit events to a redis list, newest first.
type redisEventStore struct {
	client *redis.Client
}

func NewRedisEventStore(client *redis.Client) EventStore {
	return &redisEventStore{client: client}
}

func (s *redisEventStore) Append(ctx context.Context, event *Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.client.LPush(ctx, eventsKey, eventJSON).Err()
}
