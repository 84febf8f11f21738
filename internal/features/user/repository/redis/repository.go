package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aviato-app/aviato-backend/internal/features/user/models"
	"github.com/aviato-app/aviato-backend/internal/features/user/repository"
)

const (
	userKeyPrefix  = "user:"
	emailKeyPrefix = "user:email:"
)

type userRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func userKey(id string) string {
	return userKeyPrefix + id
}

func emailKey(email string) string {
	return emailKeyPrefix + strings.ToLower(email)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, userKey(user.ID), userJSON, 0)
	pipe.Set(ctx, emailKey(user.Email), user.ID, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	userJSON, err := r.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	id, err := r.client.Get(ctx, emailKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, userKey(user.ID), userJSON, 0).Err()
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	iter := r.client.Scan(ctx, 0, userKeyPrefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, emailKeyPrefix) {
			continue
		}

		userJSON, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}

		var user models.User
		if err := json.Unmarshal(userJSON, &user); err != nil {
			continue
		}
		users = append(users, &user)
	}

	return users, iter.Err()
}

func (r *userRepository) IncrementApproval(ctx context.Context, id string, delta int) (int, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	user.ApprovalRating += delta
	if err := r.Update(ctx, user); err != nil {
		return 0, err
	}
	return user.ApprovalRating, nil
}

func (r *userRepository) AppendReview(ctx context.Context, id string, review models.Review) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.Reviews = append(user.Reviews, review)

	total := 0.0
	for _, rev := range user.Reviews {
		total += rev.Rating
	}
	user.ReviewCount = len(user.Reviews)
	// Mean rounded to one decimal, the precision the client displays.
	user.ReviewRating = math.Round(total/float64(user.ReviewCount)*10) / 10

	return r.Update(ctx, user)
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	iter := r.client.Scan(ctx, 0, userKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if !strings.HasPrefix(iter.Val(), emailKeyPrefix) {
			n++
		}
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan users: %w", err)
	}
	return n, nil
}
