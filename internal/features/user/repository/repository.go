package repository

import (
	"context"

	"github.com/aviato-app/aviato-backend/internal/features/user/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	// IncrementApproval adjusts the approval score by delta and returns the
	// new value. The score is unbounded in both directions.
	IncrementApproval(ctx context.Context, id string, delta int) (int, error)
	// AppendReview appends a review and stores the recomputed aggregate.
	AppendReview(ctx context.Context, id string, review models.Review) error
	Count(ctx context.Context) (int64, error)
}
