package reputation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	usermodels "github.com/aviato-app/aviato-backend/internal/features/user/models"
	userrepo "github.com/aviato-app/aviato-backend/internal/features/user/repository"
)

// EventStore persists the reputation audit trail.
type EventStore interface {
	Append(ctx context.Context, event *Event) error
}

type Ledger interface {
	// ApplyRating applies a round-rating outcome to the target's approval
	// score and returns the audit event it produced.
	ApplyRating(ctx context.Context, raterID, targetID string, isGood bool, reason string) (*Event, error)
	// SubmitReview appends a 1-5 star review and recomputes the target's
	// review aggregate.
	SubmitReview(ctx context.Context, targetID string, review usermodels.Review) error
}

type ledger struct {
	users  userrepo.UserRepository
	events EventStore
	now    func() time.Time
}

func NewLedger(users userrepo.UserRepository, events EventStore) Ledger {
	return &ledger{users: users, events: events, now: time.Now}
}

func (l *ledger) ApplyRating(ctx context.Context, raterID, targetID string, isGood bool, reason string) (*Event, error) {
	delta := Delta(isGood, reason)

	newScore, err := l.users.IncrementApproval(ctx, targetID, delta)
	if err != nil {
		return nil, fmt.Errorf("apply approval delta: %w", err)
	}

	outcome := "bad"
	if isGood {
		outcome = "good"
	}

	event := &Event{
		ID:        uuid.New().String(),
		RaterID:   raterID,
		TargetID:  targetID,
		Delta:     delta,
		Outcome:   outcome,
		Reason:    reason,
		Timestamp: l.now().UnixMilli(),
	}

	if err := l.events.Append(ctx, event); err != nil {
		// The score change is already committed; losing the audit record is
		// worth surfacing but not rolling back.
		log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to append reputation event")
	}

	log.Info().
		Str("rater_id", raterID).
		Str("target_id", targetID).
		Int("delta", delta).
		Int("new_score", newScore).
		Str("reason", reason).
		Msg("Approval rating applied")

	return event, nil
}

func (l *ledger) SubmitReview(ctx context.Context, targetID string, review usermodels.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return usermodels.ErrInvalidReview
	}
	if review.Timestamp == 0 {
		review.Timestamp = l.now().UnixMilli()
	}
	return l.users.AppendReview(ctx, targetID, review)
}
