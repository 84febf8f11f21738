package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/aviato-app/aviato-backend/internal/features/availability"
	"github.com/aviato-app/aviato-backend/internal/features/user/models"
)

// SeedDemoData populates an empty store with a handful of demo profiles so a
// fresh local environment has someone to talk to. A non-empty store is left
// alone.
func (s *userService) SeedDemoData(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Info().Msg("Seeding demo users")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demo := []*models.User{
		{
			ID: "current-user", Email: "demo@aviato.com", Name: "Demo User",
			Location: "San Francisco", Vibe: "Chill",
			Selections:       []string{"Coding", "Coffee"},
			ApprovalRating:   100, ReviewRating: 5.0, ReviewCount: 1,
			AvailabilityMode: availability.ModeGreen,
		},
		{
			ID: "1", Email: "asuab@test.com", Name: "Asuab",
			Location: "Los Angeles", Vibe: "Vibe coder",
			Selections:       []string{"Metal Gear 1", "Metal Gear 2", "Zelda", "Mario", "Pokemon"},
			ApprovalRating:   54, ReviewRating: 4.5, ReviewCount: 12,
			AvailabilityMode: availability.ModeGreen,
		},
		{
			ID: "2", Email: "sussie@test.com", Name: "Sussie",
			Location: "Miami", Vibe: "Vibe coder",
			Selections:       []string{"Metal Gear 1", "Metal Gear 2", "Metal Gear 3", "Final Fantasy", "Sonic"},
			ApprovalRating:   89, ReviewRating: 4.8, ReviewCount: 25,
			AvailabilityMode: availability.ModeYellow,
			Availability:     availability.Params{LaterMinutes: 120, LaterStartTime: s.now().UnixMilli()},
		},
		{
			ID: "6", Email: "john@test.com", Name: "John",
			Location: "New York", Vibe: "Photographer",
			Selections:       []string{"Photography", "Art", "Travel"},
			ApprovalRating:   120, ReviewRating: 4.9, ReviewCount: 67,
			AvailabilityMode: availability.ModeOrange,
			Availability:     availability.Params{MaxContact: 15, ModeStartedAt: s.now().UnixMilli()},
		},
	}

	for _, u := range demo {
		u.Password = string(hash)
		u.Reviews = []models.Review{}
		u.CreatedAt = s.now()
		u.UpdatedAt = s.now()
		if err := s.repo.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	return nil
}
