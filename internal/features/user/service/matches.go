package service

import (
	"context"
	"sort"

	"github.com/aviato-app/aviato-backend/internal/features/availability"
	"github.com/aviato-app/aviato-backend/internal/features/user/models"
)

// FindMatches scores every other user against the caller's selections,
// highest first.
func (s *userService) FindMatches(ctx context.Context, selfID string) ([]*models.MatchResult, error) {
	self, err := s.repo.GetByID(ctx, selfID)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*models.MatchResult, 0, len(users))
	for _, u := range users {
		if u.ID == selfID {
			continue
		}
		s.refreshContactCount(ctx, u)
		results = append(results, &models.MatchResult{
			User:            u.Sanitized(),
			MatchPercentage: availability.MatchScore(self.Selections, u.Selections),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})
	return results, nil
}
