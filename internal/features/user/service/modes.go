package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aviato-app/aviato-backend/internal/features/availability"
	"github.com/aviato-app/aviato-backend/internal/features/user/models"
)

// ActivateMode validates the requested mode against its parameter group and
// stores the transition. Activation-time validation is strict: a missing or
// malformed parameter bag is a caller error here, even though evaluation of
// stored records stays lenient.
func (s *userService) ActivateMode(ctx context.Context, id string, change *models.ModeChange) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	params, err := s.buildParams(change)
	if err != nil {
		return nil, err
	}

	oldMode := user.AvailabilityMode
	user.AvailabilityMode = change.Mode
	user.Availability = params

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", user.ID).
		Str("old_mode", string(oldMode)).
		Str("new_mode", string(change.Mode)).
		Msg("Availability mode activated")

	return user.Sanitized(), nil
}

func (s *userService) buildParams(change *models.ModeChange) (availability.Params, error) {
	var params availability.Params

	switch change.Mode {
	case availability.ModeGreen, availability.ModeGray, availability.ModeInvisible:
		// No parameters.

	case availability.ModeRed:
		// Locking is maximally disruptive; the caller must send the second
		// phase of the confirmation, not just pop a dialog.
		if !change.Confirmed {
			return params, models.ErrLockNotConfirmed
		}

	case availability.ModeYellow:
		if change.Yellow == nil || change.Yellow.LaterMinutes <= 0 {
			return params, fmt.Errorf("%w: yellow requires a positive duration", models.ErrInvalidModeParams)
		}
		params.LaterMinutes = change.Yellow.LaterMinutes
		params.LaterStartTime = s.now().UnixMilli()

	case availability.ModeOrange:
		if change.Orange == nil || change.Orange.MaxContact <= 0 {
			return params, fmt.Errorf("%w: orange requires a positive contact cap", models.ErrInvalidModeParams)
		}
		params.MaxContact = change.Orange.MaxContact
		// Every (re)activation starts a fresh contact session.
		params.ModeStartedAt = s.now().UnixMilli()

	case availability.ModeBlue:
		if change.Blue == nil || change.Blue.OpenDate == "" {
			return params, fmt.Errorf("%w: blue requires an open date", models.ErrInvalidModeParams)
		}
		openDate, err := time.Parse("2006-01-02", change.Blue.OpenDate)
		if err != nil {
			return params, fmt.Errorf("%w: open date must be YYYY-MM-DD", models.ErrInvalidModeParams)
		}
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		open := time.Date(openDate.Year(), openDate.Month(), openDate.Day(), 0, 0, 0, 0, time.UTC)
		if !open.After(today) {
			return params, fmt.Errorf("%w: open date must be tomorrow or later", models.ErrInvalidModeParams)
		}
		params.OpenDate = change.Blue.OpenDate

	case availability.ModeBrown:
		return params, models.ErrModeRetired

	default:
		return params, fmt.Errorf("%w: unknown mode %q", models.ErrInvalidModeParams, change.Mode)
	}

	return params, nil
}

// DeactivateMode turns the current mode off. Every mode resumes to green
// (explicitly available), except green itself, which drops the user to the
// invisible default.
func (s *userService) DeactivateMode(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldMode := user.AvailabilityMode
	if oldMode == availability.ModeGreen {
		user.AvailabilityMode = availability.ModeInvisible
	} else {
		user.AvailabilityMode = availability.ModeGreen
	}
	user.Availability = availability.Params{}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", user.ID).
		Str("old_mode", string(oldMode)).
		Str("new_mode", string(user.AvailabilityMode)).
		Msg("Availability mode deactivated")

	return user.Sanitized(), nil
}
