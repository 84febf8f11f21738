package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/aviato-app/aviato-backend/internal/common/auth"
	"github.com/aviato-app/aviato-backend/internal/features/availability"
	"github.com/aviato-app/aviato-backend/internal/features/user/models"
	"github.com/aviato-app/aviato-backend/internal/features/user/repository"
)

// ContactCounter reports how many conversations of a user became active after
// a given instant. Implemented by the chat repository; the stored
// currentContacts value is advisory only and is always recomputed through
// this.
type ContactCounter interface {
	CountActiveSince(ctx context.Context, userID string, sinceMs int64) (int, error)
}

type UserService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id string, updates *models.UserUpdate) (*models.User, error)
	ActivateMode(ctx context.Context, id string, change *models.ModeChange) (*models.User, error)
	DeactivateMode(ctx context.Context, id string) (*models.User, error)
	FindMatches(ctx context.Context, selfID string) ([]*models.MatchResult, error)
	SeedDemoData(ctx context.Context) error
}

type userService struct {
	repo     repository.UserRepository
	contacts ContactCounter
	tokens   *auth.TokenIssuer
	now      func() time.Time
}

func NewUserService(repo repository.UserRepository, contacts ContactCounter, tokens *auth.TokenIssuer) UserService {
	return &userService{
		repo:     repo,
		contacts: contacts,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (s *userService) Signup(ctx context.Context, req *models.SignupRequest) (*models.TokenResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, models.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:               uuid.New().String(),
		Email:            req.Email,
		Password:         string(hash),
		Name:             req.Name,
		Location:         "Unknown",
		Selections:       []string{},
		Reviews:          []models.Review{},
		AvailabilityMode: availability.ModeGreen,
		CreatedAt:        s.now(),
		UpdatedAt:        s.now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("User signed up")
	return s.tokenResponse(user)
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, models.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrUserNotFound
	}

	return s.tokenResponse(user)
}

func (s *userService) tokenResponse(user *models.User) (*models.TokenResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.Sanitized(),
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.refreshContactCount(ctx, user)
	return user.Sanitized(), nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.User, 0, len(users))
	for _, u := range users {
		s.refreshContactCount(ctx, u)
		out = append(out, u.Sanitized())
	}
	return out, nil
}

// refreshContactCount overrides the stored contact counter for orange users
// with the live session count: conversations with at least one message whose
// round started after the mode did. Snapshot readers must never trust the
// stored value.
func (s *userService) refreshContactCount(ctx context.Context, user *models.User) {
	if user.AvailabilityMode != availability.ModeOrange || s.contacts == nil {
		return
	}

	count, err := s.contacts.CountActiveSince(ctx, user.ID, user.Availability.ModeStartedAt)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to count active contacts")
		return
	}
	user.Availability.CurrentContacts = count
}

func (s *userService) UpdateProfile(ctx context.Context, id string, updates *models.UserUpdate) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		user.Name = *updates.Name
	}
	if updates.Location != nil {
		user.Location = *updates.Location
	}
	if updates.Vibe != nil {
		user.Vibe = *updates.Vibe
	}
	if updates.ProfilePic != nil {
		user.ProfilePic = *updates.ProfilePic
	}
	if updates.Selections != nil {
		if len(*updates.Selections) > availability.MaxSelections {
			return nil, models.ErrTooManySelections
		}
		user.Selections = *updates.Selections
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}
