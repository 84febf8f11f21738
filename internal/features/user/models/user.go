package models

import (
	"errors"
	"time"

	"github.com/aviato-app/aviato-backend/internal/features/availability"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidModeParams = errors.New("invalid mode parameters")
	ErrModeRetired       = errors.New("mode is retired and cannot be activated")
	ErrLockNotConfirmed  = errors.New("locking requires explicit confirmation")
	ErrTooManySelections = errors.New("too many selections")
	ErrInvalidReview     = errors.New("review rating must be between 1 and 5")
)

// User is the stored profile record. Password is the bcrypt hash and never
// leaves the repository layer in API responses.
type User struct {
	ID               string              `json:"id"`
	Email            string              `json:"email"`
	Password         string              `json:"password,omitempty"`
	Name             string              `json:"name"`
	Location         string              `json:"location"`
	Vibe             string              `json:"vibe"`
	ProfilePic       string              `json:"profilePic,omitempty"`
	Selections       []string            `json:"selections"`
	ApprovalRating   int                 `json:"approvalRating"`
	ReviewRating     float64             `json:"reviewRating"`
	ReviewCount      int                 `json:"reviewCount"`
	AvailabilityMode availability.Mode   `json:"availabilityMode,omitempty"`
	Availability     availability.Params `json:"availability"`
	Reviews          []Review            `json:"reviews"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// Subject extracts the evaluator's view of this user.
func (u *User) Subject() availability.Subject {
	return availability.Subject{Mode: u.AvailabilityMode, Params: u.Availability}
}

// Sanitized returns a copy safe for API responses.
func (u *User) Sanitized() *User {
	out := *u
	out.Password = ""
	return &out
}

// Review is one 1-5 star evaluation, immutable once appended.
type Review struct {
	RaterID         string  `json:"raterId"`
	RaterName       string  `json:"raterName"`
	RaterProfilePic string  `json:"raterProfilePic,omitempty"`
	Rating          float64 `json:"rating"`
	Timestamp       int64   `json:"timestamp"`
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Name       *string   `json:"name,omitempty"`
	Location   *string   `json:"location,omitempty"`
	Vibe       *string   `json:"vibe,omitempty"`
	ProfilePic *string   `json:"profilePic,omitempty"`
	Selections *[]string `json:"selections,omitempty"`
}

// ModeChange is an activation request. Exactly the parameter group matching
// the requested mode must be present; extra or missing groups are a caller
// error, unlike evaluation-time fallbacks which stay lenient.
type ModeChange struct {
	Mode   availability.Mode `json:"mode"`
	Yellow *YellowParams     `json:"yellow,omitempty"`
	Orange *OrangeParams     `json:"orange,omitempty"`
	Blue   *BlueParams       `json:"blue,omitempty"`
	// Confirmed is the second phase of the red-mode lock. Activating red
	// without it is rejected.
	Confirmed bool `json:"confirmed,omitempty"`
}

type YellowParams struct {
	LaterMinutes int `json:"laterMinutes"`
}

type OrangeParams struct {
	MaxContact int `json:"maxContact"`
}

type BlueParams struct {
	OpenDate string `json:"openDate"` // YYYY-MM-DD
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=1,max=60"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// MatchResult is a user annotated with the caller's compatibility score.
type MatchResult struct {
	*User
	MatchPercentage int `json:"matchPercentage"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
