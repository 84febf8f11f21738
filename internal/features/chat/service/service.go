package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aviato-app/aviato-backend/internal/features/availability"
	"github.com/aviato-app/aviato-backend/internal/features/chat/models"
	"github.com/aviato-app/aviato-backend/internal/features/chat/repository"
	"github.com/aviato-app/aviato-backend/internal/features/chat/timer"
	"github.com/aviato-app/aviato-backend/internal/features/reputation"
	usermodels "github.com/aviato-app/aviato-backend/internal/features/user/models"
	userrepo "github.com/aviato-app/aviato-backend/internal/features/user/repository"
)

// TimerStateResponse is one poll of the round timer from the viewer's side.
// ShowPrompt covers both triggers for the rating dialog: the deadline passing
// with the viewer owed a reply, and the counterpart locking or pausing their
// account mid-round.
type TimerStateResponse struct {
	timer.State
	ConversationID string `json:"conversationId"`
	ShowPrompt     bool   `json:"showPrompt"`
	PromptReason   string `json:"promptReason,omitempty"`
}

// GhostingStateResponse reports the long-horizon no-reply watch for one
// conversation.
type GhostingStateResponse struct {
	timer.State
	ConversationID string `json:"conversationId"`
}

type ChatService interface {
	// Start opens a conversation with the target, or returns the existing one
	// for the pair. Starting is cheaper than sending: only modes that forbid
	// any contact at all block it.
	Start(ctx context.Context, selfID, targetID string) (*models.StartResponse, error)
	List(ctx context.Context, selfID string) ([]*models.ConversationView, error)
	Get(ctx context.Context, selfID, convID string) (*models.ConversationView, error)
	SendMessage(ctx context.Context, selfID, convID, text string) (*models.ConversationView, error)
	Rate(ctx context.Context, selfID, convID string, req *models.RateRequest) (*models.ConversationView, error)
	// TimerState evaluates the round against the counterpart identified by
	// their user id, the way the chat screen polls it.
	TimerState(ctx context.Context, selfID, counterpartID string) (*TimerStateResponse, error)
	GhostingState(ctx context.Context, selfID, convID string) (*GhostingStateResponse, error)
	// DismissPrompt records the current round's prompt as handled without a
	// rating, so polling does not re-raise it.
	DismissPrompt(ctx context.Context, selfID, convID string) error
}

type chatService struct {
	convs  repository.ChatRepository
	users  userrepo.UserRepository
	ledger reputation.Ledger
	round  timer.Engine
	ghost  timer.Engine
	guard  *timer.PromptGuard
	now    func() time.Time
}

func NewChatService(
	convs repository.ChatRepository,
	users userrepo.UserRepository,
	ledger reputation.Ledger,
	roundDuration, ghostDuration time.Duration,
) ChatService {
	return &chatService{
		convs:  convs,
		users:  users,
		ledger: ledger,
		round:  timer.Engine{RoundDuration: roundDuration},
		ghost:  timer.Engine{RoundDuration: ghostDuration},
		guard:  timer.NewPromptGuard(),
		now:    time.Now,
	}
}

func (s *chatService) Start(ctx context.Context, selfID, targetID string) (*models.StartResponse, error) {
	if existing, err := s.convs.GetByPair(ctx, selfID, targetID); err == nil {
		return &models.StartResponse{ID: existing.ID, Status: "exists"}, nil
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// A future open date or an expired window means no contact at all. The
	// other unavailable modes still allow opening the thread; sending is
	// where they bite.
	verdict := availability.Evaluate(target.Subject(), s.now())
	if !verdict.Available {
		switch target.AvailabilityMode {
		case availability.ModeBlue, availability.ModeYellow:
			return nil, models.ErrTargetUnavailable
		}
	}

	conv := &models.Conversation{
		ID:           uuid.New().String(),
		Participants: []string{selfID, targetID},
		Messages:     []models.Message{},
		CreatedAt:    s.now(),
	}
	if err := s.convs.Create(ctx, conv); err != nil {
		return nil, err
	}

	log.Info().
		Str("conversation_id", conv.ID).
		Str("user_id", selfID).
		Str("target_id", targetID).
		Msg("Conversation started")
	return &models.StartResponse{ID: conv.ID, Status: "created"}, nil
}

func (s *chatService) List(ctx context.Context, selfID string) ([]*models.ConversationView, error) {
	convs, err := s.convs.ListByUser(ctx, selfID)
	if err != nil {
		return nil, err
	}

	views := make([]*models.ConversationView, 0, len(convs))
	for _, conv := range convs {
		views = append(views, conv.View(selfID))
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].LastMessageTime > views[j].LastMessageTime
	})
	return views, nil
}

func (s *chatService) Get(ctx context.Context, selfID, convID string) (*models.ConversationView, error) {
	conv, err := s.participantConversation(ctx, selfID, convID)
	if err != nil {
		return nil, err
	}
	return conv.View(selfID), nil
}

func (s *chatService) SendMessage(ctx context.Context, selfID, convID, text string) (*models.ConversationView, error) {
	conv, err := s.participantConversation(ctx, selfID, convID)
	if err != nil {
		return nil, err
	}

	target, err := s.users.GetByID(ctx, conv.Counterpart(selfID))
	if err != nil {
		return nil, err
	}

	if err := s.checkTargetReachable(ctx, conv, target); err != nil {
		return nil, err
	}

	now := s.now()
	conv.Messages = append(conv.Messages, models.Message{
		ID:        uuid.New().String(),
		SenderID:  selfID,
		Text:      text,
		Timestamp: now.UnixMilli(),
	})

	if s.shouldRestartRound(conv, target) {
		conv.TimerStarted = now.UnixMilli()
		conv.TimerExpired = false
		conv.Rated = false
		conv.RatingType = ""
		conv.RatingReason = ""
		log.Debug().
			Str("conversation_id", conv.ID).
			Int64("round_start", conv.TimerStarted).
			Msg("New round started")
	}

	if err := s.convs.Update(ctx, conv); err != nil {
		return nil, err
	}
	return conv.View(selfID), nil
}

// checkTargetReachable applies the target's availability gate to a send. For
// orange targets the stored contact count is discarded and recomputed live,
// and a conversation already counted in the current session bypasses the cap:
// the cap limits new contacts, it never cuts off a session in progress.
func (s *chatService) checkTargetReachable(ctx context.Context, conv *models.Conversation, target *usermodels.User) error {
	subject := target.Subject()

	if target.AvailabilityMode == availability.ModeOrange {
		if s.activeThisSession(conv, target) {
			return nil
		}
		count, err := s.convs.CountActiveSince(ctx, target.ID, target.Availability.ModeStartedAt)
		if err != nil {
			return err
		}
		subject.Params.CurrentContacts = count
	}

	verdict := availability.Evaluate(subject, s.now())
	if verdict.Available {
		return nil
	}

	if target.AvailabilityMode == availability.ModeOrange {
		return models.ErrMaxContactsReached
	}
	return models.ErrTargetUnavailable
}

// activeThisSession reports whether this conversation already counts against
// the target's current orange session.
func (s *chatService) activeThisSession(conv *models.Conversation, target *usermodels.User) bool {
	return conv.HasMessages() && conv.TimerStarted > target.Availability.ModeStartedAt
}

// shouldRestartRound decides whether the message just appended opens a new
// round. A round restarts once the previous one is finished (rated or
// expired), or when none was ever started. For orange targets a round carried
// over from before the current session also restarts, so the session counter
// picks the conversation up.
func (s *chatService) shouldRestartRound(conv *models.Conversation, target *usermodels.User) bool {
	if conv.TimerStarted == 0 || conv.Rated || conv.TimerExpired {
		return true
	}
	if target.AvailabilityMode == availability.ModeOrange &&
		conv.TimerStarted <= target.Availability.ModeStartedAt {
		return true
	}
	return false
}

func (s *chatService) Rate(ctx context.Context, selfID, convID string, req *models.RateRequest) (*models.ConversationView, error) {
	conv, err := s.participantConversation(ctx, selfID, convID)
	if err != nil {
		return nil, err
	}

	// A rating for an already-closed round is stale, not an error: the
	// counterpart replied or another device rated first. Drop it silently.
	if conv.Rated {
		return conv.View(selfID), nil
	}

	targetID := conv.Counterpart(selfID)

	mayRate := s.round.State(conv, s.now(), selfID).MayRate
	if !mayRate {
		// A counterpart who locked or paused mid-round ended it early; the
		// prompt that solicited this rating is honored even though the
		// clock says the round is still open.
		if target, err := s.users.GetByID(ctx, targetID); err == nil {
			mayRate, _ = timer.UnavailabilityPrompt(conv, selfID, target.AvailabilityMode)
		}
	}
	if !mayRate {
		return nil, models.ErrNotRoundSender
	}

	// Ledger first: a failed delta must leave the round open for a retry
	// rather than close it with no reputation change recorded.
	if _, err := s.ledger.ApplyRating(ctx, selfID, targetID, req.IsGood, req.Reason); err != nil {
		return nil, err
	}

	outcome := "bad"
	if req.IsGood {
		outcome = "good"
	}
	conv.Rated = true
	conv.TimerExpired = true
	conv.RatingType = outcome
	conv.RatingReason = req.Reason

	if err := s.convs.Update(ctx, conv); err != nil {
		return nil, err
	}

	s.guard.Dismiss(conv.ID, conv.TimerStarted)
	return conv.View(selfID), nil
}

func (s *chatService) TimerState(ctx context.Context, selfID, counterpartID string) (*TimerStateResponse, error) {
	conv, err := s.convs.GetByPair(ctx, selfID, counterpartID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	st := s.round.State(conv, now, selfID)
	resp := &TimerStateResponse{State: st, ConversationID: conv.ID}

	// The counterpart going locked or paused mid-round prompts immediately,
	// without waiting out the deadline: the round is over for the viewer no
	// matter how much clock is left.
	if target, err := s.users.GetByID(ctx, counterpartID); err == nil {
		if prompt, reason := timer.UnavailabilityPrompt(conv, selfID, target.AvailabilityMode); prompt {
			st.Phase = timer.PhaseExpiredUnrated
			st.RemainingMs = 0
			st.MayRate = true
			st.Reason = reason
			resp.State = st
			resp.ShowPrompt = s.guard.ShouldPrompt(conv.ID, conv.TimerStarted, st)
			resp.PromptReason = reason
			return resp, nil
		}
	}

	if st.MayRate {
		resp.ShowPrompt = s.guard.ShouldPrompt(conv.ID, conv.TimerStarted, st)
		resp.PromptReason = st.Reason
	}
	return resp, nil
}

func (s *chatService) GhostingState(ctx context.Context, selfID, convID string) (*GhostingStateResponse, error) {
	conv, err := s.participantConversation(ctx, selfID, convID)
	if err != nil {
		return nil, err
	}
	return &GhostingStateResponse{
		State:          s.ghost.State(conv, s.now(), selfID),
		ConversationID: conv.ID,
	}, nil
}

func (s *chatService) DismissPrompt(ctx context.Context, selfID, convID string) error {
	conv, err := s.participantConversation(ctx, selfID, convID)
	if err != nil {
		return err
	}
	s.guard.Dismiss(conv.ID, conv.TimerStarted)
	return nil
}

// participantConversation loads the conversation and hides it from
// non-participants.
func (s *chatService) participantConversation(ctx context.Context, selfID, convID string) (*models.Conversation, error) {
	conv, err := s.convs.GetByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	for _, p := range conv.Participants {
		if p == selfID {
			return conv, nil
		}
	}
	return nil, models.ErrConversationNotFound
}
