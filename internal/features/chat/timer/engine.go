package timer

import (
	"time"

	"github.com/aviato-app/aviato-backend/internal/features/availability"
	"github.com/aviato-app/aviato-backend/internal/features/chat/models"
)

// Phase is the state of a conversation round. ExpiredUnrated is derived from
// the clock on every evaluation, never stored.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseRunning        Phase = "running"
	PhaseExpiredUnrated Phase = "expired_unrated"
	PhaseRated          Phase = "rated"
)

// State is one evaluation of a round for a specific viewer.
type State struct {
	Phase       Phase  `json:"phase"`
	RemainingMs int64  `json:"remainingMs"`
	MayRate     bool   `json:"mayRate"`
	Reason      string `json:"reason,omitempty"`
}

// Engine evaluates round timers. The chat screen and the ghosting watch are
// the same protocol at different durations, so both are instances of this
// engine; the decision logic below does not change with the duration.
type Engine struct {
	RoundDuration time.Duration
}

// State derives the round phase at now from the viewer's perspective. Only
// the sender of the round's last message — the party owed a reply — is ever
// offered the rating.
func (e Engine) State(conv *models.Conversation, now time.Time, viewerID string) State {
	if conv == nil || conv.TimerStarted == 0 {
		return State{Phase: PhaseIdle, RemainingMs: e.RoundDuration.Milliseconds()}
	}

	if conv.Rated {
		return State{Phase: PhaseRated}
	}

	elapsed := now.UnixMilli() - conv.TimerStarted
	if elapsed < e.RoundDuration.Milliseconds() {
		return State{
			Phase:       PhaseRunning,
			RemainingMs: e.RoundDuration.Milliseconds() - elapsed,
		}
	}

	st := State{Phase: PhaseExpiredUnrated}
	switch {
	case !conv.WaitingForResponse(viewerID):
		st.Reason = "Your turn to respond"
	case conv.TheyRespondedLast(viewerID):
		st.Reason = "They already responded"
	default:
		st.MayRate = true
		st.Reason = "The other person did not respond to your last message"
	}
	return st
}

// Remaining returns the time left in the round, zero once expired or rated.
func (e Engine) Remaining(conv *models.Conversation, now time.Time) time.Duration {
	st := e.State(conv, now, "")
	return time.Duration(st.RemainingMs) * time.Millisecond
}

// UnavailabilityPrompt decides whether the counterpart's current mode forces
// a rating prompt regardless of the deadline. With polling there is no
// transition event, only snapshots, so the prompt fires while the counterpart
// sits in an unavailable mode (red or gray) and the viewer is still owed a
// reply on an open round.
func UnavailabilityPrompt(conv *models.Conversation, viewerID string, mode availability.Mode) (bool, string) {
	if conv == nil || !isUnavailableMode(mode) {
		return false, ""
	}
	return unavailabilityPrompt(conv, viewerID, mode)
}

func unavailabilityPrompt(conv *models.Conversation, viewerID string, mode availability.Mode) (bool, string) {
	if conv.Rated || !conv.WaitingForResponse(viewerID) || conv.TheyRespondedLast(viewerID) {
		return false, ""
	}

	modeText := "locked"
	if mode == availability.ModeGray {
		modeText = "paused"
	}
	return true, "User " + modeText + " their account before replying to your message"
}

func isUnavailableMode(mode availability.Mode) bool {
	return mode == availability.ModeRed || mode == availability.ModeGray
}
