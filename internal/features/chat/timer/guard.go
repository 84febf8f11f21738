package timer

import "sync"

// PromptGuard remembers which round of each conversation has already had its
// rating prompt shown, so sub-second polling cannot surface the same expiry
// twice. Rounds are identified by their start timestamp: when a new round
// begins the stale entry no longer matches and the guard re-arms, exactly
// once per round.
//
// This is local-session state; it is never persisted.
type PromptGuard struct {
	mu    sync.Mutex
	shown map[string]int64 // conversation id -> round start already prompted
}

func NewPromptGuard() *PromptGuard {
	return &PromptGuard{shown: make(map[string]int64)}
}

// ShouldPrompt reports whether a prompt must be offered for the given state,
// and records the round as prompted when it returns true.
func (g *PromptGuard) ShouldPrompt(conversationID string, roundStart int64, st State) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if st.Phase != PhaseExpiredUnrated || !st.MayRate {
		// A moot decision must not fire later: if the round moved on,
		// drop the stale entry so the next expiry can prompt again.
		if prev, ok := g.shown[conversationID]; ok && prev != roundStart {
			delete(g.shown, conversationID)
		}
		return false
	}

	if g.shown[conversationID] == roundStart {
		return false
	}
	g.shown[conversationID] = roundStart
	return true
}

// Dismiss marks the round as handled without a prompt having fired, e.g. the
// user rated through another path.
func (g *PromptGuard) Dismiss(conversationID string, roundStart int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.shown[conversationID] = roundStart
}
