package reputation

// Delta applied for a positive round rating.
const GoodDelta = 10

// defaultPenalty applies when a bad rating arrives without a recognized
// reason. It equals the mildest named penalty; an unnamed reason is a defined
// outcome, not an error.
const defaultPenalty = -10

// The fixed penalty table for negative round ratings. Free-form penalties are
// not allowed; the reason must match one of these labels.
const (
	ReasonGhosted       = "No response / Ghosted"
	ReasonRude          = "Rude or disrespectful"
	ReasonSpam          = "Spam messages"
	ReasonInappropriate = "Inappropriate content"
	ReasonOneWord       = "One-word answers"
)

var penalties = map[string]int{
	ReasonGhosted:       -15,
	ReasonRude:          -20,
	ReasonSpam:          -25,
	ReasonInappropriate: -30,
	ReasonOneWord:       -10,
}

// Penalty returns the approval delta for a bad-rating reason.
func Penalty(reason string) int {
	if delta, ok := penalties[reason]; ok {
		return delta
	}
	return defaultPenalty
}

// Delta returns the approval change for a rating outcome.
func Delta(isGood bool, reason string) int {
	if isGood {
		return GoodDelta
	}
	return Penalty(reason)
}

// BadReasons lists the recognized reasons with their penalties, for clients
// building the rating dialog.
func BadReasons() map[string]int {
	out := make(map[string]int, len(penalties))
	for reason, delta := range penalties {
		out[reason] = delta
	}
	return out
}

// Event is the auditable record of one reputation change. Every applied
// rating produces exactly one event, persisted alongside the score change.
type Event struct {
	ID        string `json:"id"`
	RaterID   string `json:"raterId"`
	TargetID  string `json:"targetId"`
	Delta     int    `json:"delta"`
	Outcome   string `json:"outcome"` // good or bad
	Reason    string `json:"reason,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
