package availability

import (
	"fmt"
	"time"
)

// Verdict is the result of evaluating a user's availability at an instant.
type Verdict struct {
	Available  bool   `json:"available"`
	Reason     string `json:"reason"`
	StatusText string `json:"statusText"`
	ModeColor  string `json:"modeColor"`
}

// Subject is the slice of a user the evaluator needs. Kept minimal so the
// evaluator stays a total function over (subject, now) with no repository
// access.
type Subject struct {
	Mode   Mode
	Params Params
}

const openDateLayout = "2006-01-02"

// Evaluate applies the per-mode gating rules at the given instant. It is pure:
// same subject and now always produce the same verdict, and it never fails —
// malformed or missing parameters degrade to the mode's most restrictive
// reading instead of erroring. Callers must re-evaluate on every tick rather
// than cache verdicts across clock or mode changes.
func Evaluate(s Subject, now time.Time) Verdict {
	switch s.Mode {
	case ModeInvisible:
		return Verdict{
			Available: true,
			Reason:    "User can receive messages",
			ModeColor: ModeColor(ModeInvisible),
		}

	case ModeRed:
		return Verdict{
			Available:  false,
			Reason:     "User is locked",
			ModeColor:  ModeColor(ModeRed),
			StatusText: "Locked",
		}

	case ModeGray:
		return Verdict{
			Available:  false,
			Reason:     "User is paused",
			ModeColor:  ModeColor(ModeGray),
			StatusText: "Paused",
		}

	case ModeBlue:
		return evaluateBlue(s.Params, now)

	case ModeYellow:
		return evaluateYellow(s.Params, now)

	case ModeOrange:
		return evaluateOrange(s.Params)

	case ModeBrown:
		// Retired feature: the old time-window gating must not come back.
		return Verdict{
			Available:  true,
			Reason:     "Feature Deprecated",
			ModeColor:  ModeColor(ModeInvisible),
			StatusText: "Timed Mode (Deprecated)",
		}

	case ModeGreen:
		return Verdict{
			Available:  true,
			Reason:     "Available now",
			ModeColor:  ModeColor(ModeGreen),
			StatusText: "Online now",
		}

	default:
		// Unknown stored mode: treat like a mode-less user rather than erroring.
		return Verdict{
			Available: true,
			Reason:    "User can receive messages",
			ModeColor: ModeColor(s.Mode),
		}
	}
}

// evaluateBlue blocks until the open date. The comparison is date-only: both
// sides are collapsed to calendar days so the viewer's time of day can never
// flip the verdict.
func evaluateBlue(p Params, now time.Time) Verdict {
	if p.OpenDate == "" {
		return Verdict{
			Available:  false,
			Reason:     "Availability date not set",
			ModeColor:  ModeColor(ModeBlue),
			StatusText: "Unavailable",
		}
	}

	openDate, err := time.Parse(openDateLayout, p.OpenDate)
	if err != nil {
		return Verdict{
			Available:  false,
			Reason:     "Availability date not set",
			ModeColor:  ModeColor(ModeBlue),
			StatusText: "Unavailable",
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	open := time.Date(openDate.Year(), openDate.Month(), openDate.Day(), 0, 0, 0, 0, time.UTC)

	if open.After(today) {
		return Verdict{
			Available:  false,
			Reason:     fmt.Sprintf("Available from %s", p.OpenDate),
			ModeColor:  ModeColor(ModeBlue),
			StatusText: fmt.Sprintf("Active from %s", p.OpenDate),
		}
	}

	// Open date reached: behaves like green.
	return Verdict{
		Available:  true,
		Reason:     "Available now",
		ModeColor:  ModeColor(ModeBlue),
		StatusText: "Online now",
	}
}

// evaluateYellow gates on the activation window. The deadline itself is
// unavailable: the window covers [start, start+minutes) exactly.
func evaluateYellow(p Params, now time.Time) Verdict {
	if p.LaterStartTime == 0 || p.LaterMinutes <= 0 {
		// Window never armed: most restrictive reading.
		return Verdict{
			Available:  false,
			Reason:     "Availability expired",
			ModeColor:  ModeColor(ModeYellow),
			StatusText: "Expired",
		}
	}

	nowMs := now.UnixMilli()
	endMs := p.LaterStartTime + int64(p.LaterMinutes)*60_000

	if nowMs >= endMs {
		return Verdict{
			Available:  false,
			Reason:     "Availability expired",
			ModeColor:  ModeColor(ModeYellow),
			StatusText: "Expired",
		}
	}

	mins := (endMs - nowMs) / 60_000
	var timeStr string
	if mins >= 60 {
		timeStr = fmt.Sprintf("%dh %dm", mins/60, mins%60)
	} else {
		timeStr = fmt.Sprintf("%dm", mins)
	}

	return Verdict{
		Available:  true,
		Reason:     fmt.Sprintf("Available for %s", timeStr),
		ModeColor:  ModeColor(ModeYellow),
		StatusText: fmt.Sprintf("Active: %s", timeStr),
	}
}

// evaluateOrange gates on the contact cap. Reaching or exceeding the cap
// blocks; the count is never mutated here, and the displayed count is clamped
// so an overshoot never renders as "3/2".
func evaluateOrange(p Params) Verdict {
	if p.MaxContact <= 0 {
		return Verdict{
			Available:  false,
			Reason:     "Max contacts reached",
			ModeColor:  ModeColor(ModeOrange),
			StatusText: "Max contacts reached",
		}
	}

	if p.CurrentContacts >= p.MaxContact {
		return Verdict{
			Available:  false,
			Reason:     "Max contacts reached",
			ModeColor:  ModeColor(ModeOrange),
			StatusText: "Max contacts reached",
		}
	}

	display := p.CurrentContacts
	if display > p.MaxContact {
		display = p.MaxContact
	}
	return Verdict{
		Available:  true,
		Reason:     "Available",
		ModeColor:  ModeColor(ModeOrange),
		StatusText: fmt.Sprintf("Active (%d/%d)", display, p.MaxContact),
	}
}
