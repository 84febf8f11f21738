package availability

// Mode is the availability state controlling who may message a user and what
// status is shown next to them. The zero value ("") is the invisible mode: the
// user carries no indicator and can always receive messages.
type Mode string

const (
	ModeInvisible Mode = ""       // default, no gating
	ModeGreen     Mode = "green"  // available now
	ModeYellow    Mode = "yellow" // available for a limited duration
	ModeOrange    Mode = "orange" // capped number of contacts per session
	ModeBlue      Mode = "blue"   // opens on a calendar date
	ModeRed       Mode = "red"    // locked indefinitely
	ModeGray      Mode = "gray"   // paused indefinitely

	// ModeBrown is the retired timed mode. Stored records may still carry it,
	// so it must decode, but it evaluates as neutral and can never be
	// activated again.
	ModeBrown Mode = "brown"
)

// Params is the per-mode parameter bag. Only the fields belonging to the
// active mode are meaningful; the rest stay at their zero values. Timestamps
// are epoch milliseconds to match the stored record format.
type Params struct {
	OpenDate        string `json:"openDate,omitempty"` // blue, YYYY-MM-DD
	LaterMinutes    int    `json:"laterMinutes,omitempty"`
	LaterStartTime  int64  `json:"laterStartTime,omitempty"`
	MaxContact      int    `json:"maxContact,omitempty"`
	CurrentContacts int    `json:"currentContacts"`
	TimedHour       *int   `json:"timedHour,omitempty"` // legacy brown
	TimedMinute     *int   `json:"timedMinute,omitempty"`
	ModeStartedAt   int64  `json:"modeStartedAt,omitempty"` // orange session marker
	TimezoneOffset  *int   `json:"timezoneOffset,omitempty"`
}

// ModeColor returns the display color for a mode indicator. Unknown modes get
// the neutral light gray used for invisible users.
func ModeColor(mode Mode) string {
	switch mode {
	case ModeBlue:
		return "#0066FF"
	case ModeYellow:
		return "#FBBF24"
	case ModeOrange:
		return "#F97316"
	case ModeGreen:
		return "#10B981"
	case ModeRed:
		return "#DC2626"
	case ModeGray:
		return "#9CA3AF"
	case ModeBrown:
		return "#92400E"
	default:
		return "#E5E7EB"
	}
}

// Known reports whether mode is one of the decodable states, including the
// legacy brown mode and the invisible default.
func Known(mode Mode) bool {
	switch mode {
	case ModeInvisible, ModeGreen, ModeYellow, ModeOrange, ModeBlue, ModeRed, ModeGray, ModeBrown:
		return true
	}
	return false
}
