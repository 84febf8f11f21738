package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestEvaluateSimpleModes(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		available bool
		status    string
		color     string
	}{
		{"no mode set", ModeInvisible, true, "", "#E5E7EB"},
		{"green is online", ModeGreen, true, "Online now", "#10B981"},
		{"red is locked", ModeRed, false, "Locked", "#DC2626"},
		{"gray is paused", ModeGray, false, "Paused", "#9CA3AF"},
		{"unknown mode degrades to open", Mode("purple"), true, "", "#E5E7EB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(Subject{Mode: tt.mode}, evalNow)
			assert.Equal(t, tt.available, v.Available)
			assert.Equal(t, tt.status, v.StatusText)
			assert.Equal(t, tt.color, v.ModeColor)
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	subject := Subject{
		Mode: ModeYellow,
		Params: Params{
			LaterStartTime: evalNow.Add(-30 * time.Minute).UnixMilli(),
			LaterMinutes:   60,
		},
	}

	first := Evaluate(subject, evalNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(subject, evalNow))
	}
}

func TestEvaluateBlue(t *testing.T) {
	tests := []struct {
		name      string
		openDate  string
		available bool
		status    string
	}{
		{"future date blocks", "2025-06-16", false, "Active from 2025-06-16"},
		{"today opens", "2025-06-15", true, "Online now"},
		{"past date opens", "2025-06-01", true, "Online now"},
		{"missing date blocks", "", false, "Unavailable"},
		{"malformed date blocks", "16/06/2025", false, "Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(Subject{Mode: ModeBlue, Params: Params{OpenDate: tt.openDate}}, evalNow)
			assert.Equal(t, tt.available, v.Available)
			assert.Equal(t, tt.status, v.StatusText)
		})
	}
}

func TestEvaluateBlueIgnoresTimeOfDay(t *testing.T) {
	subject := Subject{Mode: ModeBlue, Params: Params{OpenDate: "2025-06-15"}}

	almostMidnight := time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC)
	endOfDay := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)

	assert.True(t, Evaluate(subject, almostMidnight).Available)
	assert.True(t, Evaluate(subject, endOfDay).Available)
}

func TestEvaluateYellow(t *testing.T) {
	start := evalNow.Add(-30 * time.Minute).UnixMilli()

	tests := []struct {
		name      string
		params    Params
		now       time.Time
		available bool
		status    string
	}{
		{
			name:      "inside window",
			params:    Params{LaterStartTime: start, LaterMinutes: 60},
			now:       evalNow,
			available: true,
			status:    "Active: 30m",
		},
		{
			name:      "long window renders hours",
			params:    Params{LaterStartTime: start, LaterMinutes: 180},
			now:       evalNow,
			available: true,
			status:    "Active: 2h 30m",
		},
		{
			name:      "window passed",
			params:    Params{LaterStartTime: start, LaterMinutes: 10},
			now:       evalNow,
			available: false,
			status:    "Expired",
		},
		{
			name:      "never armed",
			params:    Params{},
			now:       evalNow,
			available: false,
			status:    "Expired",
		},
		{
			name:      "zero duration",
			params:    Params{LaterStartTime: start},
			now:       evalNow,
			available: false,
			status:    "Expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(Subject{Mode: ModeYellow, Params: tt.params}, tt.now)
			assert.Equal(t, tt.available, v.Available)
			assert.Equal(t, tt.status, v.StatusText)
		})
	}
}

func TestEvaluateYellowDeadlineIsExclusive(t *testing.T) {
	start := evalNow.UnixMilli()
	subject := Subject{Mode: ModeYellow, Params: Params{LaterStartTime: start, LaterMinutes: 30}}
	deadline := start + 30*60_000

	beforeDeadline := Evaluate(subject, time.UnixMilli(deadline-1))
	require.True(t, beforeDeadline.Available)

	atDeadline := Evaluate(subject, time.UnixMilli(deadline))
	assert.False(t, atDeadline.Available)
	assert.Equal(t, "Expired", atDeadline.StatusText)
}

func TestEvaluateOrange(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		available bool
		status    string
	}{
		{"under cap", Params{MaxContact: 3, CurrentContacts: 1}, true, "Active (1/3)"},
		{"at cap", Params{MaxContact: 3, CurrentContacts: 3}, false, "Max contacts reached"},
		{"over cap", Params{MaxContact: 3, CurrentContacts: 5}, false, "Max contacts reached"},
		{"missing cap blocks", Params{CurrentContacts: 0}, false, "Max contacts reached"},
		{"negative cap blocks", Params{MaxContact: -1}, false, "Max contacts reached"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(Subject{Mode: ModeOrange, Params: tt.params}, evalNow)
			assert.Equal(t, tt.available, v.Available)
			assert.Equal(t, tt.status, v.StatusText)
		})
	}
}

func TestEvaluateBrownIsNeutral(t *testing.T) {
	hour, minute := 9, 30
	v := Evaluate(Subject{
		Mode:   ModeBrown,
		Params: Params{TimedHour: &hour, TimedMinute: &minute},
	}, evalNow)

	assert.True(t, v.Available, "retired mode must never gate")
	assert.Equal(t, "Feature Deprecated", v.Reason)
	assert.Equal(t, ModeColor(ModeInvisible), v.ModeColor)
}

func TestModeColor(t *testing.T) {
	assert.Equal(t, "#0066FF", ModeColor(ModeBlue))
	assert.Equal(t, "#FBBF24", ModeColor(ModeYellow))
	assert.Equal(t, "#F97316", ModeColor(ModeOrange))
	assert.Equal(t, "#10B981", ModeColor(ModeGreen))
	assert.Equal(t, "#DC2626", ModeColor(ModeRed))
	assert.Equal(t, "#9CA3AF", ModeColor(ModeGray))
	assert.Equal(t, "#92400E", ModeColor(ModeBrown))
	assert.Equal(t, "#E5E7EB", ModeColor(ModeInvisible))
}
