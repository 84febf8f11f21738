package reputation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPenaltyTable(t *testing.T) {
	tests := []struct {
		reason string
		delta  int
	}{
		{ReasonGhosted, -15},
		{ReasonRude, -20},
		{ReasonSpam, -25},
		{ReasonInappropriate, -30},
		{ReasonOneWord, -10},
		{"something else entirely", -10},
		{"", -10},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			assert.Equal(t, tt.delta, Penalty(tt.reason))
		})
	}
}

func TestDelta(t *testing.T) {
	assert.Equal(t, 10, Delta(true, ""))
	assert.Equal(t, 10, Delta(true, ReasonSpam), "reason is ignored on a good rating")
	assert.Equal(t, -25, Delta(false, ReasonSpam))
	assert.Equal(t, -10, Delta(false, "unlisted"))
}

func TestBadReasonsIsACopy(t *testing.T) {
	reasons := BadReasons()
	assert.Len(t, reasons, 5)

	reasons[ReasonSpam] = 0
	assert.Equal(t, -25, Penalty(ReasonSpam), "mutating the copy must not touch the table")
}
