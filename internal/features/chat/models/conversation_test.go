package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoWayConversation() *Conversation {
	return &Conversation{
		ID:           "conv-1",
		Participants: []string{"alice", "bob"},
		Messages: []Message{
			{ID: "m1", SenderID: "alice", Text: "hi", Timestamp: 100},
			{ID: "m2", SenderID: "bob", Text: "hey", Timestamp: 200},
		},
		TimerStarted: 100,
	}
}

func TestCounterpart(t *testing.T) {
	conv := twoWayConversation()
	assert.Equal(t, "bob", conv.Counterpart("alice"))
	assert.Equal(t, "alice", conv.Counterpart("bob"))
	assert.Equal(t, "alice", conv.Counterpart("stranger"))
}

func TestTurnTracking(t *testing.T) {
	conv := twoWayConversation()

	assert.False(t, conv.WaitingForResponse("alice"))
	assert.True(t, conv.TheyRespondedLast("alice"))
	assert.True(t, conv.WaitingForResponse("bob"))
	assert.False(t, conv.TheyRespondedLast("bob"))

	empty := &Conversation{Participants: []string{"alice", "bob"}}
	assert.False(t, empty.WaitingForResponse("alice"))
	assert.False(t, empty.TheyRespondedLast("alice"))
}

func TestView(t *testing.T) {
	conv := twoWayConversation()

	alice := conv.View("alice")
	assert.Equal(t, "bob", alice.UserID)
	assert.Equal(t, "hey", alice.LastMessage)
	assert.Equal(t, int64(200), alice.LastMessageTime)
	assert.Equal(t, "bob", alice.LastMessageSenderID)
	assert.False(t, alice.WaitingForResponse)
	assert.True(t, alice.TheyRespondedLast)

	bob := conv.View("bob")
	assert.Equal(t, "alice", bob.UserID)
	assert.True(t, bob.WaitingForResponse)
	assert.False(t, bob.TheyRespondedLast)
}

func TestViewOfEmptyConversation(t *testing.T) {
	conv := &Conversation{ID: "conv-1", Participants: []string{"alice", "bob"}}
	view := conv.View("alice")

	assert.Empty(t, view.LastMessage)
	assert.Zero(t, view.LastMessageTime)
	assert.False(t, view.WaitingForResponse)
	assert.False(t, view.TheyRespondedLast)
}
