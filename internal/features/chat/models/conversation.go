package models

import (
	"errors"
	"time"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrTargetUnavailable    = errors.New("user is unavailable")
	ErrMaxContactsReached   = errors.New("user has reached maximum contacts")
	ErrNotRoundSender       = errors.New("only the sender of the last message may rate this round")
	ErrRoundAlreadyRated    = errors.New("round already rated")
)

// Message is one chat message. Timestamp is epoch milliseconds.
type Message struct {
	ID        string `json:"id"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
	Seen      bool   `json:"seen"`
}

// Conversation is the stored record for one participant pair. TimerStarted
// marks the current round's first message (0 = no round yet); it is set when a
// round opens and only rewritten when the next round starts. Rated and
// TimerExpired describe the current round only.
type Conversation struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Messages     []Message `json:"messages"`
	TimerStarted int64     `json:"timerStarted,omitempty"`
	TimerExpired bool      `json:"timerExpired"`
	Rated        bool      `json:"rated"`
	RatingType   string    `json:"ratingType,omitempty"`
	RatingReason string    `json:"ratingReason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Counterpart returns the other participant's id from selfID's perspective.
func (c *Conversation) Counterpart(selfID string) string {
	for _, p := range c.Participants {
		if p != selfID {
			return p
		}
	}
	return ""
}

func (c *Conversation) HasMessages() bool {
	return len(c.Messages) > 0
}

func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

func (c *Conversation) LastMessageSenderID() string {
	if m := c.LastMessage(); m != nil {
		return m.SenderID
	}
	return ""
}

// WaitingForResponse reports whether selfID sent the last message and is
// still owed a reply. Derived from the message tail on every read; never
// stored.
func (c *Conversation) WaitingForResponse(selfID string) bool {
	m := c.LastMessage()
	return m != nil && m.SenderID == selfID
}

// TheyRespondedLast reports whether the counterpart sent the most recent
// message.
func (c *Conversation) TheyRespondedLast(selfID string) bool {
	m := c.LastMessage()
	return m != nil && m.SenderID != selfID
}

// ConversationView is the per-viewer projection the client consumes: the
// counterpart id plus the derived tail cache and turn-tracking flags.
type ConversationView struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	Messages            []Message `json:"messages"`
	TimerStarted        int64     `json:"timerStarted,omitempty"`
	TimerExpired        bool      `json:"timerExpired"`
	Rated               bool      `json:"rated"`
	LastMessage         string    `json:"lastMessage"`
	LastMessageTime     int64     `json:"lastMessageTime"`
	LastMessageSenderID string    `json:"lastMessageSenderId,omitempty"`
	WaitingForResponse  bool      `json:"waitingForResponse"`
	TheyRespondedLast   bool      `json:"theyRespondedLast"`
}

// View projects the conversation for one participant.
func (c *Conversation) View(viewerID string) *ConversationView {
	view := &ConversationView{
		ID:           c.ID,
		UserID:       c.Counterpart(viewerID),
		Messages:     c.Messages,
		TimerStarted: c.TimerStarted,
		TimerExpired: c.TimerExpired,
		Rated:        c.Rated,
	}

	if m := c.LastMessage(); m != nil {
		view.LastMessage = m.Text
		view.LastMessageTime = m.Timestamp
		view.LastMessageSenderID = m.SenderID
		view.WaitingForResponse = m.SenderID == viewerID
		view.TheyRespondedLast = m.SenderID != viewerID
	}
	return view
}

type StartRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type StartResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"` // created or exists
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

type RateRequest struct {
	IsGood bool   `json:"isGood"`
	Reason string `json:"reason,omitempty"`
}
