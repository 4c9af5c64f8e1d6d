// Package chat holds the conversation state machine and the submission
// lifecycle that drives it.
package chat

import (
	"strings"

	apperrors "github.com/diogo/goalchat/internal/errors"
	"github.com/diogo/goalchat/internal/models"
)

// State is the submission state of a conversation
type State int

const (
	StateIdle State = iota
	StateSending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	default:
		return "unknown"
	}
}

// IntentKind names a view change the UI must apply
type IntentKind int

const (
	IntentAppend IntentKind = iota + 1
	IntentShowPending
	IntentRemovePending
	IntentClearInput
	IntentScrollToEnd
	IntentShowWelcome
	IntentHideWelcome
	IntentPlayAnimation
	IntentCollapseInput
)

var intentNames = map[IntentKind]string{
	IntentAppend:        "append",
	IntentShowPending:   "show-pending",
	IntentRemovePending: "remove-pending",
	IntentClearInput:    "clear-input",
	IntentScrollToEnd:   "scroll-to-end",
	IntentShowWelcome:   "show-welcome",
	IntentHideWelcome:   "hide-welcome",
	IntentPlayAnimation: "play-animation",
	IntentCollapseInput: "collapse-input",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// Intent is one view change produced by a state transition.
// Message is only set for IntentAppend.
type Intent struct {
	Kind    IntentKind
	Message models.Message
}

// Ticket identifies an accepted submission. It becomes stale when the
// conversation is reset before the reply arrives.
type Ticket struct {
	Generation uint64
	Input      string
}

// Conversation is the single owned conversation state. It is not safe for
// concurrent use; the UI goroutine owns it and network work only carries
// Tickets.
type Conversation struct {
	messages   []models.Message
	pending    bool
	state      State
	generation uint64
}

// NewConversation returns an empty, idle conversation
func NewConversation() *Conversation {
	return &Conversation{}
}

// Begin accepts a submission. Whitespace-only input returns ErrEmptyInput and
// a submission while another is in flight returns ErrBusy; neither changes
// state.
func (c *Conversation) Begin(input string) (Ticket, []Intent, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return Ticket{}, nil, apperrors.ErrEmptyInput
	}
	if c.state != StateIdle {
		return Ticket{}, nil, apperrors.ErrBusy
	}

	intents := make([]Intent, 0, 6)
	if len(c.messages) == 0 {
		intents = append(intents, Intent{Kind: IntentHideWelcome})
	}

	msg := models.NewMessage(models.RoleUser, text)
	c.messages = append(c.messages, msg)
	c.pending = true
	c.state = StateSending

	intents = append(intents,
		Intent{Kind: IntentAppend, Message: msg},
		Intent{Kind: IntentClearInput},
		Intent{Kind: IntentShowPending},
		Intent{Kind: IntentScrollToEnd},
		Intent{Kind: IntentPlayAnimation},
	)

	return Ticket{Generation: c.generation, Input: text}, intents, nil
}

// Complete finishes the submission for t with the assistant's reply.
// It reports false and does nothing when t is stale.
func (c *Conversation) Complete(t Ticket, reply string) ([]Intent, bool) {
	return c.finish(t, reply)
}

// Fail finishes the submission for t with the fixed error reply.
// The cause is for the caller to log; it never reaches the conversation.
func (c *Conversation) Fail(t Ticket, _ error) ([]Intent, bool) {
	return c.finish(t, models.ErrorReply)
}

func (c *Conversation) finish(t Ticket, text string) ([]Intent, bool) {
	if !c.accepts(t) {
		return nil, false
	}

	msg := models.NewMessage(models.RoleAssistant, text)
	c.pending = false
	c.messages = append(c.messages, msg)
	c.state = StateIdle

	return []Intent{
		{Kind: IntentRemovePending},
		{Kind: IntentAppend, Message: msg},
		{Kind: IntentScrollToEnd},
	}, true
}

func (c *Conversation) accepts(t Ticket) bool {
	return c.state == StateSending && t.Generation == c.generation
}

// Reset clears the conversation back to the welcome state. Any reply still in
// flight becomes stale. Calling Reset on an empty conversation only repeats
// the welcome intents.
func (c *Conversation) Reset() []Intent {
	intents := make([]Intent, 0, 3)
	if c.pending {
		intents = append(intents, Intent{Kind: IntentRemovePending})
	}

	c.messages = nil
	c.pending = false
	c.state = StateIdle
	c.generation++

	return append(intents,
		Intent{Kind: IntentShowWelcome},
		Intent{Kind: IntentCollapseInput},
	)
}

// Messages returns a copy of the conversation in display order
func (c *Conversation) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	return len(c.messages)
}

// IsEmpty reports whether the welcome banner should be visible
func (c *Conversation) IsEmpty() bool {
	return len(c.messages) == 0 && !c.pending
}

// Pending reports whether the loading placeholder is shown
func (c *Conversation) Pending() bool {
	return c.pending
}

// State returns the current submission state
func (c *Conversation) State() State {
	return c.state
}

// LastReply returns the most recent assistant message text
func (c *Conversation) LastReply() (string, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == models.RoleAssistant {
			return c.messages[i].Text, true
		}
	}
	return "", false
}
