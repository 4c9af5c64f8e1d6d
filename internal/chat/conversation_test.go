package chat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/diogo/goalchat/internal/errors"
	"github.com/diogo/goalchat/internal/models"
)

func kinds(intents []Intent) []IntentKind {
	out := make([]IntentKind, len(intents))
	for i, in := range intents {
		out[i] = in.Kind
	}
	return out
}

func TestConversation_BeginRejectsEmptyInput(t *testing.T) {
	for _, input := range []string{"", " ", "\n\t  ", "\r\n"} {
		c := NewConversation()
		_, intents, err := c.Begin(input)

		assert.ErrorIs(t, err, apperrors.ErrEmptyInput, "input %q", input)
		assert.Nil(t, intents)
		assert.Equal(t, 0, c.Len())
		assert.False(t, c.Pending())
		assert.Equal(t, StateIdle, c.State())
	}
}

func TestConversation_Begin(t *testing.T) {
	c := NewConversation()

	ticket, intents, err := c.Begin("  누가 우승했나요?  ")
	require.NoError(t, err)

	assert.Equal(t, "누가 우승했나요?", ticket.Input)
	assert.Equal(t, StateSending, c.State())
	assert.True(t, c.Pending())
	assert.False(t, c.IsEmpty())

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, "누가 우승했나요?", msgs[0].Text)

	assert.Equal(t, []IntentKind{
		IntentHideWelcome,
		IntentAppend,
		IntentClearInput,
		IntentShowPending,
		IntentScrollToEnd,
		IntentPlayAnimation,
	}, kinds(intents))
	assert.Equal(t, msgs[0].ID, intents[1].Message.ID)
}

func TestConversation_BeginWhileSendingIsRejected(t *testing.T) {
	c := NewConversation()
	_, _, err := c.Begin("first")
	require.NoError(t, err)

	_, intents, err := c.Begin("second")
	assert.ErrorIs(t, err, apperrors.ErrBusy)
	assert.Nil(t, intents)
	assert.Equal(t, 1, c.Len())
}

func TestConversation_Complete(t *testing.T) {
	c := NewConversation()
	ticket, _, err := c.Begin("hi")
	require.NoError(t, err)

	intents, ok := c.Complete(ticket, "Hello")
	require.True(t, ok)

	assert.Equal(t, []IntentKind{IntentRemovePending, IntentAppend, IntentScrollToEnd}, kinds(intents))
	assert.Equal(t, "Hello", intents[1].Message.Text)
	assert.Equal(t, models.RoleAssistant, intents[1].Message.Role)
	assert.False(t, c.Pending())
	assert.Equal(t, StateIdle, c.State())

	reply, ok := c.LastReply()
	assert.True(t, ok)
	assert.Equal(t, "Hello", reply)

	// a second completion for the same ticket is ignored
	_, ok = c.Complete(ticket, "again")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestConversation_Fail(t *testing.T) {
	c := NewConversation()
	ticket, _, err := c.Begin("hi")
	require.NoError(t, err)

	intents, ok := c.Fail(ticket, errors.New("boom"))
	require.True(t, ok)

	assert.Equal(t, []IntentKind{IntentRemovePending, IntentAppend, IntentScrollToEnd}, kinds(intents))
	assert.Equal(t, models.ErrorReply, intents[1].Message.Text)
	assert.False(t, c.Pending())

	// submission is possible again right away
	_, _, err = c.Begin("retry")
	assert.NoError(t, err)
}

func TestConversation_SecondExchangeKeepsWelcomeHidden(t *testing.T) {
	c := NewConversation()
	ticket, _, _ := c.Begin("one")
	c.Complete(ticket, "1")

	_, intents, err := c.Begin("two")
	require.NoError(t, err)
	assert.NotContains(t, kinds(intents), IntentHideWelcome)
}

func TestConversation_Reset(t *testing.T) {
	c := NewConversation()
	for _, q := range []string{"a", "b", "c"} {
		ticket, _, err := c.Begin(q)
		require.NoError(t, err)
		c.Complete(ticket, "reply "+q)
	}
	require.Equal(t, 6, c.Len())

	intents := c.Reset()
	assert.Equal(t, []IntentKind{IntentShowWelcome, IntentCollapseInput}, kinds(intents))
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, StateIdle, c.State())

	_, ok := c.LastReply()
	assert.False(t, ok)
}

func TestConversation_ResetIsIdempotent(t *testing.T) {
	c := NewConversation()
	first := c.Reset()
	second := c.Reset()

	assert.Equal(t, kinds(first), kinds(second))
	assert.Contains(t, kinds(second), IntentShowWelcome)
	assert.True(t, c.IsEmpty())
}

func TestConversation_ResetWhileSending(t *testing.T) {
	c := NewConversation()
	ticket, _, err := c.Begin("slow question")
	require.NoError(t, err)

	intents := c.Reset()
	assert.Equal(t, []IntentKind{IntentRemovePending, IntentShowWelcome, IntentCollapseInput}, kinds(intents))
	assert.False(t, c.Pending())

	// the late reply belongs to the previous session
	late, ok := c.Complete(ticket, "late")
	assert.False(t, ok)
	assert.Nil(t, late)
	assert.Equal(t, 0, c.Len())

	_, ok = c.Fail(ticket, errors.New("late failure"))
	assert.False(t, ok)
	assert.True(t, c.IsEmpty())
}

func TestConversation_StaleTicketAfterNewSubmission(t *testing.T) {
	c := NewConversation()
	old, _, _ := c.Begin("old")
	c.Reset()

	current, _, err := c.Begin("new")
	require.NoError(t, err)
	require.NotEqual(t, old.Generation, current.Generation)

	_, ok := c.Complete(old, "old reply")
	assert.False(t, ok)
	assert.True(t, c.Pending())

	_, ok = c.Complete(current, "new reply")
	assert.True(t, ok)

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "new reply", msgs[1].Text)
}

func TestConversation_AtMostOnePending(t *testing.T) {
	c := NewConversation()
	shown := 0
	track := func(intents []Intent) {
		for _, in := range intents {
			switch in.Kind {
			case IntentShowPending:
				shown++
			case IntentRemovePending:
				shown--
			}
			assert.LessOrEqual(t, shown, 1)
			assert.GreaterOrEqual(t, shown, 0)
		}
	}

	for i := 0; i < 5; i++ {
		ticket, intents, err := c.Begin("q")
		require.NoError(t, err)
		track(intents)

		_, intents, _ = c.Begin("again")
		track(intents)

		if i%2 == 0 {
			intents, _ = c.Complete(ticket, "ok")
		} else {
			intents, _ = c.Fail(ticket, errors.New("x"))
		}
		track(intents)
	}

	_, intents, _ := c.Begin("last")
	track(intents)
	track(c.Reset())
	assert.Equal(t, 0, shown)
}

func TestConversation_MessagesIsACopy(t *testing.T) {
	c := NewConversation()
	c.Begin("hi")

	msgs := c.Messages()
	msgs[0].Text = "changed"
	assert.Equal(t, "hi", c.Messages()[0].Text)
}

func TestStateAndIntentStrings(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "sending", StateSending.String())
	assert.Equal(t, "unknown", State(9).String())
	assert.Equal(t, "show-pending", IntentShowPending.String())
	assert.Equal(t, "collapse-input", IntentCollapseInput.String())
	assert.Equal(t, "unknown", IntentKind(0).String())
}
