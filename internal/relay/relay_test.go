package relay

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sereno-backend/internal/conversation"
	"sereno-backend/internal/model"
	"sereno-backend/internal/storage"
)

type fakeClient struct {
	reply      string
	err        error
	gotMessage string
	gotTurns   []model.ContextTurn
	calls      int
	onSend     func()
}

func (f *fakeClient) Send(ctx context.Context, message string, turns []model.ContextTurn) (model.ChatResponse, error) {
	f.calls++
	f.gotMessage = message
	f.gotTurns = turns
	if f.onSend != nil {
		f.onSend()
	}
	if f.err != nil {
		return model.ChatResponse{}, f.err
	}
	return model.ChatResponse{Message: f.reply, Timestamp: time.Now()}, nil
}

func newTestRelay(client *fakeClient) (*Relay, *conversation.Manager) {
	mgr := conversation.NewManager(storage.NewMemoryStore())
	return New(mgr, client), mgr
}

func TestSendHappyPathWithImplicitSave(t *testing.T) {
	client := &fakeClient{reply: "Hi! How are you feeling today?"}
	r, mgr := newTestRelay(client)

	result, err := r.Send(context.Background(), "Hello")
	require.NoError(t, err)
	assert.False(t, result.CrisisFlagged)
	assert.Equal(t, model.SenderBot, result.Reply.Sender)

	active := mgr.Active()
	require.Len(t, active.Messages, 2)
	assert.Equal(t, model.SenderUser, active.Messages[0].Sender)
	assert.Equal(t, "Hello", active.Messages[0].Content)
	assert.Equal(t, model.SenderBot, active.Messages[1].Sender)

	// The first completed pair archives the conversation on its own.
	sessions := mgr.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "Hello", sessions[0].Title)
}

func TestSendRejectsEmptyBeforeAnyMutation(t *testing.T) {
	client := &fakeClient{reply: "never"}
	r, mgr := newTestRelay(client)

	_, err := r.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, mgr.Active().Messages)
	assert.Zero(t, client.calls)
}

func TestSendRejectsOverlongBeforeAnyMutation(t *testing.T) {
	client := &fakeClient{reply: "never"}
	r, mgr := newTestRelay(client)

	_, err := r.Send(context.Background(), strings.Repeat("a", MaxMessageLen+1))
	assert.ErrorIs(t, err, ErrMessageTooLong)
	assert.Empty(t, mgr.Active().Messages)
	assert.Zero(t, client.calls)
}

func TestSendExactLimitAccepted(t *testing.T) {
	client := &fakeClient{reply: "ok"}
	r, mgr := newTestRelay(client)

	_, err := r.Send(context.Background(), strings.Repeat("a", MaxMessageLen))
	require.NoError(t, err)
	assert.Len(t, mgr.Active().Messages, 2)
}

func TestSendRedactsOutboundButKeepsRawLocally(t *testing.T) {
	client := &fakeClient{reply: "noted"}
	r, mgr := newTestRelay(client)

	raw := "email me at sam@mail.com or call 555-123-4567"
	_, err := r.Send(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "email me at [EMAIL] or call [PHONE]", client.gotMessage)
	assert.Equal(t, raw, mgr.Active().Messages[0].Content)
}

func TestSendCrisisMessageStillSends(t *testing.T) {
	client := &fakeClient{reply: "You are not alone."}
	r, mgr := newTestRelay(client)

	result, err := r.Send(context.Background(), "I want to end my life")
	require.NoError(t, err)

	assert.True(t, result.CrisisFlagged)
	assert.Equal(t, 1, client.calls, "screening must not block the send")
	assert.Len(t, mgr.Active().Messages, 2)
}

func TestSendContextIsStateBeforeNewTurn(t *testing.T) {
	client := &fakeClient{reply: "reply"}
	r, _ := newTestRelay(client)

	_, err := r.Send(context.Background(), "first")
	require.NoError(t, err)
	assert.Empty(t, client.gotTurns)

	_, err = r.Send(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, client.gotTurns, 2)
	assert.Equal(t, "user", client.gotTurns[0].Role)
	assert.Equal(t, "first", client.gotTurns[0].Content)
	assert.Equal(t, "bot", client.gotTurns[1].Role)
}

func TestSendFailureKeepsUserTurn(t *testing.T) {
	client := &fakeClient{err: errors.New("upstream down")}
	r, mgr := newTestRelay(client)

	_, err := r.Send(context.Background(), "Hello")
	require.Error(t, err)

	active := mgr.Active()
	require.Len(t, active.Messages, 1)
	assert.Equal(t, model.SenderUser, active.Messages[0].Sender)
	assert.Empty(t, mgr.Sessions(), "no implicit save without a completed pair")
}

func TestSendDiscardsLateReplyAfterSwitch(t *testing.T) {
	var mgr *conversation.Manager
	client := &fakeClient{reply: "too late"}
	client.onSend = func() {
		// The user starts a new chat while the call is in flight.
		mgr.NewChat()
	}

	r, m := newTestRelay(client)
	mgr = m

	_, err := r.Send(context.Background(), "Hello")
	assert.ErrorIs(t, err, ErrStaleReply)

	// The optimistic user turn was archived by NewChat; the late reply
	// was never appended anywhere.
	assert.Empty(t, mgr.Active().Messages)
	sessions := mgr.Sessions()
	require.Len(t, sessions, 1)
	assert.Len(t, sessions[0].Messages, 1)
}

func TestSendTagsUsername(t *testing.T) {
	client := &fakeClient{reply: "hello"}
	r, mgr := newTestRelay(client)
	mgr.Login(model.User{Username: "user2", Avatar: "👩"})

	_, err := r.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "user2", mgr.Active().Messages[0].Username)
}
