package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sereno-backend/internal/model"
)

type stubModel struct {
	reply      string
	err        error
	gotMessage string
	gotHistory []model.ContextTurn
	calls      int
}

func (s *stubModel) Reply(ctx context.Context, message string, history []model.ContextTurn) (string, error) {
	s.calls++
	s.gotMessage = message
	s.gotHistory = history
	return s.reply, s.err
}

func TestRespond(t *testing.T) {
	stub := &stubModel{reply: "That sounds difficult. Tell me more?"}
	svc := NewChatService(stub)

	turns := []model.ContextTurn{{Role: "user", Content: "earlier"}}
	resp, err := svc.Respond(context.Background(), "I had a rough week", turns)
	require.NoError(t, err)

	assert.Equal(t, "That sounds difficult. Tell me more?", resp.Message)
	assert.False(t, resp.Timestamp.IsZero())
	assert.Equal(t, "I had a rough week", stub.gotMessage)
	assert.Equal(t, turns, stub.gotHistory)
}

func TestRespondRejectsEmpty(t *testing.T) {
	stub := &stubModel{}
	svc := NewChatService(stub)

	_, err := svc.Respond(context.Background(), "  \n\t ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, stub.calls)
}

func TestRespondRejectsOverlong(t *testing.T) {
	stub := &stubModel{}
	svc := NewChatService(stub)

	_, err := svc.Respond(context.Background(), strings.Repeat("x", maxMessageLen+1), nil)
	assert.ErrorIs(t, err, ErrMessageTooLong)
	assert.Zero(t, stub.calls)
}

func TestRespondCountsRunesNotBytes(t *testing.T) {
	stub := &stubModel{reply: "ok"}
	svc := NewChatService(stub)

	// 500 multibyte runes are within the limit even though the byte
	// count is far over it.
	_, err := svc.Respond(context.Background(), strings.Repeat("é", maxMessageLen), nil)
	assert.NoError(t, err)
}

func TestRespondScrubsBeforeModelCall(t *testing.T) {
	stub := &stubModel{reply: "ok"}
	svc := NewChatService(stub)

	_, err := svc.Respond(context.Background(), "reach me at ana@mail.org or 4155551234", nil)
	require.NoError(t, err)
	assert.Equal(t, "reach me at [EMAIL] or [PHONE]", stub.gotMessage)
}

func TestRespondWrapsModelFailure(t *testing.T) {
	cause := errors.New("connection refused")
	svc := NewChatService(&stubModel{err: cause})

	_, err := svc.Respond(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrEmptyMessage)
	assert.NotErrorIs(t, err, ErrMessageTooLong)
}
