// Package relay drives one chat round trip: screen and redact the
// outgoing text, call the chat endpoint with the conversation so far, and
// append both turns to the active conversation.
package relay

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"sereno-backend/internal/conversation"
	"sereno-backend/internal/model"
	"sereno-backend/internal/redact"
	"sereno-backend/internal/screen"
	"sereno-backend/pkg/logger"
)

// MaxMessageLen is the endpoint's message ceiling, counted in runes.
const MaxMessageLen = 500

var timeNow = time.Now

var (
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrMessageTooLong = errors.New("message too long")

	// ErrStaleReply means the reply arrived after the user had already
	// switched conversations; it was discarded, not appended.
	ErrStaleReply = errors.New("reply discarded: active conversation changed")
)

// Client is the outward-facing chat endpoint. One call per send, no
// retries; failures are reported upward.
type Client interface {
	Send(ctx context.Context, message string, turns []model.ContextTurn) (model.ChatResponse, error)
}

// Result is the outcome of one send. CrisisFlagged is set independently
// of success or failure and callers should surface support resources
// whenever it is true.
type Result struct {
	Reply         model.Message
	CrisisFlagged bool
}

type Relay struct {
	mgr    *conversation.Manager
	client Client
}

func New(mgr *conversation.Manager, client Client) *Relay {
	return &Relay{mgr: mgr, client: client}
}

// Send runs one round trip. Rejected input mutates nothing. The user turn
// is appended before the call and is never removed on failure. The crisis
// screen runs on the raw text and never blocks the send; redaction runs
// before the text leaves the process.
func (r *Relay) Send(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxMessageLen {
		return Result{}, ErrMessageTooLong
	}

	// Context is the conversation state before this turn.
	prior := r.mgr.Active()
	epoch := r.mgr.Epoch()

	flagged := screen.Flagged(text)

	userMsg := model.Message{
		ID:        uuid.New().String(),
		Content:   text,
		Sender:    model.SenderUser,
		Timestamp: timeNow(),
	}
	if user, ok := r.mgr.CurrentUser(); ok {
		userMsg.Username = user.Username
	}
	r.mgr.Append(userMsg)

	turns := make([]model.ContextTurn, len(prior.Messages))
	for i, msg := range prior.Messages {
		turns[i] = model.ContextTurn{Role: string(msg.Sender), Content: msg.Content}
	}

	resp, err := r.client.Send(ctx, redact.Scrub(text), turns)
	if err != nil {
		// The optimistic user turn stays; a failed send never removes
		// previously appended content.
		return Result{CrisisFlagged: flagged}, err
	}

	if r.mgr.Epoch() != epoch {
		logger.Warnf("Discarding late reply for superseded conversation (session %q)", prior.CurrentSessionID)
		return Result{CrisisFlagged: flagged}, ErrStaleReply
	}

	botMsg := model.Message{
		ID:        uuid.New().String(),
		Content:   resp.Message,
		Sender:    model.SenderBot,
		Timestamp: timeNow(),
	}
	r.mgr.Append(botMsg)

	// First completed pair of a brand-new conversation: archive it so it
	// shows up in the session list without an explicit save.
	if len(prior.Messages) == 0 && prior.CurrentSessionID == "" {
		r.mgr.SaveCurrent()
	}

	return Result{Reply: botMsg, CrisisFlagged: flagged}, nil
}
