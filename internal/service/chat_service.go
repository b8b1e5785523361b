// Package service orchestrates the server side of a chat exchange:
// validation, defensive redaction, and the single provider call.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"sereno-backend/internal/llm"
	"sereno-backend/internal/model"
	"sereno-backend/internal/redact"
	"sereno-backend/pkg/logger"
)

const maxMessageLen = 500

var (
	ErrEmptyMessage   = errors.New("Message cannot be empty")
	ErrMessageTooLong = errors.New("Message too long")
)

type ChatService struct {
	model llm.Model
}

func NewChatService(m llm.Model) *ChatService {
	return &ChatService{model: m}
}

// Respond validates the inbound message, scrubs identifiers, and asks the
// model for a reply grounded in the supplied prior turns. Clients redact
// before sending; scrubbing again here keeps the guarantee even for
// callers that skip it.
func (s *ChatService) Respond(ctx context.Context, message string, turns []model.ContextTurn) (model.ChatResponse, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return model.ChatResponse{}, ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > maxMessageLen {
		return model.ChatResponse{}, ErrMessageTooLong
	}

	anonymized := redact.Scrub(trimmed)

	reply, err := s.model.Reply(ctx, anonymized, turns)
	if err != nil {
		logger.Errorf("Model call failed: %v", err)
		return model.ChatResponse{}, fmt.Errorf("model call failed: %w", err)
	}

	return model.ChatResponse{
		Message:   reply,
		Timestamp: time.Now(),
	}, nil
}
