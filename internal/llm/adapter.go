// Package llm adapts an OpenAI-compatible completion endpoint to the
// single call the chat service needs.
package llm

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"sereno-backend/internal/config"
	"sereno-backend/internal/model"
)

// Model produces one assistant reply for a message plus its prior turns.
// The call is made once and never retried; transient failures surface to
// the caller.
type Model interface {
	Reply(ctx context.Context, message string, history []model.ContextTurn) (string, error)
}

type openaiModel struct {
	client *openai.Client
	cfg    config.LLMConfig
}

func New(cfg config.LLMConfig) Model {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &openaiModel{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

func (m *openaiModel) Reply(ctx context.Context, message string, history []model.ContextTurn) (string, error) {
	messages := BuildContext(history)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       m.cfg.Model,
		Messages:    messages,
		MaxTokens:   m.cfg.MaxTokens,
		Temperature: m.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model %s", m.cfg.Model)
	}

	return resp.Choices[0].Message.Content, nil
}
