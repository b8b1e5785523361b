package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sereno-backend/internal/model"
)

// HTTPClient talks to the chat service over its JSON wire contract.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		hc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *HTTPClient) Send(ctx context.Context, message string, turns []model.ContextTurn) (model.ChatResponse, error) {
	payload, err := json.Marshal(model.ChatRequest{Message: message, Context: turns})
	if err != nil {
		return model.ChatResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return model.ChatResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return model.ChatResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp model.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error != "" {
			return model.ChatResponse{}, fmt.Errorf("chat endpoint: %s (status %d)", errResp.Error, resp.StatusCode)
		}
		return model.ChatResponse{}, fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
	}

	var chatResp model.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return model.ChatResponse{}, fmt.Errorf("decode chat response: %w", err)
	}
	return chatResp, nil
}

// Resources fetches the static crisis-resource directory.
func (c *HTTPClient) Resources(ctx context.Context) (model.ResourceDirectory, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/resources", nil)
	if err != nil {
		return model.ResourceDirectory{}, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return model.ResourceDirectory{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.ResourceDirectory{}, fmt.Errorf("resources endpoint returned status %d", resp.StatusCode)
	}

	var dir model.ResourceDirectory
	if err := json.NewDecoder(resp.Body).Decode(&dir); err != nil {
		return model.ResourceDirectory{}, fmt.Errorf("decode resources: %w", err)
	}
	return dir, nil
}
