package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sereno-backend/internal/model"
	"sereno-backend/internal/service"
)

type stubModel struct {
	reply string
	err   error
}

func (s *stubModel) Reply(ctx context.Context, message string, history []model.ContextTurn) (string, error) {
	return s.reply, s.err
}

func newRouter(m *stubModel, env string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewChatHandler(service.NewChatService(m), env)
	r := gin.New()
	r.POST("/chat", h.Chat)
	r.GET("/resources", h.Resources)
	return r
}

func postChat(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatSuccess(t *testing.T) {
	r := newRouter(&stubModel{reply: "I'm here for you."}, "production")

	w := postChat(t, r, `{"message":"I feel low today"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "I'm here for you.", resp.Message)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestChatMissingMessage(t *testing.T) {
	r := newRouter(&stubModel{reply: "never"}, "production")

	for name, body := range map[string]string{
		"absent field": `{}`,
		"not json":     `message=hi`,
		"whitespace":   `{"message":"   "}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := postChat(t, r, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp model.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Message cannot be empty", resp.Error)
		})
	}
}

func TestChatMessageTooLong(t *testing.T) {
	r := newRouter(&stubModel{reply: "never"}, "production")

	long, err := json.Marshal(gin.H{"message": strings.Repeat("a", 501)})
	require.NoError(t, err)

	w := postChat(t, r, string(long))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Message too long", resp.Error)
}

func TestChatModelFailureHidesDetailInProduction(t *testing.T) {
	r := newRouter(&stubModel{err: errors.New("provider exploded")}, "production")

	w := postChat(t, r, `{"message":"hello"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to process your message", resp.Error)
	assert.Empty(t, resp.Details)
}

func TestChatModelFailureShowsDetailInDevelopment(t *testing.T) {
	r := newRouter(&stubModel{err: errors.New("provider exploded")}, "development")

	w := postChat(t, r, `{"message":"hello"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to process your message", resp.Error)
	assert.Contains(t, resp.Details, "provider exploded")
}

func TestResources(t *testing.T) {
	r := newRouter(&stubModel{}, "production")

	req := httptest.NewRequest(http.MethodGet, "/resources", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var dir model.ResourceDirectory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dir))
	assert.NotEmpty(t, dir.EmergencyContacts)
	assert.NotEmpty(t, dir.Organizations)
	assert.NotEmpty(t, dir.SelfHelpResources)
}
