package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sereno-backend/internal/model"
	"sereno-backend/internal/service"
	"sereno-backend/pkg/logger"
)

type ChatHandler struct {
	chatService *service.ChatService
	env         string
}

func NewChatHandler(chatService *service.ChatService, env string) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		env:         env,
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Message cannot be empty"})
		return
	}

	resp, err := h.chatService.Respond(c.Request.Context(), req.Message, req.Context)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) || errors.Is(err, service.ErrMessageTooLong) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
			return
		}

		logger.Errorf("Chat error: %v", err)
		errResp := model.ErrorResponse{Error: "Failed to process your message"}
		// The raw failure is useful while developing but leaks provider
		// detail, so production responses stay generic.
		if h.env == "development" {
			errResp.Details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, errResp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) Resources(c *gin.Context) {
	c.JSON(http.StatusOK, service.Directory())
}
