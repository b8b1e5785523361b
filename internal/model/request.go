package model

type ChatRequest struct {
	Message string        `json:"message" binding:"required"`
	Context []ContextTurn `json:"context"`
}
