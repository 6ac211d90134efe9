package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chatbot-backend/internal/ai"
	"chatbot-backend/internal/chat"
)

type gptChatReq struct {
	Message   string          `json:"message"`
	History   []chat.Exchange `json:"history"`
	SessionID string          `json:"session_id"`
}

// GPTChat runs the cloud strategy and persists the exchange on an existing
// session. Provider errors fail the request; there is no retry.
func (h *Handler) GPTChat(c *gin.Context) {
	var req gptChatReq
	_ = c.ShouldBindJSON(&req)
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mensagem não fornecida"})
		return
	}

	reply, err := h.ChatSvc.CloudChat(c.Request.Context(), req.SessionID, req.Message, req.History)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sessão não encontrada"})
			return
		}
		h.Log.Error("gpt chat failed", zap.String("session_id", req.SessionID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Falha ao consultar o modelo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply, "session_id": req.SessionID})
}

type deepseekChatReq struct {
	Message   string       `json:"message"`
	History   []ai.Message `json:"history"`
	SessionID string       `json:"session_id"`
}

// DeepseekChat runs the local strategy. A provider failure comes back as the
// reply text, not as an HTTP error.
func (h *Handler) DeepseekChat(c *gin.Context) {
	var req deepseekChatReq
	_ = c.ShouldBindJSON(&req)
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mensagem não fornecida"})
		return
	}

	reply := h.ChatSvc.LocalChat(c.Request.Context(), req.SessionID, req.Message, req.History)

	c.JSON(http.StatusOK, gin.H{"response": reply, "session_id": req.SessionID})
}

// ChatHistory dumps the whole in-memory history cache: every session, no
// user isolation. It reflects only exchanges since the last restart.
func (h *Handler) ChatHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.ChatSvc.History())
}
