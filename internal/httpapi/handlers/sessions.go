package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chatbot-backend/internal/chat"
)

func (h *Handler) ListSessions(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}

	sessions, err := h.Repo.ListSessionsWithMessages(c.Request.Context(), uid)
	if err != nil {
		h.Log.Error("list sessions failed", zap.String("user_id", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

type createSessionReq struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Model string `json:"model" binding:"required"`
}

func (h *Handler) CreateSession(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}

	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id, name e model são obrigatórios"})
		return
	}

	s := &chat.Session{ID: req.ID, UserID: uid, Name: req.Name, Model: req.Model}
	if err := h.Repo.CreateSession(c.Request.Context(), s); err != nil {
		if errors.Is(err, chat.ErrDuplicateSession) {
			c.JSON(http.StatusConflict, gin.H{"error": "Sessão já existe"})
			return
		}
		h.Log.Error("create session failed", zap.String("session_id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Sessão criada"})
}

type updateSessionReq struct {
	Messages []chat.Exchange `json:"messages" binding:"required"`
}

// UpdateSession is a full replace: every stored message for the session is
// dropped and the supplied list re-inserted.
func (h *Handler) UpdateSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req updateSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messages é obrigatório"})
		return
	}

	if err := h.Repo.ReplaceMessages(c.Request.Context(), sessionID, req.Messages); err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sessão não encontrada"})
			return
		}
		h.Log.Error("update session failed", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sessão atualizada"})
}

func (h *Handler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	if err := h.Repo.DeleteSession(c.Request.Context(), sessionID); err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sessão não encontrada"})
			return
		}
		h.Log.Error("delete session failed", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sessão deletada"})
}

type renameSessionReq struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) RenameSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req renameSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name é obrigatório"})
		return
	}

	if err := h.Repo.RenameSession(c.Request.Context(), sessionID, req.Name); err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sessão não encontrada"})
			return
		}
		h.Log.Error("rename session failed", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Nome da sessão atualizado"})
}
