package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"chatbot-backend/internal/auth"
	"chatbot-backend/internal/chat"
	"chatbot-backend/internal/config"
	"chatbot-backend/internal/httpapi/middleware"
)

type Handler struct {
	DB      *gorm.DB
	Cfg     config.Config
	Creds   *auth.CredentialStore
	Repo    *chat.Repo
	ChatSvc *chat.Service
	Log     *zap.Logger
}

func NewHandler(db *gorm.DB, cfg config.Config, svc *chat.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		DB:      db,
		Cfg:     cfg,
		Creds:   auth.NewCredentialStore(db),
		Repo:    chat.NewRepo(db),
		ChatSvc: svc,
		Log:     log,
	}
}

func userIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
