package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"chatbot-backend/internal/chat"
	"chatbot-backend/internal/config"
	"chatbot-backend/internal/httpapi/handlers"
	"chatbot-backend/internal/httpapi/middleware"
)

func NewRouter(db *gorm.DB, cfg config.Config, svc *chat.Service, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(cors.Default()) // all origins, like the frontend expects

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "rota não encontrada"})
	})

	h := handlers.NewHandler(db, cfg, svc, log)

	// chat (no auth)
	r.POST("/gpt/chat", h.GPTChat)
	r.POST("/deepseek/chat", h.DeepseekChat)
	r.GET("/chat/history", h.ChatHistory)

	// accounts
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	// session management (JWT required)
	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthRequired(cfg.Secret))
	authGroup.GET("/sessions", h.ListSessions)
	authGroup.POST("/sessions", h.CreateSession)
	authGroup.PUT("/sessions/:session_id", h.UpdateSession)
	authGroup.DELETE("/sessions/:session_id", h.DeleteSession)
	authGroup.PUT("/sessions/:session_id/rename", h.RenameSession)

	return r
}
