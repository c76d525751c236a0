package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"whisperbox.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	messageHandler *handlers.MessageHandler
	suggestHandler *handlers.SuggestHandler
	authMiddleware gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Request-ID")
	cfg.AllowCredentials = false
	r.Use(cors.New(cfg))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "whisperbox-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/sign-up", d.authHandler.SignUp)
			auth.POST("/verify-code", d.authHandler.VerifyCode)
			auth.POST("/sign-in", d.authHandler.SignIn)
			auth.GET("/check-username-unique", d.authHandler.CheckUsername)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Public intake and status routes
		v1.POST("/send-message", d.messageHandler.SendMessage)
		v1.GET("/accept-messages", d.messageHandler.GetAcceptMessages)

		// Suggestion helper (public)
		v1.POST("/suggest-messages", d.suggestHandler.SuggestMessages)

		// Mailbox routes (protected)
		messages := v1.Group("/messages")
		messages.Use(d.authMiddleware)
		{
			messages.GET("", d.messageHandler.GetMessages)
			messages.DELETE("/:messageid", d.messageHandler.DeleteMessage)
		}

		// Acceptance gate toggle (protected)
		v1.POST("/accept-messages", d.authMiddleware, d.messageHandler.UpdateAcceptMessages)
	}
}
