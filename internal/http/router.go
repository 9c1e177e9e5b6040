package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	patientH *PatientHandler,
	chatH *ChatHandler,
	scoreH *ScoreHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging y recovery.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	// Rutas JSON. El stream SSE queda fuera del middleware de content-type.
	api := r.Group("/", jsonContentTypeMiddleware())
	api.GET("/health", chatH.Health)
	api.GET("/patients", patientH.ListPatients)
	api.POST("/chat", chatH.Chat)
	api.POST("/score", scoreH.Score)
	api.GET("/behavior", chatH.GetBehavior)
	api.POST("/behavior", chatH.SetBehavior)
	api.GET("/sessions/:session_id/transcript", chatH.GetTranscript)

	r.POST("/chat/stream", chatH.ChatStream)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
