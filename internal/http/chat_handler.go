package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pt-sim/internal/domain"
	"pt-sim/internal/llm"
	"pt-sim/internal/repository"
	"pt-sim/internal/service"
)

// ChatHandler mantiene dependencias para los endpoints de conversacion.
type ChatHandler struct {
	logger      *zap.Logger
	chat        *service.ChatService
	transcripts repository.TranscriptRepository
	limiter     service.TurnRateLimiter
	model       string
}

// NewChatHandler crea una instancia de ChatHandler. transcripts y limiter
// pueden ser nil cuando postgres/redis no estan configurados.
func NewChatHandler(
	logger *zap.Logger,
	chat *service.ChatService,
	transcripts repository.TranscriptRepository,
	limiter service.TurnRateLimiter,
	model string,
) *ChatHandler {
	return &ChatHandler{
		logger:      logger,
		chat:        chat,
		transcripts: transcripts,
		limiter:     limiter,
		model:       model,
	}
}

type chatRequest struct {
	PatientID string                   `json:"patient_id" binding:"required"`
	Message   string                   `json:"message"`
	State     domain.ConversationState `json:"state"`
	History   []domain.Turn            `json:"history"`
}

// Chat maneja POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sessionID, ok := h.admitTurn(c)
	if !ok {
		return
	}

	result, err := h.chat.Chat(c.Request.Context(), req.PatientID, req.Message, req.State, req.History)
	if err != nil {
		h.respondTurnError(c, err)
		return
	}

	h.logTranscript(sessionID, req.PatientID, req.Message, result)

	c.JSON(http.StatusOK, gin.H{
		"reply":        result.Reply,
		"state":        result.State,
		"tags":         result.Tags,
		"patient_info": result.Patient,
		"session_id":   sessionID,
	})
}

// ChatStream maneja POST /chat/stream via server-sent events: fragmentos
// `token` en orden, un `meta` final con estado y tags, y `done`.
func (h *ChatHandler) ChatStream(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat stream request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sessionID, ok := h.admitTurn(c)
	if !ok {
		return
	}

	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")

	// La respuesta se vetea antes de emitir, asi que cualquier error llega
	// antes del primer fragmento y todavia podemos responder JSON.
	wrote := false
	result, err := h.chat.ChatStream(c.Request.Context(), req.PatientID, req.Message, req.State, req.History, func(frag string) {
		wrote = true
		c.SSEvent("token", frag)
		c.Writer.Flush()
	})
	if err != nil {
		if !wrote {
			header.Set("Content-Type", "application/json")
			h.respondTurnError(c, err)
			return
		}
		c.SSEvent("error", gin.H{"error": "reply generation failed"})
		c.SSEvent("done", "")
		c.Writer.Flush()
		return
	}

	h.logTranscript(sessionID, req.PatientID, req.Message, result)

	c.SSEvent("meta", gin.H{
		"state":      result.State,
		"tags":       result.Tags,
		"session_id": sessionID,
	})
	c.SSEvent("done", "")
	c.Writer.Flush()
}

// GetBehavior maneja GET /behavior.
func (h *ChatHandler) GetBehavior(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"behavior": h.chat.Behavior()})
}

// SetBehavior maneja POST /behavior. Campos omitidos conservan su valor.
func (h *ChatHandler) SetBehavior(c *gin.Context) {
	req := h.chat.Behavior()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid behavior request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.chat.SetBehavior(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "behavior": req})
}

// GetTranscript maneja GET /sessions/:session_id/transcript para que un
// instructor revise una sesion de practica. El transcript nunca vuelve a
// alimentar el flujo de chat.
func (h *ChatHandler) GetTranscript(c *gin.Context) {
	if h.transcripts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transcript log not configured"})
		return
	}
	sessionID := c.Param("session_id")
	entries, err := h.transcripts.ListBySessionID(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("transcript lookup failed",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load transcript"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"entries":    entries,
	})
}

// Health maneja GET /health y reporta el backend de generacion activo.
func (h *ChatHandler) Health(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"backend": h.chat.BackendName(),
	}
	if h.model != "" {
		resp["model"] = h.model
	}
	c.JSON(http.StatusOK, resp)
}

// admitTurn resuelve el id de sesion y aplica el limite de turnos.
func (h *ChatHandler) admitTurn(c *gin.Context) (string, bool) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Header("X-Session-ID", sessionID)

	if h.limiter != nil && !h.limiter.Allow(sessionID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many turns, slow down"})
		return sessionID, false
	}
	return sessionID, true
}

func (h *ChatHandler) respondTurnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPersonaNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
	case errors.Is(err, llm.ErrAuth):
		c.JSON(http.StatusBadGateway, gin.H{"error": "llm backend rejected credentials", "kind": "auth"})
	case errors.Is(err, llm.ErrRateLimited):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "llm backend rate limited", "kind": "rate_limit"})
	case errors.Is(err, llm.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "llm backend timed out", "kind": "timeout"})
	default:
		h.logger.Error("chat turn failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not generate reply", "kind": "upstream"})
	}
}

// logTranscript persiste el turno de manera asincrona para no bloquear
// la respuesta al estudiante.
func (h *ChatHandler) logTranscript(sessionID, patientID, userText string, result service.TurnResult) {
	if h.transcripts == nil {
		return
	}
	now := time.Now().UTC()
	entries := []repository.TranscriptEntry{
		{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			PatientID: patientID,
			Role:      repository.TranscriptRoleUser,
			Content:   userText,
			Tags:      result.Tags,
			CreatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			PatientID: patientID,
			Role:      repository.TranscriptRolePatient,
			Content:   result.Reply,
			CreatedAt: now,
		},
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, entry := range entries {
			if err := h.transcripts.Append(ctx, entry); err != nil {
				h.logger.Warn("transcript append failed",
					zap.Error(err),
					zap.String("session_id", sessionID),
				)
				return
			}
		}
	}()
}
