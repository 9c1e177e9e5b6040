package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pt-sim/internal/repository"
	"pt-sim/internal/service"
)

// PatientHandler expone el catalogo de pacientes simulados.
type PatientHandler struct {
	logger   *zap.Logger
	personas repository.PersonaRepository
}

func NewPatientHandler(logger *zap.Logger, personas repository.PersonaRepository) *PatientHandler {
	return &PatientHandler{logger: logger, personas: personas}
}

// ListPatients maneja GET /patients.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"patients": h.personas.List()})
}

// ScoreHandler expone la puntuacion del rubric.
type ScoreHandler struct {
	logger *zap.Logger
	scorer *service.Scorer
}

func NewScoreHandler(logger *zap.Logger, scorer *service.Scorer) *ScoreHandler {
	return &ScoreHandler{logger: logger, scorer: scorer}
}

// Score maneja POST /score. Un set de tags vacio devuelve 0%, no un error.
func (h *ScoreHandler) Score(c *gin.Context) {
	var req struct {
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid score request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(http.StatusOK, h.scorer.Score(req.Tags))
}
