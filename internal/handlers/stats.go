package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/casafind/casafind-backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (sh *StatsHandler) ActiveAgents(c *gin.Context) {
	stats, err := sh.statsService.ComputeActiveAgentStats(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"data": stats})
}
