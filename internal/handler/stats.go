package handler

import (
	"net/http"

	"github.com/parmenasoares/track-and-work/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct{ svc service.StatsService }

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// SuperAdmin godoc
// @Summary Dashboard counters
// @Tags stats
// @Produce json
// @Success 200 {object} dto.SuperAdminStatsResponse
// @Router /v1/superadmin/stats [get]
func (h *StatsHandler) SuperAdmin(c *gin.Context) {
	resp, err := h.svc.SuperAdminStats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
