package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/univloop/univloop-api/internal/application"
	"github.com/univloop/univloop-api/pkg/response"
)

type StatsHandler struct {
	Svc    *application.StatsService
	Logger *logrus.Logger
}

func NewStatsHandler(svc *application.StatsService, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{Svc: svc, Logger: logger}
}

func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "platform stats", nil)
}

func (h *StatsHandler) Health(c *gin.Context) {
	response.Success[any](c, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
}
