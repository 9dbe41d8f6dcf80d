package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/univloop/univloop-api/internal/interface/http"
)

// StatsModule wires the public platform counters.
type StatsModule struct {
	Handler *handlers.StatsHandler
}

func NewStatsModule(h *handlers.StatsHandler) *StatsModule {
	return &StatsModule{Handler: h}
}

func (m *StatsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/stats", m.Handler.Get)
	rg.GET("/health", m.Handler.Health)
}
