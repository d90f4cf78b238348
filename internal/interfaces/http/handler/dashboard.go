package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bizdetails/backend/internal/application/dashboard"
)

// DashboardHandler serves aggregate statistics
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboard.Service
	logger           *zap.Logger
}

// NewDashboardHandler creates a dashboard handler
func NewDashboardHandler(dashboardService *dashboard.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.Stats)
}

// Stats returns dataset and job statistics for the caller
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
