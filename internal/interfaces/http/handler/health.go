package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizdetails/backend/internal/infrastructure/persistence"
)

// HealthHandler serves liveness and echo endpoints
type HealthHandler struct {
	BaseHandler
	db *persistence.Database
}

// NewHealthHandler creates a health handler
func NewHealthHandler(db *persistence.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRootRoutes registers routes outside the API group
func (h *HealthHandler) RegisterRootRoutes(engine *gin.Engine) {
	engine.GET("/healthz", h.Healthz)
}

// RegisterRoutes registers API routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/process", h.Process)
}

// Healthz reports liveness
func (h *HealthHandler) Healthz(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Process echoes the posted JSON payload back to the caller
func (h *HealthHandler) Process(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BadRequest(c, "Request body must be a JSON object")
		return
	}
	h.Success(c, payload)
}
