package handler

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bizdetails/backend/internal/application/importer"
	"github.com/bizdetails/backend/internal/domain/identity"
)

// ImportHandler serves the admin dataset import endpoint
type ImportHandler struct {
	BaseHandler
	importService *importer.Service
	users         identity.UserRepository
	logger        *zap.Logger
}

// NewImportHandler creates an import handler
func NewImportHandler(importService *importer.Service, users identity.UserRepository, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		users:         users,
		logger:        logger,
	}
}

// RegisterRoutes registers import routes on the admin group
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/company-updated/upload", h.Upload)
}

// Upload merges an uploaded CSV into the company dataset.
// Multipart fields: file (required), mode (override|missing, default
// override), column_map (JSON object mapping canonical field names to
// source CSV headers).
func (h *ImportHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		h.BadRequest(c, "Only .csv files are accepted")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read file upload")
		return
	}
	defer file.Close()

	mode := c.PostForm("mode")
	if mode == "" {
		mode = string(importer.ModeOverride)
	}

	var columnMap map[string]string
	if raw := c.PostForm("column_map"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &columnMap); err != nil {
			h.BadRequest(c, "column_map must be a JSON object")
			return
		}
	}

	summary, err := h.importService.Import(c.Request.Context(), file, importer.Mode(mode), columnMap)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.recordUpload(c, userID, fileHeader.Filename)

	h.logger.Info("Dataset import finished",
		zap.String("file", fileHeader.Filename),
		zap.String("mode", mode),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("errors", len(summary.Errors)),
	)
	h.Success(c, summary)
}

// recordUpload notes the import on the admin's activity log, non-fatally
func (h *ImportHandler) recordUpload(c *gin.Context, userID uuid.UUID, filename string) {
	ctx := c.Request.Context()
	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		h.logger.Warn("Failed to load user for upload bookkeeping", zap.Error(err))
		return
	}
	user.RecordActivity(identity.ActivityUpload, filename, time.Now())
	if err := h.users.Save(ctx, user); err != nil {
		h.logger.Warn("Failed to record upload activity", zap.Error(err))
	}
}
