package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appjob "github.com/bizdetails/backend/internal/application/job"
	"github.com/bizdetails/backend/internal/domain/job"
)

// JobResponse is the JSON view of an enrichment job
type JobResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Strategy         string     `json:"strategy"`
	Status           string     `json:"status"`
	TotalRecords     int        `json:"total_records"`
	ProcessedRecords int        `json:"processed_records"`
	Progress         int        `json:"progress"`
	InternalHits     int        `json:"internal_hits"`
	AIHits           int        `json:"ai_hits"`
	InternalPct      int        `json:"internal_pct"`
	AIPct            int        `json:"ai_pct"`
	FailureReason    string     `json:"failure_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	FinishedAt       *time.Time `json:"finished_at,omitempty"`
}

func jobResponseFrom(j *job.Job) JobResponse {
	return JobResponse{
		ID:               j.ID,
		Name:             j.Name,
		Strategy:         string(j.Strategy),
		Status:           string(j.Status),
		TotalRecords:     j.TotalRecords,
		ProcessedRecords: j.ProcessedRecords,
		Progress:         j.Progress(),
		InternalHits:     j.InternalHits,
		AIHits:           j.AIHits,
		InternalPct:      j.InternalPct(),
		AIPct:            j.AIPct(),
		FailureReason:    j.FailureReason,
		CreatedAt:        j.CreatedAt,
		FinishedAt:       j.FinishedAt,
	}
}

// JobResultResponse is the JSON view of one enrichment result row
type JobResultResponse struct {
	InputName   string            `json:"input_name"`
	InputDomain string            `json:"input_domain"`
	Source      string            `json:"source"`
	Fields      map[string]string `json:"fields"`
	Sources     map[string]string `json:"sources"`
}

func jobResultResponseFrom(r *job.Result) JobResultResponse {
	sources := make(map[string]string, len(r.Sources))
	for field, src := range r.Sources {
		sources[field] = string(src)
	}
	return JobResultResponse{
		InputName:   r.InputName,
		InputDomain: r.InputDomain,
		Source:      string(r.Source),
		Fields:      r.Fields,
		Sources:     sources,
	}
}

// JobHandler serves enrichment job endpoints
type JobHandler struct {
	BaseHandler
	jobService *appjob.Service
	logger     *zap.Logger
}

// NewJobHandler creates a job handler
func NewJobHandler(jobService *appjob.Service, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     logger,
	}
}

// RegisterRoutes registers job routes
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.POST("", h.Create)
		jobs.GET("", h.List)
		jobs.GET("/:id", h.Get)
		jobs.GET("/:id/results", h.Results)
	}
}

// Create accepts a CSV upload and runs an enrichment job over it.
// Multipart fields: file (required), name, strategy.
func (h *JobHandler) Create(c *gin.Context) {
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
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read file upload")
		return
	}
	defer file.Close()

	name := c.PostForm("name")
	if name == "" {
		name = fileHeader.Filename
	}

	result, err := h.jobService.Submit(c.Request.Context(), appjob.SubmitInput{
		UserID:   userID,
		Name:     name,
		Strategy: c.PostForm("strategy"),
		Reader:   file,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, jobResponseFrom(result))
}

// List returns the caller's jobs, newest first
func (h *JobHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	jobs, err := h.jobService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]JobResponse, len(jobs))
	for i := range jobs {
		items[i] = jobResponseFrom(&jobs[i])
	}
	h.Success(c, items)
}

// Get returns one of the caller's jobs
func (h *JobHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	result, err := h.jobService.Get(c.Request.Context(), jobID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, jobResponseFrom(result))
}

// Results returns the result rows of one of the caller's jobs
func (h *JobHandler) Results(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	results, err := h.jobService.Results(c.Request.Context(), jobID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]JobResultResponse, len(results))
	for i := range results {
		items[i] = jobResultResponseFrom(&results[i])
	}
	h.Success(c, items)
}
