package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appcompany "github.com/bizdetails/backend/internal/application/company"
	"github.com/bizdetails/backend/internal/domain/company"
)

// CompanyListRequest carries the listing query parameters
type CompanyListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1"`
	Domain    string `form:"domain" binding:"omitempty,domainish"`
	Name      string `form:"name"`
	Industry  string `form:"industry"`
	Country   string `form:"country"`
	SizeRange string `form:"size"`
	SortKey   string `form:"sort" binding:"omitempty,oneof=name domain updated_at"`
}

// CompanyResponse is the JSON view of a company record
type CompanyResponse struct {
	ID            uuid.UUID `json:"id"`
	Domain        string    `json:"domain"`
	Name          string    `json:"name"`
	OriginalName  string    `json:"original_name"`
	LegalName     string    `json:"legal_name"`
	Slug          string    `json:"slug"`
	Countries     string    `json:"countries"`
	HQ            string    `json:"hq"`
	Industry      string    `json:"industry"`
	Subindustry   string    `json:"subindustry"`
	KeywordsCntxt string    `json:"keywords_cntxt"`
	Size          string    `json:"size"`
	LinkedInURL   string    `json:"linkedin_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func companyResponseFrom(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		Domain:        c.Domain,
		Name:          c.Name,
		OriginalName:  c.OriginalName,
		LegalName:     c.LegalName,
		Slug:          c.Slug,
		Countries:     c.Countries,
		HQ:            c.HQ,
		Industry:      c.Industry,
		Subindustry:   c.Subindustry,
		KeywordsCntxt: c.KeywordsCntxt,
		Size:          c.Size,
		LinkedInURL:   c.LinkedInURL,
		UpdatedAt:     c.UpdatedAt,
	}
}

// CompanyHandler serves read access to the company dataset
type CompanyHandler struct {
	BaseHandler
	companyService *appcompany.Service
	logger         *zap.Logger
}

// NewCompanyHandler creates a company handler
func NewCompanyHandler(companyService *appcompany.Service, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// RegisterRoutes registers company routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.GET("", h.List)
		companies.GET("/:id", h.Get)
		companies.GET("/domain/:domain", h.GetByDomain)
	}
}

// List returns a filtered page of companies
func (h *CompanyHandler) List(c *gin.Context) {
	var req CompanyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.companyService.List(c.Request.Context(), appcompany.ListInput{
		Domain:    req.Domain,
		Name:      req.Name,
		Industry:  req.Industry,
		Country:   req.Country,
		SizeRange: req.SizeRange,
		SortKey:   req.SortKey,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]CompanyResponse, len(result.Items))
	for i := range result.Items {
		items[i] = companyResponseFrom(&result.Items[i])
	}
	h.SuccessWithMeta(c, items, result.Total, result.Page, result.PageSize)
}

// Get returns one company by ID
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	record, err := h.companyService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companyResponseFrom(record))
}

// GetByDomain returns one company by its domain
func (h *CompanyHandler) GetByDomain(c *gin.Context) {
	record, err := h.companyService.GetByDomain(c.Request.Context(), c.Param("domain"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companyResponseFrom(record))
}
