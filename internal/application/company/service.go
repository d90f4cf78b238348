package company

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/domain/shared"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200

	// listingCap bounds how deep a listing can page into the dataset
	listingCap = 1000
)

// ListInput narrows and pages a company listing
type ListInput struct {
	Domain    string
	Name      string
	Industry  string
	Country   string
	SizeRange string
	SortKey   string
	Page      int
	PageSize  int
}

// ListResult is one page of companies plus paging metadata
type ListResult struct {
	Items    []company.Company `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Service exposes read operations over the company dataset
type Service struct {
	companies company.Repository
	logger    *zap.Logger
}

// NewService creates a company catalog service
func NewService(companies company.Repository, logger *zap.Logger) *Service {
	return &Service{
		companies: companies,
		logger:    logger,
	}
}

// List returns a filtered page of companies. Paging past the listing cap
// returns an empty page.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	sortKey := input.SortKey
	switch sortKey {
	case "", company.SortByName, company.SortByDomain, company.SortByUpdatedAt:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown sort key: "+sortKey)
	}

	offset := (page - 1) * pageSize
	limit := pageSize
	if offset >= listingCap {
		offset, limit = 0, 0
	} else if offset+limit > listingCap {
		limit = listingCap - offset
	}

	filter := company.Filter{
		Domain:    company.NormalizeDomain(input.Domain),
		Name:      input.Name,
		Industry:  input.Industry,
		Country:   input.Country,
		SizeRange: input.SizeRange,
		SortKey:   sortKey,
		Offset:    offset,
		Limit:     limit,
	}

	var items []company.Company
	if limit > 0 {
		var err error
		items, err = s.companies.FindAll(ctx, filter)
		if err != nil {
			s.logger.Error("Failed to list companies", zap.Error(err))
			return nil, err
		}
	}
	if items == nil {
		items = []company.Company{}
	}

	total, err := s.companies.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count companies", zap.Error(err))
		return nil, err
	}
	if total > listingCap {
		total = listingCap
	}

	return &ListResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Get returns one company by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	return s.companies.FindByID(ctx, id)
}

// GetByDomain returns one company by domain, normalizing the input first
func (s *Service) GetByDomain(ctx context.Context, domain string) (*company.Company, error) {
	normalized := company.NormalizeDomain(domain)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid domain")
	}
	return s.companies.FindByDomain(ctx, normalized)
}
