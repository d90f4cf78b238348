package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/domain/identity"
	"github.com/bizdetails/backend/internal/domain/job"
)

// Stats summarizes the dataset and the caller's job history
type Stats struct {
	TotalCompanies      int64            `json:"total_companies"`
	CompaniesWithDomain int64            `json:"companies_with_domain"`
	JobCounts           map[string]int64 `json:"job_counts"`
	EnrichmentCount     int              `json:"enrichment_count"`
	RecentActivity      []ActivityItem   `json:"recent_activity"`
}

// ActivityItem is one entry of the user's recent activity
type ActivityItem struct {
	Type       string `json:"type"`
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Service aggregates dashboard statistics
type Service struct {
	companies company.Repository
	jobs      job.Repository
	users     identity.UserRepository
	logger    *zap.Logger
}

// NewService creates a dashboard service
func NewService(
	companies company.Repository,
	jobs job.Repository,
	users identity.UserRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		companies: companies,
		jobs:      jobs,
		users:     users,
		logger:    logger,
	}
}

// Stats assembles the dashboard numbers for one user
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	total, err := s.companies.Count(ctx, company.Filter{})
	if err != nil {
		return nil, err
	}
	withDomain, err := s.companies.CountWithDomain(ctx)
	if err != nil {
		return nil, err
	}
	jobCounts, err := s.jobs.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(jobCounts))
	for status, n := range jobCounts {
		counts[string(status)] = n
	}

	activity := make([]ActivityItem, 0, len(user.ActivityLog))
	for i := len(user.ActivityLog) - 1; i >= 0; i-- {
		entry := user.ActivityLog[i]
		activity = append(activity, ActivityItem{
			Type:       entry.Type,
			Detail:     entry.Detail,
			OccurredAt: entry.OccurredAt.UTC().Format(time.RFC3339),
		})
	}

	return &Stats{
		TotalCompanies:      total,
		CompaniesWithDomain: withDomain,
		JobCounts:           counts,
		EnrichmentCount:     user.EnrichmentCount,
		RecentActivity:      activity,
	}, nil
}
