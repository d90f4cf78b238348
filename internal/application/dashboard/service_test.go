package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/domain/identity"
	"github.com/bizdetails/backend/internal/domain/job"
	"github.com/bizdetails/backend/internal/domain/shared"
)

type stubCompanyRepo struct {
	total      int64
	withDomain int64
}

func (r *stubCompanyRepo) FindByID(context.Context, uuid.UUID) (*company.Company, error) {
	return nil, shared.ErrNotFound
}

func (r *stubCompanyRepo) FindByDomain(context.Context, string) (*company.Company, error) {
	return nil, shared.ErrNotFound
}

func (r *stubCompanyRepo) FindByMatchName(context.Context, string) (*company.Company, error) {
	return nil, shared.ErrNotFound
}

func (r *stubCompanyRepo) FindAll(context.Context, company.Filter) ([]company.Company, error) {
	return nil, nil
}

func (r *stubCompanyRepo) Count(context.Context, company.Filter) (int64, error) {
	return r.total, nil
}

func (r *stubCompanyRepo) CountWithDomain(context.Context) (int64, error) {
	return r.withDomain, nil
}

func (r *stubCompanyRepo) Save(context.Context, *company.Company) error { return nil }

func (r *stubCompanyRepo) Delete(context.Context, uuid.UUID) error { return nil }

type stubJobRepo struct {
	counts map[job.Status]int64
}

func (r *stubJobRepo) FindByID(context.Context, uuid.UUID) (*job.Job, error) {
	return nil, shared.ErrNotFound
}

func (r *stubJobRepo) FindByUser(context.Context, uuid.UUID) ([]job.Job, error) {
	return nil, nil
}

func (r *stubJobRepo) FindResults(context.Context, uuid.UUID) ([]job.Result, error) {
	return nil, nil
}

func (r *stubJobRepo) Save(context.Context, *job.Job) error { return nil }

func (r *stubJobRepo) SaveResults(context.Context, []job.Result) error { return nil }

func (r *stubJobRepo) CountByStatus(context.Context, uuid.UUID) (map[job.Status]int64, error) {
	return r.counts, nil
}

type stubUserRepo struct {
	user *identity.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*identity.User, error) {
	return nil, shared.ErrNotFound
}

func (r *stubUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (r *stubUserRepo) Save(context.Context, *identity.User) error { return nil }

func (r *stubUserRepo) Count(context.Context) (int64, error) { return 1, nil }

func TestService_Stats(t *testing.T) {
	user, err := identity.NewUser("stats@example.com", "Str0ngPass!word", "Stats User")
	require.NoError(t, err)
	user.IncrementEnrichmentCount(7)
	user.RecordActivity(identity.ActivityUpload, "company_updated.csv", time.Now().Add(-time.Hour))
	user.RecordActivity(identity.ActivityJob, "q3 leads", time.Now())

	svc := NewService(
		&stubCompanyRepo{total: 1200, withDomain: 900},
		&stubJobRepo{counts: map[job.Status]int64{
			job.StatusCompleted: 3,
			job.StatusFailed:    1,
		}},
		&stubUserRepo{user: user},
		zap.NewNop(),
	)

	stats, err := svc.Stats(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1200), stats.TotalCompanies)
	assert.Equal(t, int64(900), stats.CompaniesWithDomain)
	assert.Equal(t, int64(3), stats.JobCounts["completed"])
	assert.Equal(t, int64(1), stats.JobCounts["failed"])
	assert.Equal(t, 7, stats.EnrichmentCount)

	// newest activity first
	require.Len(t, stats.RecentActivity, 2)
	assert.Equal(t, identity.ActivityJob, stats.RecentActivity[0].Type)
	assert.Equal(t, "q3 leads", stats.RecentActivity[0].Detail)
	assert.Equal(t, identity.ActivityUpload, stats.RecentActivity[1].Type)
}

func TestService_Stats_UnknownUser(t *testing.T) {
	svc := NewService(&stubCompanyRepo{}, &stubJobRepo{}, &stubUserRepo{}, zap.NewNop())

	_, err := svc.Stats(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
