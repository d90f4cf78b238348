package company

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/domain/shared"
)

// memCompanyRepo is an in-memory company.Repository for service tests.
// It honors the filter fields the service forwards: domain, offset, limit.
type memCompanyRepo struct {
	companies []company.Company
}

func (r *memCompanyRepo) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	for i := range r.companies {
		if r.companies[i].ID == id {
			return &r.companies[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCompanyRepo) FindByDomain(ctx context.Context, domain string) (*company.Company, error) {
	for i := range r.companies {
		if r.companies[i].Domain == domain {
			return &r.companies[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCompanyRepo) FindByMatchName(ctx context.Context, matchName string) (*company.Company, error) {
	for i := range r.companies {
		if r.companies[i].MatchName() == matchName {
			return &r.companies[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCompanyRepo) matching(filter company.Filter) []company.Company {
	matched := make([]company.Company, 0, len(r.companies))
	for _, c := range r.companies {
		if filter.Domain != "" && c.Domain != filter.Domain {
			continue
		}
		if filter.Industry != "" && c.Industry != filter.Industry {
			continue
		}
		matched = append(matched, c)
	}
	return matched
}

func (r *memCompanyRepo) FindAll(ctx context.Context, filter company.Filter) ([]company.Company, error) {
	matched := r.matching(filter)
	if filter.Offset >= len(matched) {
		return []company.Company{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *memCompanyRepo) Count(ctx context.Context, filter company.Filter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *memCompanyRepo) CountWithDomain(ctx context.Context) (int64, error) {
	var n int64
	for _, c := range r.companies {
		if c.Domain != "" {
			n++
		}
	}
	return n, nil
}

func (r *memCompanyRepo) Save(ctx context.Context, c *company.Company) error {
	r.companies = append(r.companies, *c)
	return nil
}

func (r *memCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return shared.ErrNotFound
}

func seedRepo(t *testing.T, n int) *memCompanyRepo {
	t.Helper()
	repo := &memCompanyRepo{}
	for i := 0; i < n; i++ {
		c, err := company.New(map[string]string{
			"domain":   fmt.Sprintf("company%04d.com", i),
			"name":     fmt.Sprintf("Company %04d", i),
			"industry": "Software",
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), c))
	}
	return repo
}

func TestServiceList_Defaults(t *testing.T) {
	repo := seedRepo(t, 75)
	svc := NewService(repo, zap.NewNop())

	result, err := svc.List(context.Background(), ListInput{})
	require.NoError(t, err)
	assert.Len(t, result.Items, 50)
	assert.Equal(t, int64(75), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 50, result.PageSize)
}

func TestServiceList_SecondPage(t *testing.T) {
	repo := seedRepo(t, 75)
	svc := NewService(repo, zap.NewNop())

	result, err := svc.List(context.Background(), ListInput{Page: 2})
	require.NoError(t, err)
	assert.Len(t, result.Items, 25)
	assert.Equal(t, 2, result.Page)
}

func TestServiceList_PageSizeClamped(t *testing.T) {
	repo := seedRepo(t, 300)
	svc := NewService(repo, zap.NewNop())

	result, err := svc.List(context.Background(), ListInput{PageSize: 1000})
	require.NoError(t, err)
	assert.Len(t, result.Items, 200)
	assert.Equal(t, 200, result.PageSize)
}

func TestServiceList_CapAtThousand(t *testing.T) {
	repo := seedRepo(t, 1200)
	svc := NewService(repo, zap.NewNop())

	// Reported total never exceeds the cap
	result, err := svc.List(context.Background(), ListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.Total)

	// Last page inside the cap is truncated to it
	result, err = svc.List(context.Background(), ListInput{Page: 5, PageSize: 200})
	require.NoError(t, err)
	assert.Len(t, result.Items, 200)

	// Pages past the cap are empty
	result, err = svc.List(context.Background(), ListInput{Page: 6, PageSize: 200})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestServiceList_UnknownSortKey(t *testing.T) {
	repo := seedRepo(t, 1)
	svc := NewService(repo, zap.NewNop())

	_, err := svc.List(context.Background(), ListInput{SortKey: "bogus"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestServiceList_DomainFilterNormalized(t *testing.T) {
	repo := seedRepo(t, 5)
	svc := NewService(repo, zap.NewNop())

	result, err := svc.List(context.Background(), ListInput{Domain: "https://www.company0001.com/about"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "company0001.com", result.Items[0].Domain)
}

func TestServiceGetByDomain(t *testing.T) {
	repo := seedRepo(t, 3)
	svc := NewService(repo, zap.NewNop())

	c, err := svc.GetByDomain(context.Background(), "WWW.COMPANY0002.COM")
	require.NoError(t, err)
	assert.Equal(t, "company0002.com", c.Domain)

	_, err = svc.GetByDomain(context.Background(), "http://")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}
