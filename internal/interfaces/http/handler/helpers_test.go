package handler

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/domain/identity"
	"github.com/bizdetails/backend/internal/domain/shared"
)

// fakeCompanyRepo is an in-memory company.Repository for handler tests
type fakeCompanyRepo struct {
	records map[uuid.UUID]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{records: make(map[uuid.UUID]*company.Company)}
}

func (r *fakeCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*company.Company, error) {
	if c, ok := r.records[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCompanyRepo) FindByDomain(_ context.Context, domain string) (*company.Company, error) {
	for _, c := range r.records {
		if c.Domain == domain && domain != "" {
			copied := *c
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCompanyRepo) FindByMatchName(_ context.Context, matchName string) (*company.Company, error) {
	for _, c := range r.records {
		if c.MatchName() == matchName && matchName != "" {
			copied := *c
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCompanyRepo) FindAll(_ context.Context, filter company.Filter) ([]company.Company, error) {
	matched := r.matching(filter)
	sort.Slice(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
	})

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *fakeCompanyRepo) Count(_ context.Context, filter company.Filter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *fakeCompanyRepo) CountWithDomain(context.Context) (int64, error) {
	var n int64
	for _, c := range r.records {
		if c.Domain != "" {
			n++
		}
	}
	return n, nil
}

func (r *fakeCompanyRepo) Save(_ context.Context, c *company.Company) error {
	copied := *c
	r.records[c.ID] = &copied
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

func (r *fakeCompanyRepo) matching(filter company.Filter) []company.Company {
	var out []company.Company
	for _, c := range r.records {
		if filter.Domain != "" && c.Domain != filter.Domain {
			continue
		}
		if filter.Industry != "" && c.Industry != filter.Industry {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, *c)
	}
	return out
}

// fakeUserRepo is an in-memory identity.UserRepository for handler tests
type fakeUserRepo struct {
	users map[uuid.UUID]identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]identity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := r.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			copied := u
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *identity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}
