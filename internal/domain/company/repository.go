package company

import (
	"context"

	"github.com/google/uuid"
)

// SortKey values accepted by List.
const (
	SortByName      = "name"
	SortByDomain    = "domain"
	SortByUpdatedAt = "updated_at"
)

// Filter narrows company listings. Zero values mean "no constraint".
type Filter struct {
	Domain    string // normalized exact match
	Name      string // case-insensitive substring
	Industry  string // exact match
	Country   string // case-insensitive substring on countries
	SizeRange string // exact match on size
	SortKey   string
	Offset    int
	Limit     int
}

// Repository defines the interface for company persistence
type Repository interface {
	// FindByID finds a company by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByDomain finds a company by its normalized domain
	FindByDomain(ctx context.Context, domain string) (*Company, error)

	// FindByMatchName finds a company whose normalized name equals matchName.
	// Used for rows that carry no domain.
	FindByMatchName(ctx context.Context, matchName string) (*Company, error)

	// FindAll finds companies matching the filter
	FindAll(ctx context.Context, filter Filter) ([]Company, error)

	// Count counts companies matching the filter, ignoring pagination
	Count(ctx context.Context, filter Filter) (int64, error)

	// CountWithDomain counts companies that have a domain set
	CountWithDomain(ctx context.Context) (int64, error)

	// Save creates or updates a company
	Save(ctx context.Context, c *Company) error

	// Delete removes a company
	Delete(ctx context.Context, id uuid.UUID) error
}
