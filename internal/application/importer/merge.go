package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/domain/shared"
)

// Mode selects how incoming values combine with an existing record
type Mode string

const (
	// ModeOverride replaces stored values with every non-empty incoming value
	ModeOverride Mode = "override"
	// ModeMissing fills only stored fields that are currently empty
	ModeMissing Mode = "missing"
)

// ParseMode validates a caller-supplied mode string
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOverride:
		return ModeOverride, nil
	case ModeMissing:
		return ModeMissing, nil
	}
	return "", shared.NewDomainError("INVALID_INPUT",
		fmt.Sprintf("mode must be '%s' or '%s'", ModeOverride, ModeMissing))
}

// Outcome tells whether a resolved row created or updated a record
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
)

// Resolver applies one validated row against the company table. Each row is
// a single read-then-write: match by normalized domain, fall back to the
// normalized name for rows without a domain.
type Resolver struct {
	companies company.Repository
}

// NewResolver creates a merge resolver over the company repository
func NewResolver(companies company.Repository) *Resolver {
	return &Resolver{companies: companies}
}

// Resolve looks up the matching record and inserts or merges the row.
// A matched record counts as updated even when every value already matched.
func (r *Resolver) Resolve(ctx context.Context, row *NormalizedRow, mode Mode) (Outcome, error) {
	existing, err := r.find(ctx, row)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return 0, fmt.Errorf("lookup failed: %w", err)
	}

	if existing == nil {
		record, err := company.New(row.Fields)
		if err != nil {
			return 0, err
		}
		if err := r.companies.Save(ctx, record); err != nil {
			return 0, fmt.Errorf("insert failed: %w", err)
		}
		return OutcomeCreated, nil
	}

	for _, field := range company.CanonicalFields {
		incoming := row.Fields[field]
		if incoming == "" {
			continue
		}
		if mode == ModeMissing && existing.Get(field) != "" {
			continue
		}
		existing.Set(field, incoming)
	}
	if err := r.companies.Save(ctx, existing); err != nil {
		return 0, fmt.Errorf("update failed: %w", err)
	}
	return OutcomeUpdated, nil
}

func (r *Resolver) find(ctx context.Context, row *NormalizedRow) (*company.Company, error) {
	if domain := row.Domain(); domain != "" {
		return r.companies.FindByDomain(ctx, domain)
	}
	return r.companies.FindByMatchName(ctx, company.NormalizeName(row.Name()))
}
