package importer

import (
	"fmt"
	"strings"

	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/domain/shared"
)

// fieldAliases lists alternative header names accepted for a canonical field
// when no explicit mapping is supplied. The canonical name itself always
// matches first.
var fieldAliases = map[string][]string{
	company.FieldDomain:        {"website", "company_domain", "web_domain"},
	company.FieldName:          {"company", "company_name"},
	company.FieldCountries:     {"country"},
	company.FieldHQ:            {"headquarters"},
	company.FieldSubindustry:   {"sub_industry"},
	company.FieldKeywordsCntxt: {"keywords"},
	company.FieldSize:          {"company_size", "employees"},
	company.FieldLinkedInURL:   {"linkedin"},
}

// ColumnMapping maps canonical field names to source column indexes.
// Canonical fields absent from the file have no entry.
type ColumnMapping map[string]int

// Has reports whether the canonical field resolved to a column.
func (m ColumnMapping) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// ResolveColumns resolves each canonical field to a source column index.
// Explicit mapping entries win over implicit matches; implicit matching is a
// case-insensitive comparison of the trimmed header against the canonical
// name and its aliases. An explicit entry naming a header that is not in the
// file, or an unknown canonical field, fails the whole resolution.
func ResolveColumns(headers []string, explicit map[string]string) (ColumnMapping, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	canonical := make(map[string]bool, len(company.CanonicalFields))
	for _, f := range company.CanonicalFields {
		canonical[f] = true
	}

	mapping := make(ColumnMapping, len(company.CanonicalFields))

	for field, header := range explicit {
		field = strings.ToLower(strings.TrimSpace(field))
		if !canonical[field] {
			return nil, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("unknown field '%s' in column map", field))
		}
		idx, ok := index[strings.ToLower(strings.TrimSpace(header))]
		if !ok {
			return nil, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("column '%s' mapped to field '%s' not found in file", header, field))
		}
		mapping[field] = idx
	}

	for _, field := range company.CanonicalFields {
		if mapping.Has(field) {
			continue
		}
		if idx, ok := index[field]; ok {
			mapping[field] = idx
			continue
		}
		for _, alias := range fieldAliases[field] {
			if idx, ok := index[alias]; ok {
				mapping[field] = idx
				break
			}
		}
	}

	return mapping, nil
}
