package importer

import (
	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/infrastructure/csvimport"
)

// Row error reasons surfaced in the import summary
const (
	ReasonMissingIdentifier = "MissingIdentifier"
	ReasonInvalidDomain     = "InvalidDomain"
)

// NormalizedRow is a validated row ready for merge resolution. Fields holds
// trimmed values keyed by canonical field name; the domain is already
// normalized. Empty values are omitted.
type NormalizedRow struct {
	Row    int
	Fields map[string]string
}

// Domain returns the normalized domain, or "" when the row has none.
func (r *NormalizedRow) Domain() string {
	return r.Fields[company.FieldDomain]
}

// Name returns the trimmed company name, or "" when the row has none.
func (r *NormalizedRow) Name() string {
	return r.Fields[company.FieldName]
}

// ValidateRow extracts the mapped canonical fields from a raw row and checks
// the identifier requirement. Rows must carry a domain or a name; a domain
// cell that normalizes to nothing is rejected outright.
func ValidateRow(row *csvimport.Row, mapping ColumnMapping) (*NormalizedRow, *csvimport.RowError) {
	fields := make(map[string]string, len(mapping))
	for field, idx := range mapping {
		if v := row.Field(idx); v != "" {
			fields[field] = v
		}
	}

	rawDomain := fields[company.FieldDomain]
	domain := company.NormalizeDomain(rawDomain)
	if rawDomain != "" && domain == "" {
		err := csvimport.NewRowError(row.DataRow, company.FieldDomain,
			csvimport.ErrCodeImportRequiredField, ReasonInvalidDomain)
		return nil, &err
	}
	if domain == "" {
		delete(fields, company.FieldDomain)
	} else {
		fields[company.FieldDomain] = domain
	}

	if fields[company.FieldDomain] == "" && fields[company.FieldName] == "" {
		err := csvimport.NewRowError(row.DataRow, "",
			csvimport.ErrCodeImportRequiredField, ReasonMissingIdentifier)
		return nil, &err
	}

	return &NormalizedRow{Row: row.DataRow, Fields: fields}, nil
}
