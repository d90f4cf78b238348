package company

import (
	"strings"

	"github.com/bizdetails/backend/internal/domain/shared"
)

// Field names accepted by dataset uploads. Each maps to one column of the
// company_updated table.
const (
	FieldDomain        = "domain"
	FieldName          = "name"
	FieldCountries     = "countries"
	FieldHQ            = "hq"
	FieldIndustry      = "industry"
	FieldSubindustry   = "subindustry"
	FieldKeywordsCntxt = "keywords_cntxt"
	FieldSize          = "size"
	FieldLinkedInURL   = "linkedin_url"
	FieldSlug          = "slug"
	FieldOriginalName  = "original_name"
	FieldLegalName     = "legal_name"
)

// CanonicalFields lists the importable fields in column order.
var CanonicalFields = []string{
	FieldDomain,
	FieldName,
	FieldCountries,
	FieldHQ,
	FieldIndustry,
	FieldSubindustry,
	FieldKeywordsCntxt,
	FieldSize,
	FieldLinkedInURL,
	FieldSlug,
	FieldOriginalName,
	FieldLegalName,
}

// Company is the aggregate root of the curated reference dataset
// (the company_updated table).
type Company struct {
	shared.BaseEntity
	Domain        string // normalized, unique when present
	Name          string
	OriginalName  string // name exactly as first imported
	LegalName     string
	Slug          string
	Countries     string
	HQ            string
	Industry      string
	Subindustry   string
	KeywordsCntxt string
	Size          string
	LinkedInURL   string
}

// New creates a company record from imported field values. The domain is
// normalized and derived fields (slug, original name, legal name) are filled.
func New(fields map[string]string) (*Company, error) {
	domain := NormalizeDomain(fields[FieldDomain])
	name := strings.TrimSpace(fields[FieldName])
	if domain == "" && name == "" {
		return nil, shared.NewDomainError("MISSING_IDENTIFIER", "Company requires a domain or a name")
	}

	c := &Company{
		BaseEntity:    shared.NewBaseEntity(),
		Domain:        domain,
		Name:          name,
		OriginalName:  firstNonEmpty(strings.TrimSpace(fields[FieldOriginalName]), name),
		LegalName:     firstNonEmpty(strings.TrimSpace(fields[FieldLegalName]), name),
		Countries:     strings.TrimSpace(fields[FieldCountries]),
		HQ:            strings.TrimSpace(fields[FieldHQ]),
		Industry:      strings.TrimSpace(fields[FieldIndustry]),
		Subindustry:   strings.TrimSpace(fields[FieldSubindustry]),
		KeywordsCntxt: strings.TrimSpace(fields[FieldKeywordsCntxt]),
		Size:          strings.TrimSpace(fields[FieldSize]),
		LinkedInURL:   strings.TrimSpace(fields[FieldLinkedInURL]),
	}
	c.Slug = firstNonEmpty(
		strings.TrimSpace(fields[FieldSlug]),
		Slugify(firstNonEmpty(StripLegalSuffixes(name), domain)),
	)
	return c, nil
}

// MatchName returns the normalized form of the company name used for
// matching rows that carry no domain.
func (c *Company) MatchName() string {
	return NormalizeName(c.Name)
}

// Get returns the current value of a canonical field.
func (c *Company) Get(field string) string {
	switch field {
	case FieldDomain:
		return c.Domain
	case FieldName:
		return c.Name
	case FieldCountries:
		return c.Countries
	case FieldHQ:
		return c.HQ
	case FieldIndustry:
		return c.Industry
	case FieldSubindustry:
		return c.Subindustry
	case FieldKeywordsCntxt:
		return c.KeywordsCntxt
	case FieldSize:
		return c.Size
	case FieldLinkedInURL:
		return c.LinkedInURL
	case FieldSlug:
		return c.Slug
	case FieldOriginalName:
		return c.OriginalName
	case FieldLegalName:
		return c.LegalName
	}
	return ""
}

// Set assigns a canonical field. Domains are normalized on the way in and
// a missing slug is derived from the name.
func (c *Company) Set(field, value string) {
	value = strings.TrimSpace(value)
	switch field {
	case FieldDomain:
		c.Domain = NormalizeDomain(value)
	case FieldName:
		c.Name = value
		if c.OriginalName == "" {
			c.OriginalName = value
		}
		if c.LegalName == "" {
			c.LegalName = value
		}
		// A stored slug is data, not a derived value. Only fill it when
		// the record has none yet.
		if c.Slug == "" {
			c.Slug = Slugify(firstNonEmpty(StripLegalSuffixes(value), c.Domain))
		}
	case FieldCountries:
		c.Countries = value
	case FieldHQ:
		c.HQ = value
	case FieldIndustry:
		c.Industry = value
	case FieldSubindustry:
		c.Subindustry = value
	case FieldKeywordsCntxt:
		c.KeywordsCntxt = value
	case FieldSize:
		c.Size = value
	case FieldLinkedInURL:
		c.LinkedInURL = value
	case FieldSlug:
		c.Slug = value
	case FieldOriginalName:
		c.OriginalName = value
	case FieldLegalName:
		c.LegalName = value
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
