package models

import (
	"github.com/bizdetails/backend/internal/domain/company"
)

// CompanyModel is the persistence model for the Company domain entity.
// MatchName is a derived column kept in sync on every save so name-based
// lookups stay indexable.
type CompanyModel struct {
	BaseModel
	Domain        string `gorm:"type:varchar(255);index"`
	Name          string `gorm:"type:varchar(500);not null"`
	MatchName     string `gorm:"type:varchar(500);index"`
	OriginalName  string `gorm:"type:varchar(500)"`
	LegalName     string `gorm:"type:varchar(500)"`
	Slug          string `gorm:"type:varchar(500);index"`
	Countries     string `gorm:"type:text"`
	HQ            string `gorm:"column:hq;type:varchar(500)"`
	Industry      string `gorm:"type:varchar(255);index"`
	Subindustry   string `gorm:"type:varchar(255)"`
	KeywordsCntxt string `gorm:"column:keywords_cntxt;type:text"`
	Size          string `gorm:"type:varchar(100)"`
	LinkedInURL   string `gorm:"column:linkedin_url;type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "company_updated"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *company.Company {
	return &company.Company{
		BaseEntity:    m.BaseModel.ToDomain(),
		Domain:        m.Domain,
		Name:          m.Name,
		OriginalName:  m.OriginalName,
		LegalName:     m.LegalName,
		Slug:          m.Slug,
		Countries:     m.Countries,
		HQ:            m.HQ,
		Industry:      m.Industry,
		Subindustry:   m.Subindustry,
		KeywordsCntxt: m.KeywordsCntxt,
		Size:          m.Size,
		LinkedInURL:   m.LinkedInURL,
	}
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *company.Company) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Domain = c.Domain
	m.Name = c.Name
	m.MatchName = c.MatchName()
	m.OriginalName = c.OriginalName
	m.LegalName = c.LegalName
	m.Slug = c.Slug
	m.Countries = c.Countries
	m.HQ = c.HQ
	m.Industry = c.Industry
	m.Subindustry = c.Subindustry
	m.KeywordsCntxt = c.KeywordsCntxt
	m.Size = c.Size
	m.LinkedInURL = c.LinkedInURL
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *company.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}
