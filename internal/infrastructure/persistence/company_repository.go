package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/domain/shared"
	"github.com/bizdetails/backend/internal/infrastructure/persistence/models"
)

// GormCompanyRepository implements company.Repository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDomain finds a company by its normalized domain
func (r *GormCompanyRepository) FindByDomain(ctx context.Context, domain string) (*company.Company, error) {
	if domain == "" {
		return nil, shared.NewDomainError("INVALID_DOMAIN", "Domain cannot be empty")
	}
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("domain = ?", domain).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMatchName finds a company by its normalized name
func (r *GormCompanyRepository) FindByMatchName(ctx context.Context, matchName string) (*company.Company, error) {
	if matchName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("match_name = ?", matchName).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds companies matching the filter
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter company.Filter) ([]company.Company, error) {
	var companyModels []models.CompanyModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CompanyModel{}), filter)

	if err := query.Find(&companyModels).Error; err != nil {
		return nil, err
	}

	companies := make([]company.Company, len(companyModels))
	for i, model := range companyModels {
		companies[i] = *model.ToDomain()
	}
	return companies, nil
}

// Count counts companies matching the filter, ignoring pagination
func (r *GormCompanyRepository) Count(ctx context.Context, filter company.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CompanyModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountWithDomain counts companies that have a domain set
func (r *GormCompanyRepository) CountWithDomain(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CompanyModel{}).
		Where("domain <> ''").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	model := models.CompanyModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a company
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CompanyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormCompanyRepository) applyFilter(query *gorm.DB, filter company.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	switch filter.SortKey {
	case company.SortByDomain:
		query = query.Order("domain ASC")
	case company.SortByUpdatedAt:
		query = query.Order("updated_at DESC")
	default:
		query = query.Order("name ASC")
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination.
// Substring matches use LOWER(...) LIKE so they behave the same on postgres
// and on sqlite used in tests.
func (r *GormCompanyRepository) applyFilterWithoutPagination(query *gorm.DB, filter company.Filter) *gorm.DB {
	if filter.Domain != "" {
		query = query.Where("domain = ?", filter.Domain)
	}
	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}
	if filter.Country != "" {
		query = query.Where("LOWER(countries) LIKE ?", "%"+strings.ToLower(filter.Country)+"%")
	}
	if filter.SizeRange != "" {
		query = query.Where("size = ?", filter.SizeRange)
	}
	return query
}

// Ensure GormCompanyRepository implements company.Repository
var _ company.Repository = (*GormCompanyRepository)(nil)
