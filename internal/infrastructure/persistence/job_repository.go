package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bizdetails/backend/internal/domain/job"
	"github.com/bizdetails/backend/internal/domain/shared"
	"github.com/bizdetails/backend/internal/infrastructure/persistence/models"
)

// GormJobRepository implements job.Repository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// FindByID finds a job by its ID
func (r *GormJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	var model models.JobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser finds all jobs created by a user, newest first
func (r *GormJobRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	var jobModels []models.JobModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]job.Job, len(jobModels))
	for i, model := range jobModels {
		jobs[i] = *model.ToDomain()
	}
	return jobs, nil
}

// FindResults returns the result rows of a job in input order
func (r *GormJobRepository) FindResults(ctx context.Context, jobID uuid.UUID) ([]job.Result, error) {
	var resultModels []models.JobResultModel
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&resultModels).Error; err != nil {
		return nil, err
	}

	results := make([]job.Result, len(resultModels))
	for i, model := range resultModels {
		results[i] = model.ToDomain()
	}
	return results, nil
}

// Save creates or updates a job
func (r *GormJobRepository) Save(ctx context.Context, j *job.Job) error {
	model := models.JobModelFromDomain(j)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveResults persists result rows for a job
func (r *GormJobRepository) SaveResults(ctx context.Context, results []job.Result) error {
	if len(results) == 0 {
		return nil
	}
	resultModels := make([]*models.JobResultModel, len(results))
	for i, res := range results {
		m := &models.JobResultModel{}
		m.FromDomain(res)
		resultModels[i] = m
	}
	return r.db.WithContext(ctx).Save(resultModels).Error
}

// CountByStatus counts jobs per status for a user
func (r *GormJobRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (map[job.Status]int64, error) {
	type statusCount struct {
		Status job.Status
		Count  int64
	}

	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.JobModel{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[job.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Ensure GormJobRepository implements job.Repository
var _ job.Repository = (*GormJobRepository)(nil)
