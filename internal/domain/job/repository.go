package job

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for job persistence
type Repository interface {
	// FindByID finds a job by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)

	// FindByUser finds all jobs created by a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Job, error)

	// FindResults returns the result rows of a job in input order
	FindResults(ctx context.Context, jobID uuid.UUID) ([]Result, error)

	// Save creates or updates a job
	Save(ctx context.Context, j *Job) error

	// SaveResults persists result rows for a job
	SaveResults(ctx context.Context, results []Result) error

	// CountByStatus counts jobs per status for a user
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[Status]int64, error)
}
