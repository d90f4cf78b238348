package job

import (
	"strings"
	"time"

	"github.com/bizdetails/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the lifecycle state of an enrichment job
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Strategy selects how domains are resolved
type Strategy string

// StrategyInternalThenAI looks domains up in the company table first and
// falls back to the AI enrichment client for misses.
const StrategyInternalThenAI Strategy = "internal_then_ai_fallback"

// Source tells where a resolved field value came from
type Source string

const (
	SourceInternal  Source = "internal"
	SourceAI        Source = "ai"
	SourceUnmatched Source = "unmatched"
)

// Job is the aggregate root for one enrichment run
type Job struct {
	shared.BaseEntity
	UserID           uuid.UUID
	Name             string
	Strategy         Strategy
	Status           Status
	TotalRecords     int
	ProcessedRecords int
	InternalHits     int
	AIHits           int
	InternalFields   int
	AIFields         int
	FailureReason    string
	FinishedAt       *time.Time
}

// Result is the enrichment outcome for a single input row
type Result struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	InputName   string
	InputDomain string
	Fields      map[string]string
	Sources     map[string]Source
	Source      Source
	CreatedAt   time.Time
}

// NewJob creates a pending job for the given user
func NewJob(userID uuid.UUID, name string, strategy Strategy) (*Job, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_JOB_NAME", "Job name cannot be empty")
	}
	if strategy != StrategyInternalThenAI {
		return nil, shared.NewDomainError("INVALID_STRATEGY", "Unsupported enrichment strategy")
	}
	return &Job{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Name:       name,
		Strategy:   strategy,
		Status:     StatusPending,
	}, nil
}

// Start transitions the job to running
func (j *Job) Start(totalRecords int) error {
	if j.Status != StatusPending {
		return shared.ErrInvalidState
	}
	j.Status = StatusRunning
	j.TotalRecords = totalRecords
	j.UpdatedAt = time.Now()
	return nil
}

// RecordResult folds one resolved row into the job counters
func (j *Job) RecordResult(r *Result) {
	j.ProcessedRecords++
	switch r.Source {
	case SourceInternal:
		j.InternalHits++
	case SourceAI:
		j.AIHits++
	}
	for _, src := range r.Sources {
		switch src {
		case SourceInternal:
			j.InternalFields++
		case SourceAI:
			j.AIFields++
		}
	}
	j.UpdatedAt = time.Now()
}

// Complete marks the job finished
func (j *Job) Complete() {
	now := time.Now()
	j.Status = StatusCompleted
	j.FinishedAt = &now
	j.UpdatedAt = now
}

// Fail marks the job failed with a reason
func (j *Job) Fail(reason string) {
	now := time.Now()
	j.Status = StatusFailed
	j.FailureReason = reason
	j.FinishedAt = &now
	j.UpdatedAt = now
}

// Progress returns completion as a 0-100 percentage
func (j *Job) Progress() int {
	if j.TotalRecords == 0 {
		if j.Status == StatusCompleted {
			return 100
		}
		return 0
	}
	return j.ProcessedRecords * 100 / j.TotalRecords
}

// InternalPct returns the share of records resolved from the company table
func (j *Job) InternalPct() int {
	if j.ProcessedRecords == 0 {
		return 0
	}
	return j.InternalHits * 100 / j.ProcessedRecords
}

// AIPct returns the share of records resolved by the AI fallback
func (j *Job) AIPct() int {
	if j.ProcessedRecords == 0 {
		return 0
	}
	return j.AIHits * 100 / j.ProcessedRecords
}

// NewResult creates a result row for a job input
func NewResult(jobID uuid.UUID, inputName, inputDomain string) *Result {
	return &Result{
		ID:          uuid.New(),
		JobID:       jobID,
		InputName:   strings.TrimSpace(inputName),
		InputDomain: strings.TrimSpace(inputDomain),
		Fields:      map[string]string{},
		Sources:     map[string]Source{},
		Source:      SourceUnmatched,
		CreatedAt:   time.Now(),
	}
}

// Resolve records the enriched field values and their common source
func (r *Result) Resolve(source Source, fields map[string]string) {
	r.Source = source
	for field, value := range fields {
		if value == "" {
			continue
		}
		r.Fields[field] = value
		r.Sources[field] = source
	}
}
