package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bizdetails/backend/internal/domain/job"
)

// JobModel is the persistence model for the Job domain entity.
type JobModel struct {
	BaseModel
	UserID           uuid.UUID    `gorm:"type:uuid;not null;index"`
	Name             string       `gorm:"type:varchar(200);not null"`
	Strategy         job.Strategy `gorm:"type:varchar(50);not null"`
	Status           job.Status   `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalRecords     int          `gorm:"not null;default:0"`
	ProcessedRecords int          `gorm:"not null;default:0"`
	InternalHits     int          `gorm:"not null;default:0"`
	AIHits           int          `gorm:"column:ai_hits;not null;default:0"`
	InternalFields   int          `gorm:"not null;default:0"`
	AIFields         int          `gorm:"column:ai_fields;not null;default:0"`
	FailureReason    string       `gorm:"type:text"`
	FinishedAt       *time.Time
}

// TableName returns the table name for GORM
func (JobModel) TableName() string {
	return "jobs"
}

// ToDomain converts the persistence model to a domain Job entity.
func (m *JobModel) ToDomain() *job.Job {
	return &job.Job{
		BaseEntity:       m.BaseModel.ToDomain(),
		UserID:           m.UserID,
		Name:             m.Name,
		Strategy:         m.Strategy,
		Status:           m.Status,
		TotalRecords:     m.TotalRecords,
		ProcessedRecords: m.ProcessedRecords,
		InternalHits:     m.InternalHits,
		AIHits:           m.AIHits,
		InternalFields:   m.InternalFields,
		AIFields:         m.AIFields,
		FailureReason:    m.FailureReason,
		FinishedAt:       m.FinishedAt,
	}
}

// FromDomain populates the persistence model from a domain Job entity.
func (m *JobModel) FromDomain(j *job.Job) {
	m.FromDomainBaseEntity(j.BaseEntity)
	m.UserID = j.UserID
	m.Name = j.Name
	m.Strategy = j.Strategy
	m.Status = j.Status
	m.TotalRecords = j.TotalRecords
	m.ProcessedRecords = j.ProcessedRecords
	m.InternalHits = j.InternalHits
	m.AIHits = j.AIHits
	m.InternalFields = j.InternalFields
	m.AIFields = j.AIFields
	m.FailureReason = j.FailureReason
	m.FinishedAt = j.FinishedAt
}

// JobModelFromDomain creates a new persistence model from a domain Job entity.
func JobModelFromDomain(j *job.Job) *JobModel {
	m := &JobModel{}
	m.FromDomain(j)
	return m
}

// JobResultModel is the persistence model for a single enrichment result row.
// Field values and per-field sources are stored as JSON documents.
type JobResultModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	JobID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	InputName   string     `gorm:"type:varchar(500)"`
	InputDomain string     `gorm:"type:varchar(255)"`
	Fields      string     `gorm:"type:jsonb;default:'{}'"`
	Sources     string     `gorm:"type:jsonb;default:'{}'"`
	Source      job.Source `gorm:"type:varchar(20);not null;default:'unmatched'"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JobResultModel) TableName() string {
	return "job_results"
}

// ToDomain converts the persistence model to a domain Result.
func (m *JobResultModel) ToDomain() job.Result {
	fields := map[string]string{}
	if m.Fields != "" {
		_ = json.Unmarshal([]byte(m.Fields), &fields)
	}
	sources := map[string]job.Source{}
	if m.Sources != "" {
		_ = json.Unmarshal([]byte(m.Sources), &sources)
	}

	return job.Result{
		ID:          m.ID,
		JobID:       m.JobID,
		InputName:   m.InputName,
		InputDomain: m.InputDomain,
		Fields:      fields,
		Sources:     sources,
		Source:      m.Source,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Result.
func (m *JobResultModel) FromDomain(r job.Result) {
	m.ID = r.ID
	m.JobID = r.JobID
	m.InputName = r.InputName
	m.InputDomain = r.InputDomain
	m.Source = r.Source
	m.CreatedAt = r.CreatedAt

	fields, err := json.Marshal(r.Fields)
	if err != nil {
		fields = []byte("{}")
	}
	m.Fields = string(fields)

	sources, err := json.Marshal(r.Sources)
	if err != nil {
		sources = []byte("{}")
	}
	m.Sources = string(sources)
}
