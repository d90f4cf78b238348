package job

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/domain/identity"
	"github.com/bizdetails/backend/internal/domain/job"
	"github.com/bizdetails/backend/internal/domain/shared"
	"github.com/bizdetails/backend/internal/infrastructure/csvimport"
	"github.com/bizdetails/backend/internal/infrastructure/enrich"
)

// enrichedFields are the company fields a job resolves for its inputs
var enrichedFields = []string{
	company.FieldName,
	company.FieldCountries,
	company.FieldHQ,
	company.FieldIndustry,
	company.FieldSubindustry,
	company.FieldKeywordsCntxt,
	company.FieldSize,
	company.FieldLinkedInURL,
}

// SubmitInput describes an enrichment run over an uploaded CSV
type SubmitInput struct {
	UserID   uuid.UUID
	Name     string
	Strategy string
	Reader   io.Reader
}

// Service runs enrichment jobs: inputs are looked up in the company
// dataset first, misses go to the AI client in batches.
type Service struct {
	jobs      job.Repository
	companies company.Repository
	users     identity.UserRepository
	enricher  enrich.Client
	logger    *zap.Logger
}

// NewService creates an enrichment job service
func NewService(
	jobs job.Repository,
	companies company.Repository,
	users identity.UserRepository,
	enricher enrich.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		jobs:      jobs,
		companies: companies,
		users:     users,
		enricher:  enricher,
		logger:    logger,
	}
}

// Submit parses the uploaded CSV, runs the job to completion and returns
// it. A failing AI fallback marks the job failed rather than erroring.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*job.Job, error) {
	strategy := job.Strategy(input.Strategy)
	if strategy == "" {
		strategy = job.StrategyInternalThenAI
	}

	j, err := job.NewJob(input.UserID, input.Name, strategy)
	if err != nil {
		return nil, err
	}

	inputs, err := s.parseInputs(input.Reader)
	if err != nil {
		return nil, err
	}

	if err := j.Start(len(inputs)); err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, j); err != nil {
		return nil, err
	}

	results, runErr := s.resolve(ctx, j, inputs)

	for i := range results {
		j.RecordResult(&results[i])
	}
	if err := s.jobs.SaveResults(ctx, results); err != nil {
		s.logger.Error("Failed to save job results", zap.Error(err))
		runErr = err
	}

	if runErr != nil {
		j.Fail(runErr.Error())
	} else {
		j.Complete()
	}
	if err := s.jobs.Save(ctx, j); err != nil {
		return nil, err
	}

	s.recordUserActivity(ctx, j)

	s.logger.Info("Enrichment job finished",
		zap.String("job_id", j.ID.String()),
		zap.String("status", string(j.Status)),
		zap.Int("total", j.TotalRecords),
		zap.Int("internal_hits", j.InternalHits),
		zap.Int("ai_hits", j.AIHits),
	)

	return j, nil
}

// parseInputs reads the uploaded CSV. A domain or name column (or a
// recognized alias) must be present; empty rows are skipped.
func (s *Service) parseInputs(r io.Reader) ([]enrich.Input, error) {
	parser, err := csvimport.NewParser(r)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", "Could not read CSV file: "+err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", "Could not read CSV header: "+err.Error())
	}

	domainCol, hasDomain := parser.ColumnIndex("domain")
	if !hasDomain {
		domainCol, hasDomain = parser.ColumnIndex("website")
	}
	nameCol, hasName := parser.ColumnIndex("name")
	if !hasName {
		nameCol, hasName = parser.ColumnIndex("company")
	}
	if !hasDomain && !hasName {
		return nil, shared.NewDomainError("INVALID_FILE", "CSV must have a domain or name column")
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", "Could not read CSV rows: "+err.Error())
	}

	inputs := make([]enrich.Input, 0, len(rows))
	for _, row := range rows {
		var in enrich.Input
		if hasDomain {
			in.Domain = company.NormalizeDomain(row.Field(domainCol))
		}
		if hasName {
			in.Name = row.Field(nameCol)
		}
		if in.Domain == "" && in.Name == "" {
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// resolve matches every input against the company dataset, then sends the
// misses to the AI client.
func (s *Service) resolve(ctx context.Context, j *job.Job, inputs []enrich.Input) ([]job.Result, error) {
	results := make([]job.Result, len(inputs))
	var misses []int

	base := time.Now()
	for i, in := range inputs {
		res := job.NewResult(j.ID, in.Name, in.Domain)
		// keep input order stable for FindResults
		res.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)

		if c := s.lookupInternal(ctx, in); c != nil {
			res.Resolve(job.SourceInternal, companyFields(c))
		} else {
			misses = append(misses, i)
		}
		results[i] = *res
	}

	if len(misses) == 0 {
		return results, nil
	}

	batch := make([]enrich.Input, len(misses))
	for i, idx := range misses {
		batch[i] = inputs[idx]
	}

	outputs, err := s.enricher.EnrichBatch(ctx, batch)
	if err != nil {
		return results, err
	}

	byDomain := make(map[string]enrich.Output, len(outputs))
	for _, out := range outputs {
		if d := company.NormalizeDomain(out.Domain); d != "" {
			byDomain[d] = out
		}
	}

	for i, idx := range misses {
		var out enrich.Output
		var ok bool
		if d := results[idx].InputDomain; d != "" {
			out, ok = byDomain[d]
		}
		if !ok && len(outputs) == len(batch) {
			// tolerate responses without echoed domains
			out, ok = outputs[i], true
		}
		if ok && len(out.Fields) > 0 {
			results[idx].Resolve(job.SourceAI, out.Fields)
		}
	}
	return results, nil
}

func (s *Service) lookupInternal(ctx context.Context, in enrich.Input) *company.Company {
	if in.Domain != "" {
		if c, err := s.companies.FindByDomain(ctx, in.Domain); err == nil {
			return c
		}
		return nil
	}
	matchName := company.NormalizeName(in.Name)
	if matchName == "" {
		return nil
	}
	if c, err := s.companies.FindByMatchName(ctx, matchName); err == nil {
		return c
	}
	return nil
}

func (s *Service) recordUserActivity(ctx context.Context, j *job.Job) {
	user, err := s.users.FindByID(ctx, j.UserID)
	if err != nil {
		s.logger.Warn("Failed to load user for job bookkeeping", zap.Error(err))
		return
	}
	user.IncrementEnrichmentCount(j.ProcessedRecords)
	user.RecordActivity(identity.ActivityJob, j.Name, time.Now())
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Warn("Failed to update user after job", zap.Error(err))
	}
}

// Get returns a job owned by the given user
func (s *Service) Get(ctx context.Context, jobID, userID uuid.UUID) (*job.Job, error) {
	j, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.UserID != userID {
		return nil, shared.ErrForbidden
	}
	return j, nil
}

// List returns all jobs of a user, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	return s.jobs.FindByUser(ctx, userID)
}

// Results returns the result rows of a job owned by the given user
func (s *Service) Results(ctx context.Context, jobID, userID uuid.UUID) ([]job.Result, error) {
	if _, err := s.Get(ctx, jobID, userID); err != nil {
		return nil, err
	}
	return s.jobs.FindResults(ctx, jobID)
}

func companyFields(c *company.Company) map[string]string {
	fields := make(map[string]string, len(enrichedFields))
	for _, f := range enrichedFields {
		fields[f] = c.Get(f)
	}
	return fields
}
