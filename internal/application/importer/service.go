package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/bizdetails/backend/internal/domain/company"
	"github.com/bizdetails/backend/internal/domain/shared"
	"github.com/bizdetails/backend/internal/infrastructure/csvimport"
	"go.uber.org/zap"
)

// Fallback cap on row errors carried in a summary when the configured
// limit is missing or non-positive
const defaultMaxRowErrors = 1000

// RowIssue is one per-row failure in the import summary
type RowIssue struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// Summary is the aggregate result of one import call
type Summary struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Errors  []RowIssue `json:"errors"`
}

// Service drives the dataset import pipeline: parse, map columns, then
// validate and merge each row in file order. Per-row failures are recorded
// and never abort the run; only an unparseable file is fatal.
type Service struct {
	resolver     *Resolver
	maxRowErrors int
	logger       *zap.Logger
}

// NewService creates an import service over the company repository.
// maxRowErrors caps the error list carried in a summary; non-positive
// values fall back to the default.
func NewService(companies company.Repository, maxRowErrors int, logger *zap.Logger) *Service {
	if maxRowErrors <= 0 {
		maxRowErrors = defaultMaxRowErrors
	}
	return &Service{
		resolver:     NewResolver(companies),
		maxRowErrors: maxRowErrors,
		logger:       logger,
	}
}

// Import processes an uploaded CSV dataset and returns the import summary.
// Rows are processed strictly sequentially, so later rows resolving to the
// same record win over earlier ones within the call.
func (s *Service) Import(ctx context.Context, r io.Reader, mode Mode, columnMap map[string]string) (*Summary, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	parser, err := csvimport.NewParser(r)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}

	mapping, err := ResolveColumns(parser.Headers(), columnMap)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Errors: []RowIssue{}}
	collection := csvimport.NewErrorCollection(s.maxRowErrors)
	dataRow := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			dataRow++
			collection.Add(csvimport.NewRowError(dataRow, "",
				csvimport.ErrCodeImportMalformedRow, err.Error()))
			continue
		}
		dataRow = row.DataRow

		normalized, rowErr := ValidateRow(row, mapping)
		if rowErr != nil {
			collection.Add(*rowErr)
			continue
		}

		outcome, err := s.resolver.Resolve(ctx, normalized, mode)
		if err != nil {
			collection.Add(csvimport.NewRowError(row.DataRow, "",
				csvimport.ErrCodeImportMalformedRow, err.Error()))
			continue
		}
		switch outcome {
		case OutcomeCreated:
			summary.Created++
		case OutcomeUpdated:
			summary.Updated++
		}
	}

	for _, rowErr := range collection.Errors() {
		summary.Errors = append(summary.Errors, RowIssue{Row: rowErr.Row, Error: rowErr.Message})
	}

	s.logger.Info("Dataset import completed",
		zap.String("mode", string(mode)),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("error_rows", collection.TotalCount()),
	)
	if collection.IsTruncated() {
		s.logger.Warn(fmt.Sprintf("Import error list truncated to %d entries", s.maxRowErrors),
			zap.Int("total_errors", collection.TotalCount()))
	}

	return summary, nil
}
