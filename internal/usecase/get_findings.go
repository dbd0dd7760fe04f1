package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/user/macie-relay/internal/adapter/metrics"
	"github.com/user/macie-relay/internal/domain"
)

// GetFindingsUseCase serves paginated findings retrieval: list one page of
// identifiers for a job, then fetch full records for exactly that page.
type GetFindingsUseCase struct {
	findings domain.FindingRepository
	metrics  *metrics.PipelineMetrics
	logger   *slog.Logger
}

// NewGetFindingsUseCase creates a new use case for findings retrieval.
func NewGetFindingsUseCase(findings domain.FindingRepository, m *metrics.PipelineMetrics, logger *slog.Logger) *GetFindingsUseCase {
	return &GetFindingsUseCase{findings: findings, metrics: m, logger: logger}
}

// GetFindings returns one page of normalized findings. The page size is
// clamped to the upstream hard limit regardless of what the caller asked for,
// and the continuation cursor is returned exactly as the listing phase
// produced it. A failed fetch phase fails the whole call with no partial
// results and no cursor, since resuming past it would duplicate or drop
// identifiers.
func (uc *GetFindingsUseCase) GetFindings(ctx context.Context, req domain.FindingsRequest) (domain.FindingsPage, error) {
	jobID := strings.TrimSpace(req.JobID)
	if jobID == "" {
		uc.metrics.FindingsPagesTotal.WithLabelValues("error_validation").Inc()
		return domain.FindingsPage{}, &domain.ValidationError{Field: "jobId", Message: "must not be empty"}
	}

	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > domain.MaxFindingsPageSize {
		maxResults = domain.MaxFindingsPageSize
	}

	ids, cursor, err := uc.findings.ListFindingIDs(ctx, jobID, int32(maxResults), req.NextToken)
	if err != nil {
		uc.metrics.FindingsPagesTotal.WithLabelValues("error_upstream").Inc()
		uc.logger.Error("failed to list finding ids", "job_id", jobID, "error", err)
		return domain.FindingsPage{}, err
	}

	// Zero identifiers short-circuits the fetch phase entirely: an empty
	// page with no cursor, whether the job has no findings yet or does not
	// exist at all.
	if len(ids) == 0 {
		uc.metrics.FindingsPagesTotal.WithLabelValues("empty").Inc()
		uc.logger.Info("no findings for job", "job_id", jobID)
		return domain.FindingsPage{Findings: []domain.Finding{}}, nil
	}

	records, err := uc.findings.GetFindings(ctx, ids)
	if err != nil {
		uc.metrics.FindingsPagesTotal.WithLabelValues("error_upstream").Inc()
		uc.logger.Error("failed to fetch findings", "job_id", jobID, "count", len(ids), "error", err)
		return domain.FindingsPage{}, err
	}

	uc.metrics.FindingsPagesTotal.WithLabelValues("ok").Inc()
	uc.metrics.FindingsReturnedTotal.Add(float64(len(records)))
	uc.logger.Info("served findings page",
		"job_id", jobID,
		"returned", len(records),
		"has_next_token", cursor != "",
	)

	return domain.FindingsPage{
		Findings:   records,
		NextToken:  cursor,
		TotalCount: len(records),
	}, nil
}
