package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/user/macie-relay/internal/adapter/metrics"
	"github.com/user/macie-relay/internal/domain"
)

var errMissingJobIdentifiers = errors.New("response is missing job identifiers")

// CreateJobUseCase is the validated pass-through for submitting a
// classification job. The destination tag is validated up front so a job can
// never be created with a status route that will only fail later.
type CreateJobUseCase struct {
	jobs    domain.JobRepository
	bus     domain.EventBusRepository
	metrics *metrics.PipelineMetrics
	logger  *slog.Logger
	tagKey  string
}

// NewCreateJobUseCase creates a new use case for job submission.
func NewCreateJobUseCase(jobs domain.JobRepository, bus domain.EventBusRepository, m *metrics.PipelineMetrics, logger *slog.Logger, tagKey string) *CreateJobUseCase {
	return &CreateJobUseCase{jobs: jobs, bus: bus, metrics: m, logger: logger, tagKey: tagKey}
}

// CreateJob validates the request, checks the destination tag's format and
// live existence, then makes the single submission call.
func (uc *CreateJobUseCase) CreateJob(ctx context.Context, req domain.CreateJobRequest) (domain.CreateJobResult, error) {
	if err := req.Validate(); err != nil {
		uc.metrics.JobsCreatedTotal.WithLabelValues("error_validation").Inc()
		return domain.CreateJobResult{}, err
	}

	arn, ok := domain.ResolveDestinationTag(req.Tags, uc.tagKey)
	if !ok {
		uc.metrics.JobsCreatedTotal.WithLabelValues("error_validation").Inc()
		return domain.CreateJobResult{}, &domain.ValidationError{
			Field:   "tags." + uc.tagKey,
			Message: "required destination tag is missing",
		}
	}
	ref, err := domain.ParseEventBusARN(arn)
	if err != nil {
		uc.metrics.JobsCreatedTotal.WithLabelValues("error_validation").Inc()
		return domain.CreateJobResult{}, err
	}
	if _, err := uc.bus.Exists(ctx, ref.Name); err != nil {
		uc.metrics.JobsCreatedTotal.WithLabelValues("error_validation").Inc()
		return domain.CreateJobResult{}, err
	}

	res, err := uc.jobs.CreateJob(ctx, req, uuid.NewString())
	if err != nil {
		uc.metrics.JobsCreatedTotal.WithLabelValues("error_upstream").Inc()
		return domain.CreateJobResult{}, err
	}
	if res.JobID == "" || res.JobArn == "" {
		uc.metrics.JobsCreatedTotal.WithLabelValues("error_upstream").Inc()
		return domain.CreateJobResult{}, &domain.ExternalServiceError{
			Service:   "macie2",
			Operation: "CreateClassificationJob",
			Err:       errMissingJobIdentifiers,
		}
	}

	uc.metrics.JobsCreatedTotal.WithLabelValues("ok").Inc()
	uc.logger.Info("classification job submitted",
		"job_id", res.JobID,
		"job_name", req.Name,
		"destination", ref.Name,
	)
	return res, nil
}
