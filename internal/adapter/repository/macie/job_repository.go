// Package macie adapts the Macie2 API to the domain's job and finding ports.
package macie

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	"github.com/aws/aws-sdk-go-v2/service/macie2/types"

	"github.com/user/macie-relay/internal/domain"
)

// JobRepository implements domain.JobRepository against the Macie2 API.
type JobRepository struct {
	client *macie2.Client
	logger *slog.Logger
}

// NewJobRepository creates a JobRepository backed by the given client.
func NewJobRepository(client *macie2.Client, logger *slog.Logger) *JobRepository {
	return &JobRepository{client: client, logger: logger}
}

// DescribeJob fetches the job and maps the enrichment subset. Absent output
// fields default to empty values, never to an error.
func (r *JobRepository) DescribeJob(ctx context.Context, jobID string) (domain.JobDetail, error) {
	start := time.Now()
	out, err := r.client.DescribeClassificationJob(ctx, &macie2.DescribeClassificationJobInput{
		JobId: aws.String(jobID),
	})
	if err != nil {
		return domain.JobDetail{}, &domain.JobLookupError{JobID: jobID, Err: err}
	}
	r.logger.Debug("described classification job",
		"job_id", jobID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	detail := domain.JobDetail{
		JobArn:          aws.ToString(out.JobArn),
		Name:            aws.ToString(out.Name),
		Description:     aws.ToString(out.Description),
		S3JobDefinition: mapS3JobDefinition(out.S3JobDefinition),
		Tags:            out.Tags,
	}
	if out.Statistics != nil {
		detail.Statistics = domain.JobStatistics{
			ApproximateNumberOfObjectsToProcess: aws.ToFloat64(out.Statistics.ApproximateNumberOfObjectsToProcess),
			NumberOfRuns:                        aws.ToFloat64(out.Statistics.NumberOfRuns),
		}
	}
	return detail, nil
}

// CreateJob maps the validated request onto the SDK input and submits it once.
func (r *JobRepository) CreateJob(ctx context.Context, req domain.CreateJobRequest, clientToken string) (domain.CreateJobResult, error) {
	defs := make([]types.S3BucketDefinitionForJob, 0, len(req.S3JobDefinition.BucketDefinitions))
	for _, d := range req.S3JobDefinition.BucketDefinitions {
		defs = append(defs, types.S3BucketDefinitionForJob{
			AccountId: aws.String(d.AccountID),
			Buckets:   d.Buckets,
		})
	}

	in := &macie2.CreateClassificationJobInput{
		ClientToken:     aws.String(clientToken),
		JobType:         types.JobType(req.JobType),
		Name:            aws.String(req.Name),
		S3JobDefinition: &types.S3JobDefinition{BucketDefinitions: defs},
		InitialRun:      aws.Bool(req.InitialRun),
		Tags:            req.Tags,
	}
	if req.Description != "" {
		in.Description = aws.String(req.Description)
	}
	if req.SamplingPercentage > 0 {
		in.SamplingPercentage = aws.Int32(req.SamplingPercentage)
	}
	if len(req.CustomDataIdentifierIDs) > 0 {
		in.CustomDataIdentifierIds = req.CustomDataIdentifierIDs
	}
	if req.ManagedDataIdentifierSelector != "" {
		in.ManagedDataIdentifierSelector = types.ManagedDataIdentifierSelector(req.ManagedDataIdentifierSelector)
	}
	switch req.ScheduleFrequency {
	case domain.ScheduleDaily:
		in.ScheduleFrequency = &types.JobScheduleFrequency{DailySchedule: &types.DailySchedule{}}
	case domain.ScheduleWeekly:
		in.ScheduleFrequency = &types.JobScheduleFrequency{WeeklySchedule: &types.WeeklySchedule{}}
	case domain.ScheduleMonthly:
		in.ScheduleFrequency = &types.JobScheduleFrequency{MonthlySchedule: &types.MonthlySchedule{}}
	}

	start := time.Now()
	out, err := r.client.CreateClassificationJob(ctx, in)
	if err != nil {
		return domain.CreateJobResult{}, &domain.ExternalServiceError{
			Service:   "macie2",
			Operation: "CreateClassificationJob",
			Err:       err,
		}
	}
	r.logger.Info("created classification job",
		"job_id", aws.ToString(out.JobId),
		"job_name", req.Name,
		"job_type", req.JobType,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return domain.CreateJobResult{
		JobID:  aws.ToString(out.JobId),
		JobArn: aws.ToString(out.JobArn),
	}, nil
}

func mapS3JobDefinition(def *types.S3JobDefinition) domain.S3JobDefinition {
	mapped := domain.S3JobDefinition{BucketDefinitions: []domain.BucketDefinition{}}
	if def == nil {
		return mapped
	}
	for _, d := range def.BucketDefinitions {
		mapped.BucketDefinitions = append(mapped.BucketDefinitions, domain.BucketDefinition{
			AccountID: aws.ToString(d.AccountId),
			Buckets:   d.Buckets,
		})
	}
	return mapped
}
