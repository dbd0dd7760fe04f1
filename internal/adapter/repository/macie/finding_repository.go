package macie

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	"github.com/aws/aws-sdk-go-v2/service/macie2/types"
	"golang.org/x/time/rate"

	"github.com/user/macie-relay/internal/domain"
)

// jobIDCriterionKey is the finding attribute the listing phase filters on.
const jobIDCriterionKey = "classificationDetails.jobId"

// FindingsAPI is the subset of the Macie2 client the finding repository uses.
type FindingsAPI interface {
	ListFindings(ctx context.Context, in *macie2.ListFindingsInput, opts ...func(*macie2.Options)) (*macie2.ListFindingsOutput, error)
	GetFindings(ctx context.Context, in *macie2.GetFindingsInput, opts ...func(*macie2.Options)) (*macie2.GetFindingsOutput, error)
}

// FindingRepository implements domain.FindingRepository against the Macie2
// API. A client-side limiter keeps paged polling under the findings API's
// throttling quota.
type FindingRepository struct {
	client  FindingsAPI
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewFindingRepository creates a FindingRepository. rps bounds the request
// rate against the findings APIs.
func NewFindingRepository(client FindingsAPI, rps float64, logger *slog.Logger) *FindingRepository {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &FindingRepository{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// ListFindingIDs lists finding identifiers for a job. The cursor is owned by
// the service and passed through untouched in both directions.
func (r *FindingRepository) ListFindingIDs(ctx context.Context, jobID string, maxResults int32, nextToken string) ([]string, string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, "", &domain.ExternalServiceError{Service: "macie2", Operation: "ListFindings", Err: err}
	}

	in := &macie2.ListFindingsInput{
		FindingCriteria: &types.FindingCriteria{
			Criterion: map[string]types.CriterionAdditionalProperties{
				jobIDCriterionKey: {Eq: []string{jobID}},
			},
		},
		MaxResults: aws.Int32(maxResults),
	}
	if nextToken != "" {
		in.NextToken = aws.String(nextToken)
	}

	start := time.Now()
	out, err := r.client.ListFindings(ctx, in)
	if err != nil {
		return nil, "", &domain.ExternalServiceError{Service: "macie2", Operation: "ListFindings", Err: err}
	}
	r.logger.Debug("listed findings",
		"job_id", jobID,
		"count", len(out.FindingIds),
		"has_next_token", out.NextToken != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out.FindingIds, aws.ToString(out.NextToken), nil
}

// GetFindings fetches full records for the given identifiers in one call and
// normalizes them to the stable domain shape.
func (r *FindingRepository) GetFindings(ctx context.Context, ids []string) ([]domain.Finding, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &domain.ExternalServiceError{Service: "macie2", Operation: "GetFindings", Err: err}
	}

	start := time.Now()
	out, err := r.client.GetFindings(ctx, &macie2.GetFindingsInput{FindingIds: ids})
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "macie2", Operation: "GetFindings", Err: err}
	}
	r.logger.Debug("fetched findings",
		"requested", len(ids),
		"returned", len(out.Findings),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	findings := make([]domain.Finding, 0, len(out.Findings))
	for _, f := range out.Findings {
		findings = append(findings, normalizeFinding(f))
	}
	return findings, nil
}
