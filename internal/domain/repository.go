package domain

import "context"

// JobRepository is the classification service's job surface.
type JobRepository interface {
	// DescribeJob fetches authoritative job metadata. Called exactly once per
	// event; retries, if any, belong to the transport client beneath it.
	DescribeJob(ctx context.Context, jobID string) (JobDetail, error)

	// CreateJob submits a classification job. clientToken makes the single
	// pass-through call idempotent on the service side.
	CreateJob(ctx context.Context, req CreateJobRequest, clientToken string) (CreateJobResult, error)
}

// PublishEntry is one outbound event for the destination bus.
type PublishEntry struct {
	Source     string
	DetailType string
	BusName    string
	Detail     []byte
}

// EventBusRepository is the destination side of the pipeline.
type EventBusRepository interface {
	// Exists checks that a bus with this name is live and returns its
	// canonical name. Failures distinguish *DestinationNotFoundError from
	// transport-level *ExternalServiceError so callers can decide policy.
	Exists(ctx context.Context, name string) (string, error)

	// Publish submits a single entry, best effort. An accepted call with a
	// nonzero per-entry failure count returns *PublishError just like a
	// raised transport failure would.
	Publish(ctx context.Context, entry PublishEntry) error
}

// FindingRepository is the findings side of the classification service.
type FindingRepository interface {
	// ListFindingIDs lists up to maxResults finding identifiers for a job,
	// honoring the opaque cursor, and returns the next cursor untouched.
	ListFindingIDs(ctx context.Context, jobID string, maxResults int32, nextToken string) ([]string, string, error)

	// GetFindings fetches full normalized records for exactly these
	// identifiers in one batched call.
	GetFindings(ctx context.Context, ids []string) ([]Finding, error)
}
