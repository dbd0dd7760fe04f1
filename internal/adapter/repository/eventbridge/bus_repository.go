// Package eventbridge adapts the EventBridge API to the domain's event bus port.
package eventbridge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/aws/smithy-go"

	"github.com/user/macie-relay/internal/domain"
)

// BusAPI is the subset of the EventBridge client the repository uses.
type BusAPI interface {
	DescribeEventBus(ctx context.Context, in *eventbridge.DescribeEventBusInput, opts ...func(*eventbridge.Options)) (*eventbridge.DescribeEventBusOutput, error)
	PutEvents(ctx context.Context, in *eventbridge.PutEventsInput, opts ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// BusRepository implements domain.EventBusRepository against EventBridge.
type BusRepository struct {
	client BusAPI
	logger *slog.Logger
}

// NewBusRepository creates a BusRepository backed by the given client.
func NewBusRepository(client BusAPI, logger *slog.Logger) *BusRepository {
	return &BusRepository{client: client, logger: logger}
}

// Exists checks that an event bus with this name is live. A missing bus is a
// *DestinationNotFoundError; anything else is a transport-level
// *ExternalServiceError, so callers can tell misconfiguration from outage.
func (r *BusRepository) Exists(ctx context.Context, name string) (string, error) {
	out, err := r.client.DescribeEventBus(ctx, &eventbridge.DescribeEventBusInput{
		Name: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", &domain.DestinationNotFoundError{Name: name, Err: err}
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			r.logger.Warn("event bus lookup failed",
				"bus_name", name,
				"error_code", apiErr.ErrorCode(),
			)
		}
		return "", &domain.ExternalServiceError{Service: "eventbridge", Operation: "DescribeEventBus", Err: err}
	}
	return aws.ToString(out.Name), nil
}

// Publish submits one entry. The call accepting the batch while reporting a
// per-entry failure is promoted to *PublishError, identical in effect to a
// raised transport failure.
func (r *BusRepository) Publish(ctx context.Context, entry domain.PublishEntry) error {
	start := time.Now()
	out, err := r.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				Source:       aws.String(entry.Source),
				DetailType:   aws.String(entry.DetailType),
				Detail:       aws.String(string(entry.Detail)),
				EventBusName: aws.String(entry.BusName),
			},
		},
	})
	if err != nil {
		return &domain.PublishError{Err: err}
	}
	if out.FailedEntryCount > 0 {
		var code, msg string
		for _, e := range out.Entries {
			if e.ErrorCode != nil {
				code, msg = aws.ToString(e.ErrorCode), aws.ToString(e.ErrorMessage)
				break
			}
		}
		return &domain.PublishError{
			FailedEntries: int(out.FailedEntryCount),
			Err:           &domain.ExternalServiceError{Service: "eventbridge", Operation: "PutEvents", Err: errors.New(code + ": " + msg)},
		}
	}

	eventID := ""
	if len(out.Entries) > 0 {
		eventID = aws.ToString(out.Entries[0].EventId)
	}
	r.logger.Info("published event",
		"bus_name", entry.BusName,
		"event_id", eventID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
