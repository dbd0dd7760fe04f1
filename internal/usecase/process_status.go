package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/user/macie-relay/internal/adapter/cloudwatch"
	"github.com/user/macie-relay/internal/adapter/metrics"
	"github.com/user/macie-relay/internal/domain"
)

// ErrDeadlineExhausted aborts an invocation when the remaining time budget is
// too small to safely start another external call.
var ErrDeadlineExhausted = errors.New("remaining invocation time below slack threshold")

// EventOutcome is the terminal state of one relevant event.
type EventOutcome string

const (
	OutcomePublished EventOutcome = "published"
	OutcomeSkipped   EventOutcome = "skipped"
	OutcomeAborted   EventOutcome = "aborted"
)

// EventResult records how one relevant event terminated.
type EventResult struct {
	JobID      string
	EventType  string
	Outcome    EventOutcome
	SkipReason string
	Err        error
}

// BatchReport summarizes one invocation of the status pipeline.
type BatchReport struct {
	Records       int
	ParseFailures int
	Dropped       int
	Results       []EventResult
}

// ProcessStatusUseCase orchestrates the status-event path: decode the batch,
// filter and classify records, then per event enrich, resolve the
// destination, and publish. Events are processed sequentially; a fatal
// failure on one event aborts the remaining sequence so the trigger's redrive
// reattempts the whole batch.
type ProcessStatusUseCase struct {
	jobs          domain.JobRepository
	bus           domain.EventBusRepository
	metrics       *metrics.PipelineMetrics
	logger        *slog.Logger
	tagKey        string
	source        string
	detailType    string
	deadlineSlack time.Duration
}

// NewProcessStatusUseCase creates a new use case for processing status batches.
func NewProcessStatusUseCase(
	jobs domain.JobRepository,
	bus domain.EventBusRepository,
	m *metrics.PipelineMetrics,
	logger *slog.Logger,
	tagKey, source, detailType string,
	deadlineSlack time.Duration,
) *ProcessStatusUseCase {
	return &ProcessStatusUseCase{
		jobs:          jobs,
		bus:           bus,
		metrics:       m,
		logger:        logger,
		tagKey:        tagKey,
		source:        source,
		detailType:    detailType,
		deadlineSlack: deadlineSlack,
	}
}

// ProcessBatch runs the pipeline over one encoded subscription payload.
// Only two failure classes abort the invocation: decode/enrich/publish
// failures (returned as the error). Missing or invalid destinations are
// skip-and-log outcomes; parse failures skip the record.
func (uc *ProcessStatusUseCase) ProcessBatch(ctx context.Context, data string) (BatchReport, error) {
	var report BatchReport

	batch, err := cloudwatch.Decode(data)
	if err != nil {
		uc.metrics.BatchesTotal.WithLabelValues("error_decode").Inc()
		uc.logger.Error("failed to decode log batch", "error", err)
		return report, err
	}
	report.Records = len(batch.Records)
	uc.metrics.RecordsTotal.Add(float64(len(batch.Records)))

	uc.logger.Info("decoded log batch",
		"log_group", batch.LogGroup,
		"log_stream", batch.LogStream,
		"records", len(batch.Records),
	)

	// Filter pass: unparseable records are skipped, irrelevant event types
	// are expected noise and dropped without logging an error.
	events := make([]domain.StatusEvent, 0, len(batch.Records))
	for _, rec := range batch.Records {
		ev, err := domain.ParseStatusEvent(rec.ID, rec.Message)
		if err != nil {
			report.ParseFailures++
			uc.metrics.EventsTotal.WithLabelValues("error_parse").Inc()
			uc.logger.Warn("skipping unparseable log record", "record_id", rec.ID, "error", err)
			continue
		}
		if !domain.IsRelevant(ev.EventType) {
			report.Dropped++
			uc.metrics.EventsTotal.WithLabelValues("dropped_irrelevant").Inc()
			uc.logger.Debug("dropping irrelevant event", "event_type", ev.EventType)
			continue
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		uc.metrics.BatchesTotal.WithLabelValues("ok").Inc()
		uc.logger.Info("no relevant events in batch")
		return report, nil
	}

	for _, ev := range events {
		res := uc.processEvent(ctx, ev)
		report.Results = append(report.Results, res)
		uc.metrics.EventsTotal.WithLabelValues(string(res.Outcome)).Inc()

		switch res.Outcome {
		case OutcomePublished:
			uc.logger.Info("published status event",
				"job_id", res.JobID,
				"event_type", res.EventType,
			)
		case OutcomeSkipped:
			uc.logger.Error("skipping event without publish",
				"job_id", res.JobID,
				"event_type", res.EventType,
				"reason", res.SkipReason,
			)
		case OutcomeAborted:
			uc.metrics.BatchesTotal.WithLabelValues("error_abort").Inc()
			uc.logger.Error("aborting invocation",
				"job_id", res.JobID,
				"event_type", res.EventType,
				"error", res.Err,
			)
			return report, res.Err
		}
	}

	uc.metrics.BatchesTotal.WithLabelValues("ok").Inc()
	return report, nil
}

func (uc *ProcessStatusUseCase) processEvent(ctx context.Context, ev domain.StatusEvent) EventResult {
	res := EventResult{JobID: ev.JobID, EventType: ev.EventType}

	abort := func(err error) EventResult {
		res.Outcome = OutcomeAborted
		res.Err = err
		return res
	}
	skip := func(reason string) EventResult {
		res.Outcome = OutcomeSkipped
		res.SkipReason = reason
		return res
	}

	if err := uc.checkDeadline(ctx); err != nil {
		return abort(err)
	}

	detail, err := uc.jobs.DescribeJob(ctx, ev.JobID)
	if err != nil {
		// Without authoritative job detail the event cannot be enriched.
		return abort(err)
	}

	arn, ok := domain.ResolveDestinationTag(detail.Tags, uc.tagKey)
	if !ok {
		return skip("no destination configured")
	}
	ref, err := domain.ParseEventBusARN(arn)
	if err != nil {
		return skip(err.Error())
	}

	if err := uc.checkDeadline(ctx); err != nil {
		return abort(err)
	}
	// A transport failure here counts as "validation failed", not a crash:
	// a misconfigured or unreachable destination is a tenant problem and
	// must not block sibling events.
	busName, err := uc.bus.Exists(ctx, ref.Name)
	if err != nil {
		return skip(err.Error())
	}

	enriched := domain.EnrichedEvent{
		StatusEvent:   ev,
		JobDetails:    detail,
		EventCategory: domain.Classify(ev.EventType),
		ProcessedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(enriched)
	if err != nil {
		return abort(&domain.PublishError{JobID: ev.JobID, Err: err})
	}

	if err := uc.checkDeadline(ctx); err != nil {
		return abort(err)
	}
	err = uc.bus.Publish(ctx, domain.PublishEntry{
		Source:     uc.source,
		DetailType: uc.detailType,
		BusName:    busName,
		Detail:     payload,
	})
	if err != nil {
		return abort(err)
	}

	res.Outcome = OutcomePublished
	return res
}

// checkDeadline guards each external call: the host hard-terminates the
// invocation at its deadline, so a call started with too little budget left
// would be killed mid-flight.
func (uc *ProcessStatusUseCase) checkDeadline(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < uc.deadlineSlack {
		return ErrDeadlineExhausted
	}
	return nil
}
