package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event types emitted by Macie into the admin account's log group.
const (
	EventTypeScheduledRunCompleted = "SCHEDULED_RUN_COMPLETED"
	EventTypeJobCompleted          = "JOB_COMPLETED"
	EventTypeNoBucketsMatched      = "NO_BUCKETS_MATCHED_THE_CRITERIA"
	EventTypeJobCancelled          = "JOB_CANCELLED"
)

// EventCategory is the derived classification of a relevant status event.
type EventCategory string

const (
	CategoryCompletion EventCategory = "completion"
	CategoryError      EventCategory = "error"
)

// LogRecord is a single entry inside a CloudWatch Logs subscription batch.
type LogRecord struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// LogBatch is the decoded payload of a CloudWatch Logs subscription delivery.
type LogBatch struct {
	MessageType         string      `json:"messageType"`
	Owner               string      `json:"owner"`
	LogGroup            string      `json:"logGroup"`
	LogStream           string      `json:"logStream"`
	SubscriptionFilters []string    `json:"subscriptionFilters"`
	Records             []LogRecord `json:"logEvents"`
}

// StatusEvent is a Macie job status event parsed from a log record message.
// The schema is open: Macie adds fields per event type, so anything beyond the
// typed core is kept in Extra and flattened back on marshal.
type StatusEvent struct {
	EventType      string `json:"eventType"`
	JobID          string `json:"jobId"`
	AdminAccountID string `json:"adminAccountId"`
	// "occuredAt" is the spelling Macie uses on the wire.
	OccurredAt       string         `json:"occuredAt"`
	JobName          string         `json:"jobName"`
	Description      string         `json:"description,omitempty"`
	AffectedAccount  string         `json:"affectedAccount,omitempty"`
	AffectedResource any            `json:"affectedResource,omitempty"`
	Operation        string         `json:"operation,omitempty"`
	RunDate          string         `json:"runDate,omitempty"`
	Extra            map[string]any `json:"-"`
}

var knownEventKeys = []string{
	"eventType", "jobId", "adminAccountId", "occuredAt", "jobName",
	"description", "affectedAccount", "affectedResource", "operation", "runDate",
}

// UnmarshalJSON decodes the typed core and collects every unknown key into Extra.
func (e *StatusEvent) UnmarshalJSON(data []byte) error {
	type alias StatusEvent
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range knownEventKeys {
		delete(all, k)
	}
	if len(all) == 0 {
		all = nil
	}

	*e = StatusEvent(a)
	e.Extra = all
	return nil
}

// MarshalJSON flattens Extra back alongside the typed core.
func (e StatusEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.toMap())
}

func (e StatusEvent) toMap() map[string]any {
	m := make(map[string]any, len(e.Extra)+10)
	for k, v := range e.Extra {
		m[k] = v
	}
	m["eventType"] = e.EventType
	m["jobId"] = e.JobID
	m["adminAccountId"] = e.AdminAccountID
	m["occuredAt"] = e.OccurredAt
	m["jobName"] = e.JobName
	if e.Description != "" {
		m["description"] = e.Description
	}
	if e.AffectedAccount != "" {
		m["affectedAccount"] = e.AffectedAccount
	}
	if e.AffectedResource != nil {
		m["affectedResource"] = e.AffectedResource
	}
	if e.Operation != "" {
		m["operation"] = e.Operation
	}
	if e.RunDate != "" {
		m["runDate"] = e.RunDate
	}
	return m
}

// ParseStatusEvent parses a log record message into a StatusEvent. A message
// that is not JSON, or that lacks eventType or jobId, yields a
// *RecordParseError; callers skip the record and keep processing the batch.
func ParseStatusEvent(recordID, message string) (StatusEvent, error) {
	var ev StatusEvent
	if err := json.Unmarshal([]byte(message), &ev); err != nil {
		return StatusEvent{}, &RecordParseError{RecordID: recordID, Err: err}
	}
	if ev.EventType == "" {
		return StatusEvent{}, &RecordParseError{RecordID: recordID, Err: fmt.Errorf("missing required field %q", "eventType")}
	}
	if ev.JobID == "" {
		return StatusEvent{}, &RecordParseError{RecordID: recordID, Err: fmt.Errorf("missing required field %q", "jobId")}
	}
	return ev, nil
}

var completionEventTypes = map[string]struct{}{
	EventTypeScheduledRunCompleted: {},
	EventTypeJobCompleted:          {},
}

var errorEventTypes = map[string]struct{}{
	EventTypeNoBucketsMatched: {},
	EventTypeJobCancelled:     {},
}

// IsRelevant reports whether an event type takes part in the status pipeline.
// Anything else in the log group is expected noise and is dropped silently.
func IsRelevant(eventType string) bool {
	if _, ok := completionEventTypes[eventType]; ok {
		return true
	}
	if _, ok := errorEventTypes[eventType]; ok {
		return true
	}
	return strings.HasPrefix(eventType, "ACCOUNT_") || strings.HasPrefix(eventType, "BUCKET_")
}

// Classify maps a relevant event type to its category. Prefix-matched events
// (ACCOUNT_*, BUCKET_*) fall through to the error category.
func Classify(eventType string) EventCategory {
	if _, ok := completionEventTypes[eventType]; ok {
		return CategoryCompletion
	}
	return CategoryError
}

// EnrichedEvent is a relevant status event merged with authoritative job
// detail, ready for publishing. Immutable once built.
type EnrichedEvent struct {
	StatusEvent
	JobDetails    JobDetail
	EventCategory EventCategory
	ProcessedAt   string
}

// MarshalJSON keeps the open-schema flattening of the embedded StatusEvent and
// appends the enrichment fields at the top level.
func (e EnrichedEvent) MarshalJSON() ([]byte, error) {
	m := e.StatusEvent.toMap()
	m["jobDetails"] = e.JobDetails
	m["eventCategory"] = e.EventCategory
	m["processedAt"] = e.ProcessedAt
	return json.Marshal(m)
}
