package domain

import "fmt"

// DecodeError means the CloudWatch Logs payload itself could not be decoded
// (base64, gzip, or JSON structure). Fatal for the whole batch: the container
// format is unparsed, so no partial recovery is possible.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode log batch: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RecordParseError means one log record's message was not a usable status
// event. Recoverable: the record is skipped and the batch continues.
type RecordParseError struct {
	RecordID string
	Err      error
}

func (e *RecordParseError) Error() string {
	return fmt.Sprintf("parse log record %s: %v", e.RecordID, e.Err)
}

func (e *RecordParseError) Unwrap() error { return e.Err }

// JobLookupError means the describe call for a job failed. Fatal for the
// invocation: the event cannot be enriched, and the trigger's redrive should
// reattempt the batch.
type JobLookupError struct {
	JobID string
	Err   error
}

func (e *JobLookupError) Error() string {
	return fmt.Sprintf("describe classification job %s: %v", e.JobID, e.Err)
}

func (e *JobLookupError) Unwrap() error { return e.Err }

// DestinationFormatError means a candidate destination ARN failed structural
// validation. Recoverable at the event level: skip and report.
type DestinationFormatError struct {
	ARN    string
	Reason string
}

func (e *DestinationFormatError) Error() string {
	return fmt.Sprintf("invalid destination ARN %q: %s", e.ARN, e.Reason)
}

// DestinationNotFoundError means the destination passed format validation but
// no event bus with that name exists. Recoverable at the event level.
type DestinationNotFoundError struct {
	Name string
	Err  error
}

func (e *DestinationNotFoundError) Error() string {
	return fmt.Sprintf("event bus %q not found", e.Name)
}

func (e *DestinationNotFoundError) Unwrap() error { return e.Err }

// ExternalServiceError is a transport-level failure of ambiguous origin.
// Treated as fatal unless the call site classifies it as recoverable; the
// destination existence check is the one site that does.
type ExternalServiceError struct {
	Service   string
	Operation string
	Err       error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Operation, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// PublishError means the publish attempt failed, either because the call
// raised or because the call was accepted with a nonzero per-entry failure
// count. Both surface identically to the caller and are fatal.
type PublishError struct {
	JobID         string
	FailedEntries int
	Err           error
}

func (e *PublishError) Error() string {
	if e.FailedEntries > 0 {
		return fmt.Sprintf("publish status event for job %s: %d failed entries: %v", e.JobID, e.FailedEntries, e.Err)
	}
	return fmt.Sprintf("publish status event for job %s: %v", e.JobID, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// ValidationError means caller input was rejected before any external call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}
