package domain

import (
	"regexp"
	"strings"
)

// DefaultDestinationTagKey is the job tag that carries the event bus ARN.
const DefaultDestinationTagKey = "JobStatusEventBusArn"

var eventBusARNPattern = regexp.MustCompile(`^arn:aws:events:[a-z0-9-]+:\d{12}:event-bus/([A-Za-z0-9._-]+)$`)

// DestinationRef identifies the event bus a job's status events route to.
type DestinationRef struct {
	ARN  string
	Name string
}

// ResolveDestinationTag scans a job's tag map case-insensitively for the
// destination tag and returns its value. Absence is not an error here; the
// caller decides the consequence. If two keys differ only by case, the first
// one seen wins; map iteration order makes that pick undefined.
func ResolveDestinationTag(tags map[string]string, key string) (string, bool) {
	target := strings.ToLower(key)
	for k, v := range tags {
		if strings.ToLower(k) == target {
			return v, true
		}
	}
	return "", false
}

// ParseEventBusARN validates the structural form of an event bus ARN and
// extracts the bus name. It does not check that the bus exists.
func ParseEventBusARN(arn string) (DestinationRef, error) {
	m := eventBusARNPattern.FindStringSubmatch(arn)
	if m == nil {
		return DestinationRef{}, &DestinationFormatError{
			ARN:    arn,
			Reason: "expected arn:aws:events:<region>:<account>:event-bus/<name>",
		}
	}
	return DestinationRef{ARN: arn, Name: m[1]}, nil
}
