package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStatusEvent(t *testing.T) {
	t.Run("Valid Event with Extra Fields", func(t *testing.T) {
		msg := `{"eventType":"JOB_COMPLETED","jobId":"job-1","adminAccountId":"123456789012","occuredAt":"2024-01-15T10:00:00Z","jobName":"pii-scan","scheduleRunId":"run-7","severity":{"score":3}}`

		ev, err := ParseStatusEvent("rec-1", msg)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ev.EventType != EventTypeJobCompleted {
			t.Errorf("expected JOB_COMPLETED, got %q", ev.EventType)
		}
		if ev.JobID != "job-1" {
			t.Errorf("expected job-1, got %q", ev.JobID)
		}
		if ev.OccurredAt != "2024-01-15T10:00:00Z" {
			t.Errorf("expected occuredAt preserved, got %q", ev.OccurredAt)
		}
		if ev.Extra["scheduleRunId"] != "run-7" {
			t.Errorf("expected unknown key kept in Extra, got %v", ev.Extra)
		}
		if _, ok := ev.Extra["severity"]; !ok {
			t.Error("expected nested unknown key kept in Extra")
		}
		if _, ok := ev.Extra["eventType"]; ok {
			t.Error("typed keys must not leak into Extra")
		}
	})

	t.Run("Not JSON", func(t *testing.T) {
		_, err := ParseStatusEvent("rec-1", "plain text line")
		var parseErr *RecordParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected RecordParseError, got %v", err)
		}
		if parseErr.RecordID != "rec-1" {
			t.Errorf("expected record id carried, got %q", parseErr.RecordID)
		}
	})

	t.Run("Missing Required Fields", func(t *testing.T) {
		cases := []struct {
			name string
			msg  string
		}{
			{"no eventType", `{"jobId":"job-1"}`},
			{"no jobId", `{"eventType":"JOB_COMPLETED"}`},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ParseStatusEvent("rec-1", tc.msg)
				var parseErr *RecordParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("expected RecordParseError, got %v", err)
				}
			})
		}
	})
}

func TestStatusEvent_MarshalJSON(t *testing.T) {
	original := `{"eventType":"JOB_CANCELLED","jobId":"job-1","adminAccountId":"123456789012","occuredAt":"2024-01-15T10:00:00Z","jobName":"pii-scan","scheduleRunId":"run-7"}`

	ev, err := ParseStatusEvent("rec-1", original)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("round-tripped payload is not valid JSON: %v", err)
	}
	if m["occuredAt"] != "2024-01-15T10:00:00Z" {
		t.Errorf("expected wire spelling occuredAt, got %v", m)
	}
	if m["scheduleRunId"] != "run-7" {
		t.Errorf("expected extra field flattened to top level, got %v", m)
	}
	if _, ok := m["Extra"]; ok {
		t.Error("Extra must not appear as a literal key")
	}
}

func TestIsRelevant(t *testing.T) {
	cases := []struct {
		eventType string
		want      bool
	}{
		{EventTypeScheduledRunCompleted, true},
		{EventTypeJobCompleted, true},
		{EventTypeNoBucketsMatched, true},
		{EventTypeJobCancelled, true},
		{"ACCOUNT_ACCESS_DENIED", true},
		{"BUCKET_ACCESS_DENIED", true},
		{"JOB_CREATED", false},
		{"", false},
		{"account_access_denied", false},
	}
	for _, tc := range cases {
		if got := IsRelevant(tc.eventType); got != tc.want {
			t.Errorf("IsRelevant(%q) = %v, want %v", tc.eventType, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		eventType string
		want      EventCategory
	}{
		{EventTypeScheduledRunCompleted, CategoryCompletion},
		{EventTypeJobCompleted, CategoryCompletion},
		{EventTypeNoBucketsMatched, CategoryError},
		{EventTypeJobCancelled, CategoryError},
		{"ACCOUNT_ACCESS_DENIED", CategoryError},
		{"BUCKET_ACCESS_DENIED", CategoryError},
	}
	for _, tc := range cases {
		if got := Classify(tc.eventType); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.eventType, got, tc.want)
		}
	}
}

func TestEnrichedEvent_MarshalJSON(t *testing.T) {
	ev, err := ParseStatusEvent("rec-1", `{"eventType":"JOB_COMPLETED","jobId":"job-1","adminAccountId":"123456789012","occuredAt":"2024-01-15T10:00:00Z","jobName":"pii-scan","scheduleRunId":"run-7"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	enriched := EnrichedEvent{
		StatusEvent:   ev,
		JobDetails:    JobDetail{Name: "pii-scan", Tags: map[string]string{"team": "security"}},
		EventCategory: CategoryCompletion,
		ProcessedAt:   "2024-01-15T10:00:05Z",
	}
	out, err := json.Marshal(enriched)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["eventCategory"] != string(CategoryCompletion) {
		t.Errorf("expected eventCategory, got %v", m["eventCategory"])
	}
	if m["processedAt"] != "2024-01-15T10:00:05Z" {
		t.Errorf("expected processedAt, got %v", m["processedAt"])
	}
	if m["scheduleRunId"] != "run-7" {
		t.Errorf("expected source extras flattened, got %v", m)
	}
	details, ok := m["jobDetails"].(map[string]any)
	if !ok {
		t.Fatalf("expected jobDetails object, got %v", m["jobDetails"])
	}
	if details["name"] != "pii-scan" {
		t.Errorf("expected job detail name, got %v", details["name"])
	}
}
