package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/user/macie-relay/internal/domain"
)

// MockFindingsGetter is a mock implementation of the FindingsGetter interface.
type MockFindingsGetter struct {
	GetFindingsFunc func(ctx context.Context, req domain.FindingsRequest) (domain.FindingsPage, error)
	LastRequest     domain.FindingsRequest
}

func (m *MockFindingsGetter) GetFindings(ctx context.Context, req domain.FindingsRequest) (domain.FindingsPage, error) {
	m.LastRequest = req
	if m.GetFindingsFunc != nil {
		return m.GetFindingsFunc(ctx, req)
	}
	return domain.FindingsPage{Findings: []domain.Finding{}}, nil
}

func TestFindingsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name            string
		query           string
		mockPage        domain.FindingsPage
		mockErr         error
		expectedStatus  int
		expectedSuccess bool
		expectedType    string
	}{
		{
			name:  "Valid Request",
			query: "jobId=job-1&maxResults=25",
			mockPage: domain.FindingsPage{
				Findings:   []domain.Finding{{ID: "f-1"}},
				NextToken:  "cursor-1",
				TotalCount: 1,
			},
			expectedStatus:  http.StatusOK,
			expectedSuccess: true,
		},
		{
			name:            "Missing Job ID",
			query:           "maxResults=25",
			expectedStatus:  http.StatusBadRequest,
			expectedSuccess: false,
			expectedType:    "validation_error",
		},
		{
			name:            "Non-Numeric MaxResults",
			query:           "jobId=job-1&maxResults=lots",
			expectedStatus:  http.StatusBadRequest,
			expectedSuccess: false,
			expectedType:    "validation_error",
		},
		{
			name:            "MaxResults Over Limit",
			query:           "jobId=job-1&maxResults=75",
			expectedStatus:  http.StatusBadRequest,
			expectedSuccess: false,
			expectedType:    "validation_error",
		},
		{
			name:            "Upstream Failure",
			query:           "jobId=job-1",
			mockErr:         &domain.ExternalServiceError{Service: "macie2", Operation: "ListFindings", Err: errors.New("throttled")},
			expectedStatus:  http.StatusBadGateway,
			expectedSuccess: false,
			expectedType:    "upstream_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := &MockFindingsGetter{
				GetFindingsFunc: func(ctx context.Context, req domain.FindingsRequest) (domain.FindingsPage, error) {
					if tt.mockErr != nil {
						return domain.FindingsPage{}, tt.mockErr
					}
					return tt.mockPage, nil
				},
			}
			handler := NewFindingsHandler(mockUseCase, logger)

			req := httptest.NewRequest(http.MethodGet, "/findings?"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", status, tt.expectedStatus)
			}

			var envelope struct {
				Success bool `json:"success"`
				Data    json.RawMessage
				Error   struct {
					Type string `json:"type"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("response body is not valid JSON: %v", err)
			}
			if envelope.Success != tt.expectedSuccess {
				t.Errorf("expected success=%v, got %v", tt.expectedSuccess, envelope.Success)
			}
			if tt.expectedType != "" && envelope.Error.Type != tt.expectedType {
				t.Errorf("expected error type %q, got %q", tt.expectedType, envelope.Error.Type)
			}
		})
	}

	t.Run("Page Payload", func(t *testing.T) {
		mockUseCase := &MockFindingsGetter{
			GetFindingsFunc: func(ctx context.Context, req domain.FindingsRequest) (domain.FindingsPage, error) {
				return domain.FindingsPage{
					Findings:   []domain.Finding{{ID: "f-1"}, {ID: "f-2"}},
					NextToken:  "cursor-1",
					TotalCount: 2,
				}, nil
			},
		}
		handler := NewFindingsHandler(mockUseCase, logger)

		req := httptest.NewRequest(http.MethodGet, "/findings?jobId=job-1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		var envelope struct {
			Data domain.FindingsPage `json:"data"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("response body is not valid JSON: %v", err)
		}
		if len(envelope.Data.Findings) != 2 || envelope.Data.NextToken != "cursor-1" {
			t.Errorf("unexpected page payload: %+v", envelope.Data)
		}
		if mockUseCase.LastRequest.JobID != "job-1" {
			t.Errorf("expected jobId forwarded, got %q", mockUseCase.LastRequest.JobID)
		}
	})
}
