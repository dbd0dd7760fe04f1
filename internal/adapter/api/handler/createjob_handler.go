package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/user/macie-relay/internal/domain"
)

const maxCreateJobBody = 1 << 20 // 1MB

// JobCreator is the slice of the job submission use case the handler needs.
type JobCreator interface {
	CreateJob(ctx context.Context, req domain.CreateJobRequest) (domain.CreateJobResult, error)
}

// CreateJobHandler serves classification job submissions.
type CreateJobHandler struct {
	useCase JobCreator
	logger  *slog.Logger
}

// NewCreateJobHandler creates a new CreateJobHandler.
func NewCreateJobHandler(uc JobCreator, logger *slog.Logger) *CreateJobHandler {
	return &CreateJobHandler{useCase: uc, logger: logger}
}

// ServeHTTP handles POST /jobs with a JSON job definition body.
func (h *CreateJobHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateJobBody)

	var req domain.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_error", "request body is not valid JSON")
		return
	}

	res, err := h.useCase.CreateJob(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to create classification job", "error", err, "job_name", req.Name)
		writeDomainError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, res)
}
