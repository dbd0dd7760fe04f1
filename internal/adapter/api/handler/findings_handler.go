package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/user/macie-relay/internal/domain"
)

// FindingsGetter is the slice of the findings use case the handler needs.
type FindingsGetter interface {
	GetFindings(ctx context.Context, req domain.FindingsRequest) (domain.FindingsPage, error)
}

// FindingsHandler serves the paginated findings endpoint.
type FindingsHandler struct {
	useCase FindingsGetter
	logger  *slog.Logger
}

// NewFindingsHandler creates a new FindingsHandler.
func NewFindingsHandler(uc FindingsGetter, logger *slog.Logger) *FindingsHandler {
	return &FindingsHandler{useCase: uc, logger: logger}
}

// ServeHTTP handles GET /findings?jobId=...&maxResults=...&nextToken=...
func (h *FindingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := domain.FindingsRequest{
		JobID:     q.Get("jobId"),
		NextToken: q.Get("nextToken"),
	}
	if raw := q.Get("maxResults"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "validation_error", "maxResults must be an integer")
			return
		}
		req.MaxResults = n
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	page, err := h.useCase.GetFindings(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to get findings", "error", err, "job_id", req.JobID)
		writeDomainError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, page)
}
