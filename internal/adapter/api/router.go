package api

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/user/macie-relay/internal/adapter/api/handler"
	"github.com/user/macie-relay/internal/adapter/api/middleware"
	"github.com/user/macie-relay/internal/usecase"
)

// NewRouter creates and configures the main HTTP router.
func NewRouter(
	logger *slog.Logger,
	registry *prometheus.Registry,
	findingsUseCase *usecase.GetFindingsUseCase,
	createJobUseCase *usecase.CreateJobUseCase,
) http.Handler {
	mux := http.NewServeMux()

	findingsHandler := handler.NewFindingsHandler(findingsUseCase, logger)
	createJobHandler := handler.NewCreateJobHandler(createJobUseCase, logger)

	logging := middleware.Logging(logger)

	mux.Handle("GET /findings", logging(findingsHandler))
	mux.Handle("POST /jobs", logging(createJobHandler))

	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}
