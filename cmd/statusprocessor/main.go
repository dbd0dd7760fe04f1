package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	"github.com/prometheus/client_golang/prometheus"

	ebrepo "github.com/user/macie-relay/internal/adapter/repository/eventbridge"
	macierepo "github.com/user/macie-relay/internal/adapter/repository/macie"
	"github.com/user/macie-relay/internal/adapter/metrics"
	"github.com/user/macie-relay/internal/pkg/config"
	"github.com/user/macie-relay/internal/pkg/logger"
	"github.com/user/macie-relay/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	m := metrics.NewPipelineMetrics(prometheus.NewRegistry())
	jobs := macierepo.NewJobRepository(macie2.NewFromConfig(awsCfg), log)
	bus := ebrepo.NewBusRepository(eventbridge.NewFromConfig(awsCfg), log)

	uc := usecase.NewProcessStatusUseCase(
		jobs, bus, m, log,
		cfg.DestinationTagKey, cfg.EventSource, cfg.EventDetailType,
		cfg.DeadlineSlack,
	)

	lambda.Start(func(ctx context.Context, ev events.CloudwatchLogsEvent) error {
		report, err := uc.ProcessBatch(ctx, ev.AWSLogs.Data)
		if err != nil {
			// Returning the error makes the log service redeliver the batch,
			// so already-published events may be sent again.
			log.Error("batch processing failed", "error", err, "records", report.Records)
			return err
		}
		log.Info("batch processed",
			"records", report.Records,
			"parse_failures", report.ParseFailures,
			"dropped", report.Dropped,
		)
		return nil
	})
}
