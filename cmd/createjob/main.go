package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/user/macie-relay/internal/adapter/api/handler"
	"github.com/user/macie-relay/internal/adapter/api/proxy"
	ebrepo "github.com/user/macie-relay/internal/adapter/repository/eventbridge"
	macierepo "github.com/user/macie-relay/internal/adapter/repository/macie"
	"github.com/user/macie-relay/internal/adapter/metrics"
	"github.com/user/macie-relay/internal/domain"
	"github.com/user/macie-relay/internal/pkg/config"
	"github.com/user/macie-relay/internal/pkg/logger"
	"github.com/user/macie-relay/internal/usecase"
)

const allowedMethods = "POST, OPTIONS"

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
	uc := usecase.NewCreateJobUseCase(jobs, bus, m, log, cfg.DestinationTagKey)

	lambda.Start(func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		requestID := ""
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			requestID = lc.AwsRequestID
		}

		var req domain.CreateJobRequest
		if err := json.Unmarshal([]byte(ev.Body), &req); err != nil {
			return proxy.Error(http.StatusBadRequest, allowedMethods,
				"validation_error", "request body is not valid JSON", requestID), nil
		}

		res, err := uc.CreateJob(ctx, req)
		if err != nil {
			log.Error("failed to create classification job", "error", err, "job_name", req.Name, "request_id", requestID)
			status, errType := handler.StatusForError(err)
			return proxy.Error(status, allowedMethods, errType, err.Error(), requestID), nil
		}

		return proxy.Success(http.StatusCreated, allowedMethods, res), nil
	})
}
