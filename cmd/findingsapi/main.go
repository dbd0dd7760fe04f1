package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/user/macie-relay/internal/adapter/api/handler"
	"github.com/user/macie-relay/internal/adapter/api/proxy"
	macierepo "github.com/user/macie-relay/internal/adapter/repository/macie"
	"github.com/user/macie-relay/internal/adapter/metrics"
	"github.com/user/macie-relay/internal/domain"
	"github.com/user/macie-relay/internal/pkg/config"
	"github.com/user/macie-relay/internal/pkg/logger"
	"github.com/user/macie-relay/internal/usecase"
)

const allowedMethods = "GET, OPTIONS"

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
	findings := macierepo.NewFindingRepository(macie2.NewFromConfig(awsCfg), cfg.MacieAPIRPS, log)
	uc := usecase.NewGetFindingsUseCase(findings, m, log)

	lambda.Start(func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		requestID := ""
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			requestID = lc.AwsRequestID
		}

		req := domain.FindingsRequest{
			JobID:     ev.QueryStringParameters["jobId"],
			NextToken: ev.QueryStringParameters["nextToken"],
		}
		if raw := ev.QueryStringParameters["maxResults"]; raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return proxy.Error(http.StatusBadRequest, allowedMethods,
					"validation_error", "maxResults must be an integer", requestID), nil
			}
			req.MaxResults = n
		}
		if err := req.Validate(); err != nil {
			status, errType := handler.StatusForError(err)
			return proxy.Error(status, allowedMethods, errType, err.Error(), requestID), nil
		}

		page, err := uc.GetFindings(ctx, req)
		if err != nil {
			log.Error("failed to get findings", "error", err, "job_id", req.JobID, "request_id", requestID)
			status, errType := handler.StatusForError(err)
			return proxy.Error(status, allowedMethods, errType, err.Error(), requestID), nil
		}

		return proxy.Success(http.StatusOK, allowedMethods, page), nil
	})
}
