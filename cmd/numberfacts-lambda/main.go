package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/brendan.keane/numberfacts/internal/config"
	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/brendan.keane/numberfacts/internal/facts"
	"github.com/brendan.keane/numberfacts/internal/forwarder"
	"github.com/brendan.keane/numberfacts/internal/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		errors.PresentError(logger.InitLogger(&logger.Config{Format: "json", Output: os.Stdout}), err)
		os.Exit(1)
	}

	log := logger.InitLogger(&logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		WithCaller: cfg.Logger.WithCaller,
		Output:     os.Stdout,
	})
	if err := cfg.Validate(); err != nil {
		errors.PresentError(log, err)
		os.Exit(1)
	}

	fetcher := facts.NewClientFactory(log).CreateFetcher(cfg)
	handler := forwarder.New(fetcher, log).Handle

	if !cfg.Tracing {
		lambda.Start(handler)
		return
	}

	ctx := context.Background()
	tp, err := xrayconfig.NewTracerProvider(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to create tracer provider, starting untraced")
		lambda.Start(handler)
		return
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("failed to shut down tracer provider")
		}
	}()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(xray.Propagator{})

	lambda.Start(otellambda.InstrumentHandler(handler, xrayconfig.WithRecommendedOptions(tp)...))
}
