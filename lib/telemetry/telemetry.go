package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"marathondata/lib/configutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
)

type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

func (t Telemetry) Shutdown(ctx context.Context) error {
	errlist := []error{}
	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errlist = append(errlist, err)
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}

type OtlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

type OtlpConfig struct {
	Traces  OtlpConnConfig `json:"traces"`
	Metrics OtlpConnConfig `json:"metrics"`
}

type Config struct {
	Otlp OtlpConfig `json:"otlp"`
}

// SetupFromEnv searches up the filesystem from the cwd for a
// telemetry.json5 file and uses it to set up exporters. Crawls run fine
// without one; the caller decides whether a missing config is fatal.
func SetupFromEnv(ctx context.Context, serviceName string) (Telemetry, error) {
	config, err := configutil.ReadRecursively[Config]("telemetry.json5")
	if err != nil {
		return Telemetry{}, err
	}
	return Setup(ctx, serviceName, config)
}

var setupTestEnvironments = map[string]bool{}

// SetupForTesting sets up telemetry in a testing environment at most once
// per service name. When no telemetry.json5 exists the test runs without
// exporters and the returned cleanup is a no-op.
func SetupForTesting(t testing.TB, serviceName string) func() {
	if setupTestEnvironments[serviceName] {
		return func() {}
	}
	setupTestEnvironments[serviceName] = true

	tel, err := SetupFromEnv(context.Background(), serviceName)
	if os.IsNotExist(err) {
		return func() {}
	}
	if err != nil {
		t.Fatal(err)
	}
	return func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
}

func Setup(ctx context.Context, serviceName string, config Config) (Telemetry, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := newResource(serviceName)
	if err != nil {
		return Telemetry{}, err
	}

	tracerProvider, err := newTraceProvider(ctx, r, config)
	if err != nil {
		return Telemetry{}, err
	}
	otel.SetTracerProvider(tracerProvider)

	meterProvider, err := newMetricProvider(ctx, r, config)
	if err != nil {
		return Telemetry{}, err
	}
	otel.SetMeterProvider(meterProvider)

	slog.Info("telemetry initialized", "service", serviceName)
	return Telemetry{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
	}, nil
}
