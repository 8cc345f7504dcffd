package telemetry

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentResty attaches tracing hooks to a resty client so every page
// fetch shows up as its own span.
func InstrumentResty(client *resty.Client, tracerName string) {
	tracer := otel.Tracer(tracerName)

	client.OnBeforeRequest(onBeforeRequest(tracer))
	client.OnAfterResponse(onAfterResponse)
	client.OnError(onError)
}

func onBeforeRequest(tracer trace.Tracer) resty.RequestMiddleware {
	return func(cli *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), req.Method)
		req.SetContext(ctx)
		return nil
	}
}

func onAfterResponse(_ *resty.Client, res *resty.Response) error {
	span := trace.SpanFromContext(res.Request.Context())
	defer span.End()

	span.SetName(fmt.Sprintf("http %s", res.Request.Method))
	// res.Request.RawRequest is nil in onBeforeRequest, so request
	// attributes get recorded here
	span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)
	span.SetAttributes(attribute.KeyValue{
		Key:   "response/bytes",
		Value: attribute.IntValue(len(res.Body())),
	})
	return nil
}

func onError(req *resty.Request, err error) {
	span := trace.SpanFromContext(req.Context())
	defer span.End()

	span.SetName(fmt.Sprintf("http %s", req.Method))
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	if req.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	}
}
