//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package trace provides distributed tracing for the conversation engine.
// It integrates with OpenTelemetry; the tracer is a noop until Start is called.
package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// ProtocolGRPC exports spans over OTLP/gRPC.
	ProtocolGRPC = "grpc"
	// ProtocolHTTP exports spans over OTLP/HTTP.
	ProtocolHTTP = "http"

	serviceName = "meetingmuse"
)

// TracerProvider is the global tracer provider for telemetry.
var TracerProvider trace.TracerProvider = noop.NewTracerProvider()

// Tracer is the global tracer instance for telemetry.
var Tracer trace.Tracer = TracerProvider.Tracer("")

type options struct {
	endpoint string
	protocol string
}

// Option configures trace collection.
type Option func(*options)

// WithEndpoint sets the OTLP collector endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithProtocol selects the OTLP transport protocol ("grpc" or "http").
func WithProtocol(protocol string) Option {
	return func(o *options) {
		o.protocol = protocol
	}
}

// Start enables span export and replaces the global noop tracer.
// The returned clean function flushes and shuts down the exporter.
func Start(ctx context.Context, opts ...Option) (clean func() error, err error) {
	o := &options{protocol: ProtocolGRPC}
	for _, opt := range opts {
		opt(o)
	}

	var client otlptrace.Client
	switch o.protocol {
	case ProtocolHTTP:
		client = otlptracehttp.NewClient(otlptracehttp.WithEndpoint(o.endpoint), otlptracehttp.WithInsecure())
	case ProtocolGRPC:
		client = otlptracegrpc.NewClient(otlptracegrpc.WithEndpoint(o.endpoint), otlptracegrpc.WithInsecure())
	default:
		return nil, fmt.Errorf("unsupported trace protocol: %s", o.protocol)
	}

	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(serviceName),
	))
	if err != nil {
		return nil, fmt.Errorf("create trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	TracerProvider = provider
	Tracer = provider.Tracer(serviceName)

	return func() error {
		return provider.Shutdown(context.Background())
	}, nil
}
