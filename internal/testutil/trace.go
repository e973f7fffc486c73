// Copyright 2023 The bqjobs Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutil

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TraceExporter is an in-memory OpenTelemetry exporter for tests. It should
// be created with NewTraceExporter, which installs it as the global tracer
// provider.
type TraceExporter struct {
	exporter *tracetest.InMemoryExporter
	tp       *sdktrace.TracerProvider
}

// NewTraceExporter creates a TraceExporter with an underlying
// InMemoryExporter and TracerProvider from the OpenTelemetry SDK.
func NewTraceExporter() *TraceExporter {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	return &TraceExporter{
		exporter: exporter,
		tp:       tp,
	}
}

// Spans returns the spans exported so far.
func (te *TraceExporter) Spans() tracetest.SpanStubs {
	return te.exporter.GetSpans()
}

// Reset discards the spans exported so far. Tests sharing an exporter call
// this before exercising the code under test.
func (te *TraceExporter) Reset() {
	te.exporter.Reset()
}

// Shutdown flushes and stops the underlying tracer provider.
func (te *TraceExporter) Shutdown(ctx context.Context) error {
	return te.tp.Shutdown(ctx)
}
