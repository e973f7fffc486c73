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

// Package trace provides OpenTelemetry span helpers for outbound API calls.
package trace

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
)

var tracer trace.Tracer

func init() {
	tracer = otel.Tracer("github.com/datapipe-labs/bqjobs")
}

// StartSpan adds a span with the given name to the trace in ctx.
func StartSpan(ctx context.Context, name string) context.Context {
	ctx, _ = tracer.Start(ctx, name)
	return ctx
}

// EndSpan ends the span in ctx, recording err if non-nil.
func EndSpan(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(toStatus(err))
	}
	span.End()
}

// toStatus converts an error into an OpenTelemetry status, preferring the
// structured message for service errors.
func toStatus(err error) (codes.Code, string) {
	var aerr *googleapi.Error
	if errors.As(err, &aerr) {
		return codes.Error, aerr.Message
	}
	return codes.Error, err.Error()
}
