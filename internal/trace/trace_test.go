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

package trace

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/datapipe-labs/bqjobs/internal/testutil"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/googleapi"
)

// The package tracer binds to the global provider once, so all tests share a
// single exporter installed before any span is started.
var testExporter *testutil.TraceExporter

func TestMain(m *testing.M) {
	testExporter = testutil.NewTraceExporter()
	code := m.Run()
	testExporter.Shutdown(context.Background())
	os.Exit(code)
}

func TestStartEndSpan(t *testing.T) {
	testExporter.Reset()

	sCtx := StartSpan(context.Background(), "test-span")
	EndSpan(sCtx, nil)

	spans := testExporter.Spans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if got, want := spans[0].Name, "test-span"; got != want {
		t.Errorf("span name = %q, want %q", got, want)
	}
	if got := spans[0].Status.Code; got != codes.Unset {
		t.Errorf("span status = %v, want Unset", got)
	}
}

func TestEndSpanRecordsError(t *testing.T) {
	testExporter.Reset()

	sCtx := StartSpan(context.Background(), "error-span")
	EndSpan(sCtx, errors.New("exceeded limit"))

	spans := testExporter.Spans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if got := spans[0].Status.Code; got != codes.Error {
		t.Errorf("span status = %v, want Error", got)
	}
	if got, want := spans[0].Status.Description, "exceeded limit"; got != want {
		t.Errorf("span status description = %q, want %q", got, want)
	}
	if len(spans[0].Events) == 0 {
		t.Error("span has no events, want recorded error event")
	}
}

func TestToStatus(t *testing.T) {
	for _, test := range []struct {
		in   error
		want string
	}{
		{errors.New("some random error"), "some random error"},
		{&googleapi.Error{Code: http.StatusConflict, Message: "conflict"}, "conflict"},
	} {
		code, msg := toStatus(test.in)
		if code != codes.Error {
			t.Errorf("toStatus(%v) code = %v, want Error", test.in, code)
		}
		if msg != test.want {
			t.Errorf("toStatus(%v) message = %q, want %q", test.in, msg, test.want)
		}
	}
}
