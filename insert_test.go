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

package bqjobs

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"
)

// fakeJobService records the last request to the jobs collection and
// responds with a fixed job reference.
type fakeJobService struct {
	lastPath        string
	lastQuery       string
	lastContentType string
	lastBody        []byte
}

func (f *fakeJobService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lastPath = r.URL.Path
	f.lastQuery = r.URL.RawQuery
	f.lastContentType = r.Header.Get("Content-Type")
	body, _ := io.ReadAll(r.Body)
	f.lastBody = body
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, `{"jobReference":{"projectId":"client-project-id","jobId":"job-id","location":"asia-northeast1"}}`)
}

func newFakeClient(t *testing.T) (*Client, *fakeJobService) {
	t.Helper()
	fake := &fakeJobService{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	c, err := NewClient(context.Background(), "client-project-id",
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, fake
}

func TestInsertJobRequestShape(t *testing.T) {
	c, fake := newFakeClient(t)

	q := c.Query("select 17 as foo")
	q.DisableQueryCache = true
	q.Labels = map[string]string{"stage": "dev"}
	job, err := q.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !strings.HasSuffix(fake.lastPath, "/projects/client-project-id/jobs") {
		t.Errorf("request path = %q, want .../projects/client-project-id/jobs", fake.lastPath)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(fake.lastBody, &body); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	config, ok := body["configuration"].(map[string]interface{})
	if !ok {
		t.Fatalf("request body missing configuration: %s", fake.lastBody)
	}
	queryConfig, ok := config["query"].(map[string]interface{})
	if !ok {
		t.Fatalf("configuration missing query: %s", fake.lastBody)
	}
	if got, _ := queryConfig["query"].(string); got != "select 17 as foo" {
		t.Errorf("query = %q, want %q", got, "select 17 as foo")
	}
	if cache, ok := queryConfig["useQueryCache"].(bool); !ok || cache {
		t.Errorf("useQueryCache = %v (present %t), want explicit false", cache, ok)
	}
	if legacy, ok := queryConfig["useLegacySql"].(bool); !ok || legacy {
		t.Errorf("useLegacySql = %v (present %t), want explicit false", legacy, ok)
	}
	labels, ok := config["labels"].(map[string]interface{})
	if !ok || labels["stage"] != "dev" {
		t.Errorf("labels = %v, want stage=dev", config["labels"])
	}

	if got, want := job.ID(), "job-id"; got != want {
		t.Errorf("job.ID() = %q, want %q", got, want)
	}
	if got, want := job.ProjectID(), "client-project-id"; got != want {
		t.Errorf("job.ProjectID() = %q, want %q", got, want)
	}
	if got, want := job.Location(), "asia-northeast1"; got != want {
		t.Errorf("job.Location() = %q, want %q", got, want)
	}
}

func TestInsertJobWithMedia(t *testing.T) {
	c, fake := newFakeClient(t)

	data := "a,b,c\n1,2,3\n"
	rs := NewReaderSource(strings.NewReader(data))
	rs.SourceFormat = CSV
	loader := c.Dataset("dataset-id").Table("table-id").LoaderFrom(rs)
	if _, err := loader.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !strings.Contains(fake.lastPath, "/upload/") {
		t.Errorf("request path = %q, want upload path", fake.lastPath)
	}
	if !strings.Contains(fake.lastQuery, "uploadType=multipart") {
		t.Errorf("request query = %q, want uploadType=multipart", fake.lastQuery)
	}

	mediaType, params, err := mime.ParseMediaType(fake.lastContentType)
	if err != nil {
		t.Fatalf("parsing content type %q: %v", fake.lastContentType, err)
	}
	if mediaType != "multipart/related" {
		t.Fatalf("media type = %q, want multipart/related", mediaType)
	}
	mr := multipart.NewReader(strings.NewReader(string(fake.lastBody)), params["boundary"])

	// First part is the JSON job configuration.
	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("reading config part: %v", err)
	}
	configBytes, err := io.ReadAll(part)
	if err != nil {
		t.Fatalf("reading config part body: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(configBytes, &body); err != nil {
		t.Fatalf("unmarshaling config part: %v", err)
	}
	config, ok := body["configuration"].(map[string]interface{})
	if !ok {
		t.Fatalf("config part missing configuration: %s", configBytes)
	}
	loadConfig, ok := config["load"].(map[string]interface{})
	if !ok {
		t.Fatalf("configuration missing load: %s", configBytes)
	}
	if got, _ := loadConfig["sourceFormat"].(string); got != "CSV" {
		t.Errorf("sourceFormat = %q, want CSV", got)
	}
	dst, ok := loadConfig["destinationTable"].(map[string]interface{})
	if !ok || dst["projectId"] != "client-project-id" || dst["datasetId"] != "dataset-id" || dst["tableId"] != "table-id" {
		t.Errorf("destinationTable = %v, want client-project-id.dataset-id.table-id", loadConfig["destinationTable"])
	}

	// Second part is the raw data.
	part, err = mr.NextPart()
	if err != nil {
		t.Fatalf("reading media part: %v", err)
	}
	media, err := io.ReadAll(part)
	if err != nil {
		t.Fatalf("reading media part body: %v", err)
	}
	if string(media) != data {
		t.Errorf("media part = %q, want %q", media, data)
	}
}

func TestInsertJobResponseMissingReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()
	c, err := NewClient(context.Background(), "client-project-id",
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()

	if _, err := c.Query("select 1").Run(context.Background()); err == nil {
		t.Error("Run with empty response succeeded, want missing reference error")
	}
}
