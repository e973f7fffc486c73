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
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/datapipe-labs/bqjobs/internal"
	"github.com/datapipe-labs/bqjobs/internal/detect"
	"github.com/datapipe-labs/bqjobs/internal/trace"
	bq "google.golang.org/api/bigquery/v2"
	"google.golang.org/api/option"
)

const (
	// Scope is the OAuth2 scope used by job submission. For other relevant
	// BigQuery scopes, see:
	// https://developers.google.com/identity/protocols/googlescopes#bigqueryv2
	Scope           = "https://www.googleapis.com/auth/bigquery"
	userAgentPrefix = "bqjobs"
)

var xGoogHeader = fmt.Sprintf("gl-go/%s bqjobs/%s", internal.GoVersion(), internal.Version)

func setClientHeader(headers http.Header) {
	headers.Set("x-goog-api-client", xGoogHeader)
}

// Client submits jobs to the BigQuery service.
type Client struct {
	// Location, if set, will be used as the default location for all
	// subsequent job operations. A location specified directly in one of
	// those operations will override this value.
	Location string

	projectID string
	bqs       *bq.Service
	retry     *retryConfig
}

// DetectProjectID is a sentinel value that instructs NewClient to detect the
// project ID. It is given in place of the projectID argument. NewClient will
// use the project ID from the GOOGLE_CLOUD_PROJECT environment variable or
// the given credentials or the default credentials
// (https://developers.google.com/accounts/docs/application-default-credentials)
// if no credentials were provided. When providing credentials, not all
// options will allow NewClient to extract the project ID. Specifically a JWT
// does not have the project ID encoded.
const DetectProjectID = "*detect-project-id*"

// NewClient constructs a new Client which can submit BigQuery jobs.
// Jobs submitted via the client are billed to the specified GCP project.
//
// If the project ID is set to DetectProjectID, NewClient will attempt to
// detect the project ID from credentials.
func NewClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*Client, error) {
	o := []option.ClientOption{
		option.WithScopes(Scope),
		option.WithUserAgent(fmt.Sprintf("%s/%s", userAgentPrefix, internal.Version)),
	}
	o = append(o, opts...)
	bqs, err := bq.NewService(ctx, o...)
	if err != nil {
		return nil, fmt.Errorf("bqjobs: constructing client: %w", err)
	}

	projectID, err = detect.ProjectID(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		projectID: projectID,
		bqs:       bqs,
		retry:     defaultRetryConfig(),
	}, nil
}

// Project returns the project ID or number for this instance of the client, which may have
// either been explicitly specified or autodetected.
func (c *Client) Project() string {
	return c.projectID
}

// Close closes any resources held by the client.
// Close should be called when the client is no longer needed.
// It need not be called at program exit.
func (c *Client) Close() error {
	return nil
}

// SetRetry configures the client with custom retry behavior as specified by
// the options that are passed to it. All job submissions using this client
// will use the customized retry configuration.
func (c *Client) SetRetry(opts ...RetryOption) {
	retry := c.retry
	if retry == nil {
		retry = defaultRetryConfig()
	}
	for _, opt := range opts {
		opt.apply(retry)
	}
	c.retry = retry
}

// Calls the Jobs.Insert RPC and returns a Job.
func (c *Client) insertJob(ctx context.Context, job *bq.Job, media io.Reader) (*Job, error) {
	call := c.bqs.Jobs.Insert(c.projectID, job).Context(ctx)
	setClientHeader(call.Header())
	if media != nil {
		call.Media(media)
	}
	var res *bq.Job
	var err error
	invoke := func() error {
		sCtx := trace.StartSpan(ctx, "bqjobs.jobs.insert")
		res, err = call.Do()
		trace.EndSpan(sCtx, err)
		return err
	}
	// A job with a client-generated ID can be retried; the presence of the
	// ID makes the insert operation idempotent.
	// We don't retry if there is media, because it is an io.Reader. We'd
	// have to read the contents and keep it in memory, and that could be
	// expensive.
	if job.JobReference != nil && media == nil {
		// BigQuery wants job insertions to retry on structured internal
		// errors, so deviate from the default reasons.
		err = runWithRetryExplicit(ctx, c.retry, invoke, jobRetryReasons)
	} else {
		err = invoke()
	}
	if err != nil {
		return nil, err
	}
	return bqToJob(res, c)
}

func bqToJob(q *bq.Job, c *Client) (*Job, error) {
	if q.JobReference == nil {
		return nil, errors.New("bqjobs: job response missing reference")
	}
	return &Job{
		c:         c,
		projectID: q.JobReference.ProjectId,
		jobID:     q.JobReference.JobId,
		location:  q.JobReference.Location,
	}, nil
}
