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
	"io"
	"time"

	"github.com/datapipe-labs/bqjobs/internal/trace"
	bq "google.golang.org/api/bigquery/v2"
)

// LoadConfig holds the configuration for a load job.
type LoadConfig struct {
	// Src is the source from which data will be loaded.
	Src LoadSource

	// Dst is the table into which the data will be loaded.
	Dst *Table

	// CreateDisposition specifies the circumstances under which the destination table will be created.
	// The default is CreateIfNeeded.
	CreateDisposition TableCreateDisposition

	// WriteDisposition specifies how existing data in the destination table is treated.
	// The default is WriteAppend.
	WriteDisposition TableWriteDisposition

	// The labels associated with this job.
	Labels map[string]string

	// If non-nil, the destination table is partitioned by time.
	TimePartitioning *TimePartitioning

	// Clustering specifies the data clustering configuration for the destination table.
	Clustering *Clustering

	// Allows the schema of the destination table to be updated as a side effect of
	// the load job if a schema is autodetected or supplied in the job configuration.
	// Schema update options are supported in two cases: when writeDisposition is
	// WRITE_APPEND; when writeDisposition is WRITE_TRUNCATE and the destination
	// table is a partition of a table, specified by partition decorators. For
	// normal tables, WRITE_TRUNCATE will always overwrite the schema. One or more
	// of the following values are specified:
	// "ALLOW_FIELD_ADDITION": allow adding a nullable field to the schema.
	// "ALLOW_FIELD_RELAXATION": allow relaxing a required field in the original
	// schema to nullable.
	SchemaUpdateOptions []string

	// Sets a best-effort deadline on a specific job.  If job execution exceeds this
	// timeout, BigQuery may attempt to cancel this work automatically.
	//
	// This deadline cannot be adjusted or removed once the job is created.
	JobTimeout time.Duration
}

func (l *LoadConfig) toBQ() (*bq.JobConfiguration, io.Reader) {
	config := &bq.JobConfiguration{
		Labels: l.Labels,
		Load: &bq.JobConfigurationLoad{
			CreateDisposition:   string(l.CreateDisposition),
			WriteDisposition:    string(l.WriteDisposition),
			DestinationTable:    l.Dst.toBQ(),
			TimePartitioning:    l.TimePartitioning.toBQ(),
			Clustering:          l.Clustering.toBQ(),
			SchemaUpdateOptions: l.SchemaUpdateOptions,
		},
	}
	if l.JobTimeout > 0 {
		config.JobTimeoutMs = l.JobTimeout.Milliseconds()
	}
	media := l.Src.populateLoadConfig(config.Load)
	return config, media
}

// A Loader loads data from Google Cloud Storage into a BigQuery table.
type Loader struct {
	JobIDConfig
	LoadConfig
	c *Client
}

// A LoadSource represents a source of data that can be loaded into
// a BigQuery table.
//
// This package defines two LoadSources: GCSReference, for Google Cloud Storage
// objects, and ReaderSource, for data read from an io.Reader.
type LoadSource interface {
	// populates config, returns media
	populateLoadConfig(*bq.JobConfigurationLoad) io.Reader
}

// LoaderFrom returns a Loader which can be used to load data into a BigQuery table.
// The returned Loader may optionally be further configured before its Run method is called.
// See GCSReference and ReaderSource for additional configuration options that
// affect loading.
func (t *Table) LoaderFrom(src LoadSource) *Loader {
	return &Loader{
		c: t.c,
		LoadConfig: LoadConfig{
			Src: src,
			Dst: t,
		},
	}
}

// Run initiates a load job.
func (l *Loader) Run(ctx context.Context) (j *Job, err error) {
	ctx = trace.StartSpan(ctx, "bqjobs.Loader.Run")
	defer func() { trace.EndSpan(ctx, err) }()

	if l.Src == nil {
		return nil, errors.New("bqjobs: loader source is required")
	}
	if l.Dst == nil {
		return nil, errors.New("bqjobs: loader destination table is required")
	}
	job, media := l.newJob()
	return l.c.insertJob(ctx, job, media)
}

func (l *Loader) newJob() (*bq.Job, io.Reader) {
	config, media := l.LoadConfig.toBQ()
	return &bq.Job{
		JobReference:  l.JobIDConfig.createJobRef(l.c),
		Configuration: config,
	}, media
}
