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
	"testing"

	bq "google.golang.org/api/bigquery/v2"
)

func defaultCopyJob() *bq.Job {
	return &bq.Job{
		JobReference: &bq.JobReference{JobId: "RANDOM", ProjectId: "client-project-id"},
		Configuration: &bq.JobConfiguration{
			Copy: &bq.JobConfigurationTableCopy{
				DestinationTable: &bq.TableReference{
					ProjectId: "d-project-id",
					DatasetId: "d-dataset-id",
					TableId:   "d-table-id",
				},
				SourceTables: []*bq.TableReference{
					{
						ProjectId: "s-project-id",
						DatasetId: "s-dataset-id",
						TableId:   "s-table-id",
					},
				},
			},
		},
	}
}

func TestCopy(t *testing.T) {
	defer fixRandomID("RANDOM")()
	c := &Client{projectID: "client-project-id"}

	testCases := []struct {
		dst      *Table
		srcs     []*Table
		jobID    string
		location string
		config   CopyConfig
		want     *bq.Job
	}{
		{
			dst: c.DatasetInProject("d-project-id", "d-dataset-id").Table("d-table-id"),
			srcs: []*Table{
				c.DatasetInProject("s-project-id", "s-dataset-id").Table("s-table-id"),
			},
			want: defaultCopyJob(),
		},
		{
			dst: c.DatasetInProject("d-project-id", "d-dataset-id").Table("d-table-id"),
			srcs: []*Table{
				c.DatasetInProject("s-project-id", "s-dataset-id").Table("s-table-id"),
			},
			config: CopyConfig{
				CreateDisposition: CreateNever,
				WriteDisposition:  WriteTruncate,
				Labels:            map[string]string{"a": "b"},
			},
			want: func() *bq.Job {
				j := defaultCopyJob()
				j.Configuration.Labels = map[string]string{"a": "b"}
				j.Configuration.Copy.CreateDisposition = "CREATE_NEVER"
				j.Configuration.Copy.WriteDisposition = "WRITE_TRUNCATE"
				return j
			}(),
		},
		{
			dst: c.DatasetInProject("d-project-id", "d-dataset-id").Table("d-table-id"),
			srcs: []*Table{
				c.DatasetInProject("s-project-id", "s-dataset-id").Table("s-table-id"),
			},
			config: CopyConfig{
				OperationType: SnapshotOperation,
			},
			want: func() *bq.Job {
				j := defaultCopyJob()
				j.Configuration.Copy.OperationType = "SNAPSHOT"
				return j
			}(),
		},
		{
			dst: c.DatasetInProject("d-project-id", "d-dataset-id").Table("d-table-id"),
			srcs: []*Table{
				c.DatasetInProject("s-project-id", "s-dataset-id").Table("s-table-id"),
			},
			jobID: "job-id",
			want: func() *bq.Job {
				j := defaultCopyJob()
				j.JobReference.JobId = "job-id"
				return j
			}(),
		},
	}

	for i, tc := range testCases {
		copier := tc.dst.CopierFrom(tc.srcs...)
		copier.JobID = tc.jobID
		copier.Location = tc.location
		tc.config.Srcs = tc.srcs
		tc.config.Dst = tc.dst
		copier.CopyConfig = tc.config
		got := copier.newJob()
		checkJob(t, i, got, tc.want)
	}
}

func TestCopyValidation(t *testing.T) {
	c := &Client{projectID: "client-project-id"}
	ctx := context.Background()

	cp := c.Dataset("dataset-id").Table("table-id").CopierFrom()
	if _, err := cp.Run(ctx); err == nil {
		t.Error("copier with no sources: got nil, want error")
	}

	cp = &Copier{c: c, CopyConfig: CopyConfig{Srcs: []*Table{c.Dataset("d").Table("t")}}}
	if _, err := cp.Run(ctx); err == nil {
		t.Error("copier with nil destination: got nil, want error")
	}
}
