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
	"testing"

	"github.com/datapipe-labs/bqjobs/internal/testutil"
	bq "google.golang.org/api/bigquery/v2"
)

func TestSchemaConversion(t *testing.T) {
	testCases := []struct {
		schema   Schema
		bqSchema *bq.TableSchema
	}{
		{
			// required
			schema: Schema{
				{Name: "name", Type: StringFieldType, Required: true},
			},
			bqSchema: &bq.TableSchema{
				Fields: []*bq.TableFieldSchema{
					{Name: "name", Type: "STRING", Mode: "REQUIRED"},
				},
			},
		},
		{
			// repeated
			schema: Schema{
				{Name: "names", Type: StringFieldType, Repeated: true},
			},
			bqSchema: &bq.TableSchema{
				Fields: []*bq.TableFieldSchema{
					{Name: "names", Type: "STRING", Mode: "REPEATED"},
				},
			},
		},
		{
			// nested
			schema: Schema{
				{
					Name: "outer",
					Type: RecordFieldType,
					Schema: Schema{
						{Name: "inner", Type: IntegerFieldType},
						{Name: "ts", Type: TimestampFieldType, Description: "when"},
					},
				},
			},
			bqSchema: &bq.TableSchema{
				Fields: []*bq.TableFieldSchema{
					{
						Name: "outer",
						Type: "RECORD",
						Fields: []*bq.TableFieldSchema{
							{Name: "inner", Type: "INTEGER"},
							{Name: "ts", Type: "TIMESTAMP", Description: "when"},
						},
					},
				},
			},
		},
	}

	for i, tc := range testCases {
		got := tc.schema.toBQ()
		if diff := testutil.Diff(got, tc.bqSchema); diff != "" {
			t.Errorf("#%d: toBQ: (got=-, want=+) %s", i, diff)
		}
	}
}
