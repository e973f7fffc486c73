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

/*
Package bqjobs submits jobs to the BigQuery service.

The package covers the four asynchronous job types — query, load, extract
and copy — and returns an opaque handle for each submitted job. Waiting for
a job to finish and reading its results are the caller's concern; pair this
package with a poller that speaks the jobs.get API.

# Creating a Client

To start working with this package, create a client:

	ctx := context.Background()
	client, err := bqjobs.NewClient(ctx, projectID)
	if err != nil {
	    // TODO: Handle error.
	}

# Queries

To submit a query job, create a Query and call its Run method:

	q := client.Query(`
	    SELECT year, SUM(number) as num
	    FROM bigquery-public-data.usa_names.usa_1910_2013
	    WHERE name = "William"
	    GROUP BY year
	    ORDER BY year
	`)
	job, err := q.Run(ctx)
	if err != nil {
	    // TODO: Handle error.
	}
	fmt.Println(job.ID())

The fields of Query can be used to customize the destination table,
dispositions, priority and billing limits before Run is called.

# Loading, Extracting and Copying

Tables are addressed through their dataset:

	t := client.Dataset("my_dataset").Table("my_table")

A Loader loads data into a table, either from Google Cloud Storage
(GCSReference) or from a local io.Reader (ReaderSource), in which case the
data travels with the job request as multipart upload media:

	rs := bqjobs.NewReaderSource(f)
	rs.SourceFormat = bqjobs.CSV
	loader := t.LoaderFrom(rs)
	job, err := loader.Run(ctx)

An Extractor exports a table to Cloud Storage and a Copier copies one or
more tables into another:

	job, err = t.ExtractorTo(bqjobs.NewGCSReference("gs://bucket/out-*.csv")).Run(ctx)
	job, err = dst.CopierFrom(src1, src2).Run(ctx)

# Errors

Precondition violations (a missing source, an empty query) are reported
before any request is made. Errors returned by the service are wrapped
[google.golang.org/api/googleapi.Error] values.
*/
package bqjobs
