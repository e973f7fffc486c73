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

// Package testutil provides test helpers for the bqjobs library.
package testutil

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func defaultCmpOpts(opts []cmp.Option) []cmp.Option {
	// Treat nil and empty slices and maps as equal; the generated API structs
	// do not distinguish them on the wire.
	return append([]cmp.Option{cmpopts.EquateEmpty()}, opts...)
}

// Equal reports whether x and y are deeply equal under go-cmp semantics.
func Equal(x, y interface{}, opts ...cmp.Option) bool {
	return cmp.Equal(x, y, defaultCmpOpts(opts)...)
}

// Diff returns a human-readable report of the differences between x and y.
// It returns the empty string if there are no differences.
func Diff(x, y interface{}, opts ...cmp.Option) string {
	return cmp.Diff(x, y, defaultCmpOpts(opts)...)
}
