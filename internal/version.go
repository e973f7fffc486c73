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

// Package internal provides support for the bqjobs client library.
package internal

import (
	"runtime"
	"strings"
	"unicode"
)

// Version is the current tagged release of the library.
const Version = "0.4.1"

// GoVersion returns the Go runtime version in the form reported in API
// client headers. The expected format is the semver-like portion of
// runtime.Version, e.g. "1.23.0".
func GoVersion() string {
	const develPrefix = "devel +"
	s := runtime.Version()
	if strings.HasPrefix(s, develPrefix) {
		s = s[len(develPrefix):]
		if p := strings.IndexFunc(s, unicode.IsSpace); p >= 0 {
			s = s[:p]
		}
		return s
	}
	notSemverRune := func(r rune) bool {
		return !strings.ContainsRune("0123456789.", r)
	}
	if strings.HasPrefix(s, "go1") {
		s = s[2:]
		if p := strings.IndexFunc(s, notSemverRune); p >= 0 {
			s = s[:p]
		}
		return s
	}
	return "UNKNOWN"
}
