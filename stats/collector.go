// Copyright 2026 Google LLC
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

// Package stats contains interfaces and utilities relating to the collection of
// statistics from pip-sbom runs.
package stats

import (
	"fmt"
	"sort"
	"strings"
)

// Collector is a component which is notified when certain events occur. It can be implemented with
// different metric backends to enable monitoring of pip-sbom.
type Collector interface {
	// AfterRootScanned is called once per site-packages root. err is set if
	// the root couldn't be listed.
	AfterRootScanned(path string, err error)

	// AfterDistInfoScanned is called for every .dist-info directory found in a
	// root, whether or not a distribution could be read from it.
	AfterDistInfoScanned(distInfoStats *DistInfoStats)

	// AfterResultsExported is called after results have been exported. destination should merely be
	// a category of where the result was written to (e.g. 'file', 'stdout'), not the precise location.
	AfterResultsExported(destination string, bytes int, err error)
}

// NoopCollector implements Collector by doing nothing.
type NoopCollector struct{}

// AfterRootScanned implements Collector by doing nothing.
func (c NoopCollector) AfterRootScanned(path string, err error) {}

// AfterDistInfoScanned implements Collector by doing nothing.
func (c NoopCollector) AfterDistInfoScanned(distInfoStats *DistInfoStats) {}

// AfterResultsExported implements Collector by doing nothing.
func (c NoopCollector) AfterResultsExported(destination string, bytes int, err error) {}

// Summary is a Collector that keeps counters for every event it sees.
// The zero value is ready to use.
type Summary struct {
	Roots           int
	UnreadableRoots int
	DistInfos       map[DistInfoResult]int
	ExportedBytes   int
	FailedExports   int
}

// AfterRootScanned counts the scanned roots.
func (s *Summary) AfterRootScanned(path string, err error) {
	s.Roots++
	if err != nil {
		s.UnreadableRoots++
	}
}

// AfterDistInfoScanned counts .dist-info directories by result.
func (s *Summary) AfterDistInfoScanned(distInfoStats *DistInfoStats) {
	if s.DistInfos == nil {
		s.DistInfos = make(map[DistInfoResult]int)
	}
	s.DistInfos[distInfoStats.Result]++
}

// AfterResultsExported counts the written bytes and failed exports.
func (s *Summary) AfterResultsExported(destination string, bytes int, err error) {
	if err != nil {
		s.FailedExports++
		return
	}
	s.ExportedBytes += bytes
}

func (s *Summary) String() string {
	results := make([]string, 0, len(s.DistInfos))
	for r, n := range s.DistInfos {
		results = append(results, fmt.Sprintf("%s=%d", r, n))
	}
	sort.Strings(results)
	return fmt.Sprintf("roots=%d (unreadable=%d) dist-info=[%s] exported_bytes=%d failed_exports=%d",
		s.Roots, s.UnreadableRoots, strings.Join(results, " "), s.ExportedBytes, s.FailedExports)
}
