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

package log_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/pip-sbom/log"
)

func TestDefaultLogger(t *testing.T) {
	testCases := []struct {
		desc    string
		verbose bool
		want    string
	}{
		{
			desc:    "quiet",
			verbose: false,
			want:    "ERROR: error 1\nWARNING: warning 2\ninfo 3\nERROR: error\nWARNING: warning\ninfo\n",
		},
		{
			desc:    "verbose",
			verbose: true,
			want:    "ERROR: error 1\nWARNING: warning 2\ninfo 3\nDEBUG: debug 4\nERROR: error\nWARNING: warning\ninfo\nDEBUG: debug\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var buf bytes.Buffer
			l := &log.DefaultLogger{Verbose: tc.verbose, Output: &buf}
			l.Errorf("error %d", 1)
			l.Warnf("warning %d", 2)
			l.Infof("info %d", 3)
			l.Debugf("debug %d", 4)
			l.Error("error")
			l.Warn("warning")
			l.Info("info")
			l.Debug("debug")

			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("DefaultLogger output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.SetLogger(&log.DefaultLogger{Output: &buf})
	defer log.SetLogger(&log.DefaultLogger{})

	log.Warnf("No package name found in METADATA for %s", "foo.dist-info")

	want := "WARNING: No package name found in METADATA for foo.dist-info\n"
	if got := buf.String(); got != want {
		t.Errorf("log.Warnf() wrote %q, want %q", got, want)
	}
}
