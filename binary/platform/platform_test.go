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

package platform_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/pip-sbom/binary/platform"
)

func TestSplitPathList(t *testing.T) {
	sep := string(os.PathListSeparator)
	testCases := []struct {
		desc string
		list string
		want []string
	}{
		{desc: "empty", list: ""},
		{desc: "single", list: "/usr/lib/python3/dist-packages\n", want: []string{"/usr/lib/python3/dist-packages"}},
		{
			desc: "multiple",
			list: "/a" + sep + sep + "/b" + sep,
			want: []string{"/a", "/b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := platform.SplitPathList(tc.list)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("SplitPathList(%q) returned unexpected result (-want +got):\n%s", tc.list, diff)
			}
		})
	}
}

func TestDefaultPythonVirtualEnv(t *testing.T) {
	venv := t.TempDir()
	t.Setenv("VIRTUAL_ENV", venv)
	got := platform.DefaultPython()
	if !strings.HasPrefix(got, venv+string(filepath.Separator)) {
		t.Errorf("DefaultPython() = %q, want an interpreter inside %q", got, venv)
	}
}

func TestDefaultPython(t *testing.T) {
	t.Setenv("VIRTUAL_ENV", "")
	if got := platform.DefaultPython(); !strings.HasPrefix(got, "python") {
		t.Errorf("DefaultPython() = %q, want python from PATH", got)
	}
}

func TestSitePackagesFailure(t *testing.T) {
	falseBin, err := exec.LookPath("false")
	if err != nil {
		t.Skipf("false not found: %v", err)
	}
	if _, err := platform.SitePackages(context.Background(), falseBin); err == nil {
		t.Errorf("SitePackages(%q) succeeded, want an error", falseBin)
	}
}
