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

package scanrunner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/pip-sbom/binary/cli"
	"github.com/google/pip-sbom/binary/scanrunner"
)

func createSitePackages(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		distDir := filepath.Join(dir, name+"-1.0.dist-info")
		if err := os.Mkdir(distDir, 0777); err != nil {
			t.Fatalf("error creating directory %v: %v", distDir, err)
		}
		content := "Metadata-Version: 2.1\nName: " + name + "\nVersion: 1.0\n"
		if err := os.WriteFile(filepath.Join(distDir, "METADATA"), []byte(content), 0644); err != nil {
			t.Fatalf("os.WriteFile(%s): %v", distDir, err)
		}
	}
	return dir
}

type spdxDoc struct {
	Packages []struct {
		Name        string `json:"name"`
		VersionInfo string `json:"versionInfo"`
	} `json:"packages"`
}

func TestRunScan(t *testing.T) {
	testCases := []struct {
		desc         string
		setupFunc    func(t *testing.T) string
		exclude      []string
		wantExit     int
		wantPackages []string
	}{
		{
			desc:         "Successful scan",
			setupFunc:    func(t *testing.T) string { return createSitePackages(t, "Example_Pkg", "requests") },
			wantExit:     0,
			wantPackages: []string{"example-pkg", "requests"},
		},
		{
			desc:         "Excluded package",
			setupFunc:    func(t *testing.T) string { return createSitePackages(t, "Example_Pkg", "requests") },
			exclude:      []string{"example.pkg"},
			wantExit:     0,
			wantPackages: []string{"requests"},
		},
		{
			desc:      "Everything excluded",
			setupFunc: func(t *testing.T) string { return createSitePackages(t, "requests") },
			exclude:   []string{"*"},
			wantExit:  1,
		},
		{
			desc:      "No dist-info directories",
			setupFunc: func(t *testing.T) string { return t.TempDir() },
			wantExit:  1,
		},
		{
			desc:      "Nonexistent site-packages",
			setupFunc: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing") },
			wantExit:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			flags := &cli.Flags{SitePackages: tc.setupFunc(t), Exclude: tc.exclude}
			stdout := &bytes.Buffer{}
			if gotExit := scanrunner.RunScan(context.Background(), flags, stdout); gotExit != tc.wantExit {
				t.Fatalf("scanrunner.RunScan(%v) returned unexpected exit code, want %d got %d", flags, tc.wantExit, gotExit)
			}
			if tc.wantExit != 0 {
				if stdout.Len() != 0 {
					t.Errorf("scanrunner.RunScan(%v) wrote %q to stdout, want nothing", flags, stdout.String())
				}
				return
			}

			doc := &spdxDoc{}
			if err := json.Unmarshal(stdout.Bytes(), doc); err != nil {
				t.Fatalf("json.Unmarshal(%s): %v", stdout.String(), err)
			}
			var got []string
			for _, p := range doc.Packages {
				got = append(got, p.Name)
			}
			if diff := cmp.Diff(tc.wantPackages, got); diff != "" {
				t.Errorf("Unexpected packages (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunScanOutputFiles(t *testing.T) {
	dir := createSitePackages(t, "requests")
	out := t.TempDir()
	spdxPath := filepath.Join(out, "result.spdx.json")
	cdxPath := filepath.Join(out, "result.cdx.xml")
	flags := &cli.Flags{
		SitePackages: dir,
		Output:       cli.Array{"spdx23-json=" + spdxPath, "cdx-xml=" + cdxPath},
	}
	stdout := &bytes.Buffer{}
	if gotExit := scanrunner.RunScan(context.Background(), flags, stdout); gotExit != 0 {
		t.Fatalf("scanrunner.RunScan(%v) returned unexpected exit code, want 0 got %d", flags, gotExit)
	}
	if stdout.Len() != 0 {
		t.Errorf("scanrunner.RunScan(%v) wrote %q to stdout, want nothing", flags, stdout.String())
	}
	for _, path := range []string{spdxPath, cdxPath} {
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("os.ReadFile(%v): %v", path, err)
		}
		if !bytes.Contains(content, []byte("requests")) {
			t.Errorf("%s doesn't mention the scanned package: %s", path, content)
		}
	}
}

func TestRunScanOutputFailure(t *testing.T) {
	flags := &cli.Flags{
		SitePackages: createSitePackages(t, "requests"),
		Output:       cli.Array{"cdx-json=" + filepath.Join(t.TempDir(), "missing", "result.cdx.json")},
	}
	if gotExit := scanrunner.RunScan(context.Background(), flags, &bytes.Buffer{}); gotExit != 1 {
		t.Errorf("scanrunner.RunScan(%v) returned unexpected exit code, want 1 got %d", flags, gotExit)
	}
}

func TestRunScanPipFailure(t *testing.T) {
	python, err := exec.LookPath("false")
	if err != nil {
		t.Skipf("exec.LookPath(false): %v", err)
	}
	flags := &cli.Flags{PipReport: true, Python: python, PipArgs: []string{"requests"}}
	stdout := &bytes.Buffer{}
	if gotExit := scanrunner.RunScan(context.Background(), flags, stdout); gotExit != 1 {
		t.Errorf("scanrunner.RunScan(%v) returned unexpected exit code, want 1 got %d", flags, gotExit)
	}
	if stdout.Len() != 0 {
		t.Errorf("scanrunner.RunScan(%v) wrote %q to stdout, want nothing", flags, stdout.String())
	}
}

func TestRunScanVersion(t *testing.T) {
	flags := &cli.Flags{PrintVersion: true, SitePackages: filepath.Join(t.TempDir(), "missing")}
	stdout := &bytes.Buffer{}
	if gotExit := scanrunner.RunScan(context.Background(), flags, stdout); gotExit != 0 {
		t.Errorf("scanrunner.RunScan(%v) returned unexpected exit code, want 0 got %d", flags, gotExit)
	}
	if stdout.Len() != 0 {
		t.Errorf("scanrunner.RunScan(%v) wrote %q to stdout, want nothing", flags, stdout.String())
	}
}
