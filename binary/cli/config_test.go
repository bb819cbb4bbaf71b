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

package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/pip-sbom/binary/cli"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pip-sbom.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("os.WriteFile(%s): %v", path, err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
site_packages:
  - /opt/venv/lib/python3.12/site-packages
  - /usr/lib/python3/dist-packages
python: /opt/venv/bin/python
pip_timeout: 90s
format: cdx-json
output:
  - spdx23-json=out.spdx.json
exclude: [pip, setuptools]
spdx:
  document_name: my-env
  creators: ["Organization:Example Inc."]
verbose: true
`)
	got, err := cli.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile(%s): %v", path, err)
	}
	verbose := true
	want := &cli.FileConfig{
		SitePackages: []string{"/opt/venv/lib/python3.12/site-packages", "/usr/lib/python3/dist-packages"},
		Python:       "/opt/venv/bin/python",
		PipTimeout:   "90s",
		Format:       "cdx-json",
		Output:       []string{"spdx23-json=out.spdx.json"},
		Exclude:      []string{"pip", "setuptools"},
		SPDX: cli.SPDXConfig{
			DocumentName: "my-env",
			Creators:     []string{"Organization:Example Inc."},
		},
		Verbose: &verbose,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfigFile(%s) got diff (-want +got):\n%s", path, diff)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		content string
	}{
		{desc: "Unknown key", content: "formats: cdx-json\n"},
		{desc: "Wrong type", content: "exclude: {pip: true}\n"},
		{desc: "Invalid YAML", content: "format: [cdx-json\n"},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			if _, err := cli.LoadConfigFile(path); err == nil {
				t.Errorf("LoadConfigFile(%q) succeeded, want an error", tc.content)
			}
		})
	}

	if _, err := cli.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfigFile(missing.yaml) succeeded, want an error")
	}
}

func TestLoadConfigFileEmpty(t *testing.T) {
	path := writeConfig(t, "")
	got, err := cli.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile(%s): %v", path, err)
	}
	if diff := cmp.Diff(&cli.FileConfig{}, got); diff != "" {
		t.Errorf("LoadConfigFile(%s) got diff (-want +got):\n%s", path, diff)
	}
}

func TestMergeConfig(t *testing.T) {
	pipReport := true
	cfg := &cli.FileConfig{
		PipReport:  &pipReport,
		PipArgs:    []string{"-r", "requirements.txt"},
		Python:     "/opt/venv/bin/python",
		PipTimeout: "90s",
		Format:     "cdx-json",
		Output:     []string{"spdx23-json=out.spdx.json"},
		Exclude:    []string{"pip"},
		SPDX: cli.SPDXConfig{
			DocumentName:      "my-env",
			DocumentNamespace: "https://example.com/my-env",
			Creators:          []string{"Organization:Example Inc.", "Person:Jane"},
		},
	}

	for _, tc := range []struct {
		desc     string
		flags    *cli.Flags
		setFlags map[string]bool
		want     *cli.Flags
	}{
		{
			desc:  "Config fills unset flags",
			flags: &cli.Flags{},
			want: &cli.Flags{
				PipReport:             true,
				PipArgs:               []string{"-r", "requirements.txt"},
				Python:                "/opt/venv/bin/python",
				PipTimeout:            90 * time.Second,
				Format:                "cdx-json",
				Output:                cli.Array{"spdx23-json=out.spdx.json"},
				Exclude:               []string{"pip"},
				SPDXDocumentName:      "my-env",
				SPDXDocumentNamespace: "https://example.com/my-env",
				SPDXCreators:          "Organization:Example Inc.,Person:Jane",
			},
		},
		{
			desc: "Explicit flags win",
			flags: &cli.Flags{
				PipArgs:    []string{"requests"},
				Format:     "spdx23-yaml",
				PipTimeout: time.Minute,
				Python:     "python3",
			},
			setFlags: map[string]bool{
				cli.FlagFormat:     true,
				cli.FlagPipTimeout: true,
				cli.FlagPython:     true,
				cli.FlagPipReport:  true,
			},
			want: &cli.Flags{
				PipReport:             false,
				PipArgs:               []string{"requests"},
				Python:                "python3",
				PipTimeout:            time.Minute,
				Format:                "spdx23-yaml",
				Output:                cli.Array{"spdx23-json=out.spdx.json"},
				Exclude:               []string{"pip"},
				SPDXDocumentName:      "my-env",
				SPDXDocumentNamespace: "https://example.com/my-env",
				SPDXCreators:          "Organization:Example Inc.,Person:Jane",
			},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			if err := cli.MergeConfig(tc.flags, cfg, tc.setFlags); err != nil {
				t.Fatalf("MergeConfig(): %v", err)
			}
			if diff := cmp.Diff(tc.want, tc.flags); diff != "" {
				t.Errorf("MergeConfig() got diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeConfigSitePackages(t *testing.T) {
	cfg := &cli.FileConfig{SitePackages: []string{"/a", "/b"}}
	flags := &cli.Flags{}
	if err := cli.MergeConfig(flags, cfg, nil); err != nil {
		t.Fatalf("MergeConfig(): %v", err)
	}
	if want := strings.Join([]string{"/a", "/b"}, string(os.PathListSeparator)); flags.SitePackages != want {
		t.Errorf("MergeConfig() SitePackages = %q, want %q", flags.SitePackages, want)
	}
}

func TestMergeConfigInvalidTimeout(t *testing.T) {
	if err := cli.MergeConfig(&cli.Flags{}, &cli.FileConfig{PipTimeout: "soon"}, nil); err == nil {
		t.Error("MergeConfig() with an invalid pip_timeout succeeded, want an error")
	}
}
