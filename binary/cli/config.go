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

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML representation of the CLI flags, e.g.
//
//	site_packages:
//	  - /usr/lib/python3/dist-packages
//	format: cdx-json
//	exclude: [pip, setuptools]
//	spdx:
//	  document_name: my-env
//	  creators: ["Organization:Example Inc."]
type FileConfig struct {
	SitePackages []string   `yaml:"site_packages"`
	PipReport    *bool      `yaml:"pip_report"`
	PipArgs      []string   `yaml:"pip_args"`
	Python       string     `yaml:"python"`
	PipTimeout   string     `yaml:"pip_timeout"`
	Format       string     `yaml:"format"`
	Output       []string   `yaml:"output"`
	Exclude      []string   `yaml:"exclude"`
	SPDX         SPDXConfig `yaml:"spdx"`
	Verbose      *bool      `yaml:"verbose"`
}

// SPDXConfig holds the SPDX document settings of a FileConfig.
type SPDXConfig struct {
	DocumentName      string   `yaml:"document_name"`
	DocumentNamespace string   `yaml:"document_namespace"`
	Creators          []string `yaml:"creators"`
}

// LoadConfigFile reads a YAML config file. Unknown keys are an error.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &FileConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// MergeConfig copies the config file settings into flags, except for the flags
// in setFlags which were explicitly set on the command line.
func MergeConfig(flags *Flags, cfg *FileConfig, setFlags map[string]bool) error {
	if cfg == nil {
		return nil
	}
	if !setFlags[FlagSitePackages] && len(cfg.SitePackages) > 0 {
		flags.SitePackages = strings.Join(cfg.SitePackages, string(os.PathListSeparator))
	}
	if !setFlags[FlagPipReport] && cfg.PipReport != nil {
		flags.PipReport = *cfg.PipReport
	}
	if len(flags.PipArgs) == 0 && len(cfg.PipArgs) > 0 {
		flags.PipArgs = cfg.PipArgs
	}
	if !setFlags[FlagPython] && cfg.Python != "" {
		flags.Python = cfg.Python
	}
	if !setFlags[FlagPipTimeout] && cfg.PipTimeout != "" {
		d, err := time.ParseDuration(cfg.PipTimeout)
		if err != nil {
			return fmt.Errorf("pip_timeout: %w", err)
		}
		flags.PipTimeout = d
	}
	if !setFlags[FlagFormat] && cfg.Format != "" {
		flags.Format = cfg.Format
	}
	if !setFlags[FlagOutput] && len(cfg.Output) > 0 {
		flags.Output = Array(cfg.Output)
	}
	if !setFlags[FlagExclude] && len(cfg.Exclude) > 0 {
		flags.Exclude = cfg.Exclude
	}
	if !setFlags[FlagSPDXDocumentName] && cfg.SPDX.DocumentName != "" {
		flags.SPDXDocumentName = cfg.SPDX.DocumentName
	}
	if !setFlags[FlagSPDXDocumentNamespace] && cfg.SPDX.DocumentNamespace != "" {
		flags.SPDXDocumentNamespace = cfg.SPDX.DocumentNamespace
	}
	if !setFlags[FlagSPDXCreators] && len(cfg.SPDX.Creators) > 0 {
		flags.SPDXCreators = strings.Join(cfg.SPDX.Creators, ",")
	}
	if !setFlags[FlagVerbose] && cfg.Verbose != nil {
		flags.Verbose = *cfg.Verbose
	}
	return nil
}
