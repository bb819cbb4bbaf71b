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

// Package pipreport collects the distributions that pip would install by
// running a dry-run installation and reading its installation report.
// https://pip.pypa.io/en/stable/reference/installation-report/
package pipreport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/pip-sbom/distribution"
	"github.com/google/pip-sbom/log"
	"github.com/google/pip-sbom/source/internal/directurl"
)

// Name is the unique name of this source.
const Name = "pipreport"

var (
	// ErrInstallerFailed is returned when pip couldn't be run or exited with a
	// non-zero status.
	ErrInstallerFailed = errors.New("pip install --dry-run failed")
	// ErrMalformedReport is returned when pip's output isn't a usable
	// installation report.
	ErrMalformedReport = errors.New("malformed pip installation report")
)

// pipArgs come before the user's arguments. --report - writes the report to
// stdout, --quiet keeps pip's own progress output out of it.
var pipArgs = []string{
	"-m", "pip", "install",
	"--quiet",
	"--disable-pip-version-check",
	"--dry-run",
	"--ignore-installed",
	"--report", "-",
}

// Runner runs a subprocess to completion.
type Runner interface {
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// Config is the configuration for the pipreport source.
type Config struct {
	// Python is the interpreter used to run pip.
	Python string
	// Args are forwarded verbatim to pip install, e.g. requirement specifiers
	// or "-r requirements.txt".
	Args []string
	// Timeout bounds the pip invocation. Zero means no timeout.
	Timeout time.Duration
	// Runner defaults to running the command with os/exec.
	Runner Runner
	// Stderr receives pip's diagnostic output if pip fails. Defaults to
	// os.Stderr.
	Stderr io.Writer
}

// Source runs pip to produce an installation report.
type Source struct {
	cfg Config
}

// New returns a pipreport source for the given configuration.
func New(cfg Config) *Source {
	if cfg.Runner == nil {
		cfg.Runner = ExecRunner{}
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	return &Source{cfg: cfg}
}

// Name of the source.
func (s *Source) Name() string { return Name }

// Command returns the arguments pip is invoked with, after the interpreter.
func (s *Source) Command() []string {
	args := make([]string, 0, len(pipArgs)+len(s.cfg.Args))
	args = append(args, pipArgs...)
	return append(args, s.cfg.Args...)
}

// Scan runs pip and converts every entry of its installation report.
func (s *Source) Scan(ctx context.Context) ([]*distribution.Distribution, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	stdout := bytes.Buffer{}
	stderr := bytes.Buffer{}
	log.Debugf("Running %s %v", s.cfg.Python, s.Command())
	if err := s.cfg.Runner.Run(ctx, s.cfg.Python, s.Command(), &stdout, &stderr); err != nil {
		if _, cerr := io.Copy(s.cfg.Stderr, &stderr); cerr != nil {
			log.Warnf("Unable to forward pip's output: %v", cerr)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w: %w", ErrInstallerFailed, ctxErr, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInstallerFailed, err)
	}
	if stderr.Len() > 0 {
		log.Debugf("pip stderr:\n%s", stderr.String())
	}

	return Parse(stdout.Bytes())
}

type report struct {
	Version string        `json:"version"`
	Install []installItem `json:"install"`
}

type installItem struct {
	Metadata     *metadata            `json:"metadata"`
	DownloadInfo *directurl.DirectURL `json:"download_info"`
	Requested    bool                 `json:"requested"`
	IsDirect     bool                 `json:"is_direct"`
}

type metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Parse converts a pip installation report into distributions, in report
// order.
func Parse(data []byte) ([]*distribution.Distribution, error) {
	r := &report{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedReport, err)
	}
	if r.Install == nil {
		return nil, fmt.Errorf("%w: missing install list", ErrMalformedReport)
	}
	log.Debugf("pip installation report version %q with %d entries", r.Version, len(r.Install))

	dists := make([]*distribution.Distribution, 0, len(r.Install))
	for i, item := range r.Install {
		if item.Metadata == nil || item.Metadata.Name == "" || item.Metadata.Version == "" {
			return nil, fmt.Errorf("%w: install[%d] has no metadata name or version", ErrMalformedReport, i)
		}
		if item.DownloadInfo == nil {
			return nil, fmt.Errorf("%w: install[%d] (%s) has no download_info", ErrMalformedReport, i, item.Metadata.Name)
		}
		if item.DownloadInfo.URL == "" {
			return nil, fmt.Errorf("%w: install[%d] (%s) has no download_info url", ErrMalformedReport, i, item.Metadata.Name)
		}
		if err := item.DownloadInfo.Validate(); err != nil {
			return nil, fmt.Errorf("%w: install[%d] (%s): %w", ErrMalformedReport, i, item.Metadata.Name, err)
		}
		dists = append(dists, &distribution.Distribution{
			Name:        distribution.CanonicalName(item.Metadata.Name),
			Version:     item.Metadata.Version,
			Hashes:      item.DownloadInfo.HashMap(),
			DownloadURL: item.DownloadInfo.URL,
		})
	}
	return dists, nil
}
