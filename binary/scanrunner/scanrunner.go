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

// Package scanrunner provides the main function for running a scan with the pip-sbom binary.
package scanrunner

import (
	"context"
	"errors"
	"io"

	"github.com/google/pip-sbom/binary/cli"
	"github.com/google/pip-sbom/distribution"
	"github.com/google/pip-sbom/log"
	"github.com/google/pip-sbom/source/pipreport"
	"github.com/google/pip-sbom/stats"
	"github.com/google/pip-sbom/version"
)

// RunScan executes the scan with the given CLI flags, writes the SBOM to stdout
// or the requested files and returns the exit code passed to os.Exit() in the
// main binary.
func RunScan(ctx context.Context, flags *cli.Flags, stdout io.Writer) int {
	if flags.PrintVersion {
		log.Infof("%s v%s", version.ToolName, version.ToolVersion)
		return 0
	}

	if flags.Verbose {
		log.SetLogger(&log.DefaultLogger{Verbose: true})
	}

	summary := &stats.Summary{}
	defer func() { log.Debugf("Run stats: %s", summary) }()

	var roots []string
	if !flags.PipReport {
		var err error
		if roots, err = flags.SitePackageRoots(ctx); err != nil {
			log.Errorf("%v", err)
			return 1
		}
		log.Debugf("Site packages: %v", roots)
	}
	src := flags.GetSource(roots, summary)

	dists, err := src.Scan(ctx)
	if err != nil {
		switch {
		case errors.Is(err, pipreport.ErrInstallerFailed):
			log.Errorf("pip failed, see its output above: %v", err)
		default:
			log.Errorf("Failed to collect distributions with the %s source: %v", src.Name(), err)
		}
		return 1
	}

	exclude, err := flags.ExcludeGlobs()
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	dists, err = distribution.Select(dists, exclude)
	if errors.Is(err, distribution.ErrNoDistributions) {
		if flags.PipReport {
			log.Errorf("pip would not install any distributions")
		} else {
			log.Errorf("Didn't find any .dist-info directories at %v", roots)
		}
		return 1
	}
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	log.Infof("Found %d distributions", len(dists))

	if err := flags.WriteResults(dists, stdout, summary); err != nil {
		log.Errorf("Error writing results: %v", err)
		return 1
	}
	return 0
}
