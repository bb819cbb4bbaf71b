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

// Package distinfo collects the distributions installed in site-packages
// directories from their .dist-info metadata directories.
package distinfo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"bitbucket.org/creachadair/stringset"
	"github.com/google/pip-sbom/distribution"
	"github.com/google/pip-sbom/log"
	"github.com/google/pip-sbom/source/internal/directurl"
	"github.com/google/pip-sbom/stats"
)

// Name is the unique name of this source.
const Name = "distinfo"

const (
	distInfoSuffix = ".dist-info"
	metadataFile   = "METADATA"
	// PEP 710
	provenanceFile = "provenance_url.json"
)

// Config is the configuration for the distinfo source.
type Config struct {
	// SitePackages are the roots to scan. Only their immediate children are
	// considered.
	SitePackages []string
	// Stats is notified about every root and metadata directory. Optional.
	Stats stats.Collector
}

// Source scans site-packages directories.
type Source struct {
	roots []string
	stats stats.Collector
}

// New returns a distinfo source for the given configuration.
func New(cfg Config) *Source {
	seen := stringset.New()
	var roots []string
	for _, r := range cfg.SitePackages {
		if r == "" {
			continue
		}
		r = filepath.Clean(r)
		if seen.Contains(r) {
			continue
		}
		seen.Add(r)
		roots = append(roots, r)
	}
	s := &Source{roots: roots, stats: cfg.Stats}
	if s.stats == nil {
		s.stats = stats.NoopCollector{}
	}
	return s
}

// Name of the source.
func (s *Source) Name() string { return Name }

// Roots returns the de-duplicated roots in scan order.
func (s *Source) Roots() []string { return s.roots }

// Scan reads every .dist-info directory found directly under the roots.
func (s *Source) Scan(ctx context.Context) ([]*distribution.Distribution, error) {
	var dists []*distribution.Distribution
	for _, root := range s.roots {
		entries, err := os.ReadDir(root)
		s.stats.AfterRootScanned(root, err)
		if err != nil {
			log.Warnf("Not a directory: %s (%v)", root, err)
			continue
		}
		for _, e := range entries {
			if !strings.HasSuffix(e.Name(), distInfoSuffix) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			dir := filepath.Join(root, e.Name())
			d, result, err := s.scanDistInfo(dir)
			s.stats.AfterDistInfoScanned(&stats.DistInfoStats{Path: dir, Result: result})
			if err != nil {
				return nil, err
			}
			if d != nil {
				dists = append(dists, d)
			}
		}
	}
	return dists, nil
}

// scanDistInfo returns a nil distribution and a nil error for directories
// that are skipped.
func (s *Source) scanDistInfo(dir string) (*distribution.Distribution, stats.DistInfoResult, error) {
	f, err := os.Open(filepath.Join(dir, metadataFile))
	if err != nil {
		log.Warnf("Unable to read %s: %v", dir, err)
		return nil, stats.DistInfoResultUnreadable, nil
	}
	defer f.Close()

	h, err := textproto.NewReader(bufio.NewReader(f)).ReadMIMEHeader()
	name := h.Get("Name")
	version := h.Get("Version")
	// A header block that isn't terminated by an empty line still yields its
	// fields together with an error.
	if err != nil && (name == "" || version == "") {
		log.Debugf("ReadMIMEHeader(%s): %v", dir, err)
	}
	if name == "" {
		log.Warnf("No package name found in METADATA for %s", dir)
		return nil, stats.DistInfoResultNoName, nil
	}
	if version == "" {
		log.Warnf("No package version found in METADATA for %s", dir)
		return nil, stats.DistInfoResultNoVersion, nil
	}

	d := &distribution.Distribution{
		Name:    distribution.CanonicalName(name),
		Version: version,
	}

	data, err := os.ReadFile(filepath.Join(dir, provenanceFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return d, stats.DistInfoResultOK, nil
	case err != nil:
		return nil, stats.DistInfoResultBadProvenance, fmt.Errorf("reading %s in %s: %w", provenanceFile, dir, err)
	}
	u, err := directurl.Parse(data)
	if err != nil {
		return nil, stats.DistInfoResultBadProvenance, fmt.Errorf("parsing %s in %s: %w", provenanceFile, dir, err)
	}
	d.DownloadURL = u.URL
	d.Hashes = u.HashMap()
	return d, stats.DistInfoResultOK, nil
}
