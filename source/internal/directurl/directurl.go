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

// Package directurl parses the Direct URL data structure shared by PEP 610
// direct_url.json, PEP 710 provenance_url.json and the download_info field of
// pip installation reports.
// https://packaging.python.org/en/latest/specifications/direct-url-data-structure/
package directurl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/pip-sbom/distribution"
)

// ErrMalformed is returned for documents that aren't a valid Direct URL.
var ErrMalformed = errors.New("malformed direct URL")

// DirectURL is the origin of a downloaded artifact.
type DirectURL struct {
	URL         string       `json:"url"`
	ArchiveInfo *ArchiveInfo `json:"archive_info,omitempty"`
	DirInfo     *DirInfo     `json:"dir_info,omitempty"`
}

// ArchiveInfo describes an archive (sdist or wheel) the distribution was
// installed from.
type ArchiveInfo struct {
	// Hashes maps hashlib algorithm names to hex digests.
	Hashes map[string]string `json:"hashes,omitempty"`
	// Hash is the deprecated "<algorithm>=<digest>" form.
	Hash string `json:"hash,omitempty"`
}

// DirInfo describes a local directory the distribution was installed from.
type DirInfo struct {
	Editable bool `json:"editable,omitempty"`
}

// Parse decodes a Direct URL JSON document.
func Parse(data []byte) (*DirectURL, error) {
	d := &DirectURL{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks that the recorded hash can be read. url is optional: a
// provenance file may only record the archive hash.
func (d *DirectURL) Validate() error {
	if d.ArchiveInfo != nil && len(d.ArchiveInfo.Hashes) == 0 && d.ArchiveInfo.Hash != "" {
		if !strings.Contains(d.ArchiveInfo.Hash, "=") {
			return fmt.Errorf("%w: archive_info.hash %q is not of the form <algorithm>=<digest>", ErrMalformed, d.ArchiveInfo.Hash)
		}
	}
	return nil
}

// HashMap returns the archive hashes keyed by canonical algorithm name, or nil
// if none were recorded. The plural hashes field takes precedence over the
// singular hash field.
func (d *DirectURL) HashMap() map[string]string {
	if d.ArchiveInfo == nil {
		return nil
	}
	if len(d.ArchiveInfo.Hashes) > 0 {
		hashes := make(map[string]string, len(d.ArchiveInfo.Hashes))
		for alg, digest := range d.ArchiveInfo.Hashes {
			hashes[distribution.CanonicalHashAlgorithm(alg)] = digest
		}
		return hashes
	}
	alg, digest, ok := strings.Cut(d.ArchiveInfo.Hash, "=")
	if !ok {
		return nil
	}
	return map[string]string{distribution.CanonicalHashAlgorithm(alg): digest}
}
