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

// Package distribution defines the canonical record of a Python distribution
// that flows from the package sources to the SBOM formatters.
package distribution

import (
	"slices"
	"strings"

	"deps.dev/util/pypi"
	"github.com/google/pip-sbom/purl"
)

// PyPIFilesPrefix is the URL prefix of the files hosted by the public Python
// package index.
const PyPIFilesPrefix = "https://files.pythonhosted.org/"

// Distribution is a single installed or installable Python distribution.
type Distribution struct {
	// Name is the PEP 503 canonical name of the project.
	Name string
	// Version is kept as reported by the source. It is only parsed for ordering.
	Version string
	// Hashes maps a hashlib algorithm name (e.g. "sha256", "sha3_512") to the
	// hex digest of the downloaded artifact. Nil when unknown.
	Hashes map[string]string
	// DownloadURL is the URL the artifact was retrieved from. Empty when unknown,
	// e.g. for editable or local installs.
	DownloadURL string
}

// CanonicalName returns the PEP 503 normalized form of a project name.
// https://peps.python.org/pep-0503/#normalized-names
func CanonicalName(name string) string {
	return pypi.CanonPackageName(name)
}

// CanonicalHashAlgorithm returns the hashlib spelling of a hash algorithm name,
// e.g. "SHA-256" becomes "sha256" and "SHA3-256" becomes "sha3_256".
func CanonicalHashAlgorithm(alg string) string {
	alg = strings.ToLower(strings.TrimSpace(alg))
	// hashlib spells the SHA-1 and SHA-2 families without a separator.
	if rest, ok := strings.CutPrefix(alg, "sha-"); ok {
		alg = "sha" + rest
	} else if rest, ok := strings.CutPrefix(alg, "sha_"); ok {
		alg = "sha" + rest
	}
	return strings.ReplaceAll(alg, "-", "_")
}

// IsFromPyPI reports whether the distribution was verifiably downloaded from
// the public package index.
//
// URLs with an '@' are rejected: PyPI never needs credentials, and userinfo
// in the authority is the easiest way to make a URL look like it points at
// files.pythonhosted.org while it does not.
func (d *Distribution) IsFromPyPI() bool {
	return strings.HasPrefix(d.DownloadURL, PyPIFilesPrefix) && !strings.Contains(d.DownloadURL, "@")
}

// PURL returns the PyPI package URL of the distribution, or nil if the
// distribution can't be tied to the public package index.
func (d *Distribution) PURL() *purl.PackageURL {
	if !d.IsFromPyPI() {
		return nil
	}
	return purl.PyPI(d.Name, d.Version)
}

// HashAlgorithms returns the algorithm names present in Hashes in ascending
// order.
func (d *Distribution) HashAlgorithms() []string {
	algs := make([]string, 0, len(d.Hashes))
	for alg := range d.Hashes {
		algs = append(algs, alg)
	}
	slices.Sort(algs)
	return algs
}
