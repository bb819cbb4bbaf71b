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

package distribution

import (
	"errors"
	"slices"
	"strings"

	"deps.dev/util/semver"
	"github.com/gobwas/glob"
	"github.com/google/pip-sbom/log"
)

// ErrNoDistributions is returned by Select when no distribution is left to
// put in the SBOM.
var ErrNoDistributions = errors.New("no distributions found")

type sortKey struct {
	dist    *Distribution
	version *semver.Version // nil if the version isn't PEP 440 compliant.
}

// Select drops the distributions whose name matches one of the exclude
// patterns and returns the rest ordered by name, then by PEP 440 version.
// The sort is stable so entries with equal keys keep their source order.
//
// ErrNoDistributions is returned if the result would be empty.
func Select(dists []*Distribution, exclude []glob.Glob) ([]*Distribution, error) {
	keys := make([]sortKey, 0, len(dists))
	for _, d := range dists {
		if excluded(d.Name, exclude) {
			log.Debugf("Excluding %s==%s", d.Name, d.Version)
			continue
		}
		v, err := semver.PyPI.Parse(d.Version)
		if err != nil {
			log.Warnf("Version %q of %s is not PEP 440 compliant, ordering it lexically: %v", d.Version, d.Name, err)
			v = nil
		}
		keys = append(keys, sortKey{dist: d, version: v})
	}
	if len(keys) == 0 {
		return nil, ErrNoDistributions
	}

	slices.SortStableFunc(keys, compareKeys)

	result := make([]*Distribution, 0, len(keys))
	for _, k := range keys {
		result = append(result, k.dist)
	}
	return result, nil
}

func excluded(name string, exclude []glob.Glob) bool {
	for _, g := range exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// compareKeys orders by name first. Parseable versions come before versions
// that failed to parse, which are compared as plain strings.
func compareKeys(a, b sortKey) int {
	if c := strings.Compare(a.dist.Name, b.dist.Name); c != 0 {
		return c
	}
	switch {
	case a.version != nil && b.version != nil:
		return a.version.Compare(b.version)
	case a.version != nil:
		return -1
	case b.version != nil:
		return 1
	default:
		return strings.Compare(a.dist.Version, b.dist.Version)
	}
}
