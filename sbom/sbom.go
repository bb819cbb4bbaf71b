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

// Package sbom defines the interface for the components that turn a list of
// distributions into an SBOM document.
package sbom

import (
	"github.com/google/pip-sbom/distribution"
)

// NotForProduction is appended to the tool version stamped into every
// document.
const NotForProduction = "(DO NOT USE IN PRODUCTION)"

// Formatter serializes distributions into an SBOM document.
type Formatter interface {
	// Format returns the serialized document. dists are emitted in the given
	// order.
	Format(dists []*distribution.Distribution) (string, error)
}

// Tool identifies the program that generated a document.
type Tool struct {
	Name    string
	Version string
}

// AnnotatedVersion is the tool version with the not-for-production note.
func (t Tool) AnnotatedVersion() string {
	return t.Version + " " + NotForProduction
}

// String returns "<name>/<version> (DO NOT USE IN PRODUCTION)".
func (t Tool) String() string {
	return t.Name + "/" + t.AnnotatedVersion()
}
