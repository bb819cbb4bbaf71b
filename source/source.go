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

// Package source defines the interface for the components that collect Python
// distributions.
package source

import (
	"context"

	"github.com/google/pip-sbom/distribution"
)

// Source collects the distributions that make up an environment.
type Source interface {
	// Name is a unique identifier of the source, used in diagnostics.
	Name() string
	// Scan returns the distributions found by the source. Per-item problems
	// are logged and skipped; the returned error is reserved for failures that
	// make the whole result unusable.
	Scan(ctx context.Context) ([]*distribution.Distribution, error)
}
