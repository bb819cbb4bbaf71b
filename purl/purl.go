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

// Package purl provides functions to build package urls according to the spec: https://github.com/package-url/purl-spec
// This package is a convenience wrapper and abstraction layer around an existing open source implementation.
package purl

import (
	"deps.dev/util/pypi"
	"github.com/package-url/packageurl-go"
)

// TypePyPi is the pkg:pypi purl type.
// https://github.com/package-url/purl-spec/blob/master/PURL-TYPES.rst#pypi
const TypePyPi = "pypi"

// PackageURL is the struct representation of the parts that make a package url.
type PackageURL struct {
	Type    string
	Name    string
	Version string
}

func (p PackageURL) String() string {
	purl := packageurl.NewPackageURL(p.Type, "", p.Name, p.Version, nil, "")
	return purl.ToString()
}

// PyPI returns a package URL following the purl PyPI spec:
// - Name is lowercased
// - Replaces all runs of ` _ . - ` with -
//
// See: https://github.com/package-url/purl-spec/blob/master/PURL-TYPES.rst#pypi
// And: https://peps.python.org/pep-0503/#normalized-names
func PyPI(name string, version string) *PackageURL {
	return &PackageURL{
		Type:    TypePyPi,
		Name:    pypi.CanonPackageName(name),
		Version: version,
	}
}
