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

// Package spdx converts distributions into SPDX v2.3 documents.
package spdx

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/pip-sbom/distribution"
	"github.com/google/pip-sbom/sbom"
	"github.com/google/uuid"
	"github.com/spdx/tools-golang/json"
	"github.com/spdx/tools-golang/spdx/v2/common"
	"github.com/spdx/tools-golang/spdx/v2/v2_3"
	"github.com/spdx/tools-golang/tagvalue"
	"github.com/spdx/tools-golang/yaml"
)

const (
	// NoAssertion indicates that we don't assert any information about a field.
	NoAssertion = "NOASSERTION"
	// SPDXRefPrefix is the prefix used in reference IDs in the SPDX document.
	SPDXRefPrefix = "SPDXRef-"
	// SPDXDocumentID is the ID of the main SPDX document element.
	SPDXDocumentID = "SPDXRef-DOCUMENT"
	// DefaultDocumentName is used when no document name is configured.
	DefaultDocumentName = "UNSET"
)

// Supported output formats.
const (
	FormatJSON     = "spdx23-json"
	FormatYAML     = "spdx23-yaml"
	FormatTagValue = "spdx23-tag-value"
)

var spdxIDInvalidCharsRe = regexp.MustCompile(`[^a-zA-Z0-9.-]+`)

// checksumAlgorithms maps hashlib names to SPDX checksum algorithms. Hashes
// with other algorithms are left out of the document.
var checksumAlgorithms = map[string]common.ChecksumAlgorithm{
	"md5":      common.MD5,
	"sha1":     common.SHA1,
	"sha224":   common.SHA224,
	"sha256":   common.SHA256,
	"sha384":   common.SHA384,
	"sha512":   common.SHA512,
	"sha3_256": common.SHA3_256,
	"sha3_384": common.SHA3_384,
	"sha3_512": common.SHA3_512,
	"blake2b":  common.BLAKE2b_512,
}

type writeFun func(doc *v2_3.Document, w io.Writer) error

// Writer functions associated with SPDX v2.3 extensions.
var spdx23Writers = map[string]writeFun{
	FormatTagValue: writeSPDX23TagValue,
	FormatJSON:     writeSPDX23JSON,
	FormatYAML:     writeSPDX23YAML,
}

// Formats returns the supported format names in sorted order.
func Formats() []string {
	formats := make([]string, 0, len(spdx23Writers))
	for f := range spdx23Writers {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// Config describes custom settings that should be applied to the generated SPDX document.
type Config struct {
	// Tool is recorded as the first creator of the document.
	Tool              sbom.Tool
	DocumentName      string
	DocumentNamespace string
	// Creators are appended after the tool.
	Creators []common.Creator
	// Now returns the creation time. Defaults to time.Now.
	Now func() time.Time
}

// Formatter produces SPDX v2.3 documents in one serialization format.
type Formatter struct {
	write writeFun
	cfg   Config
}

// New returns a Formatter for the given format name.
func New(format string, cfg Config) (*Formatter, error) {
	write, ok := spdx23Writers[format]
	if !ok {
		return nil, fmt.Errorf("%q is an invalid SPDX format, want one of %s", format, strings.Join(Formats(), ", "))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Formatter{write: write, cfg: cfg}, nil
}

// Format implements sbom.Formatter.
func (f *Formatter) Format(dists []*distribution.Distribution) (string, error) {
	doc := ToSPDX23(dists, f.cfg)
	sb := &strings.Builder{}
	if err := f.write(doc, sb); err != nil {
		return "", fmt.Errorf("failed to write SPDX document: %w", err)
	}
	return sb.String(), nil
}

// ToSPDX23 converts distributions into an SPDX v2.3 document, with one package
// per distribution in the given order.
func ToSPDX23(dists []*distribution.Distribution, c Config) *v2_3.Document {
	packages := make([]*v2_3.Package, 0, len(dists))
	relationships := make([]*v2_3.Relationship, 0, len(dists))

	for _, d := range dists {
		pID := PackageID(d)
		downloadLocation := d.DownloadURL
		if downloadLocation == "" {
			downloadLocation = NoAssertion
		}
		pkg := &v2_3.Package{
			PackageName:               d.Name,
			PackageSPDXIdentifier:     common.ElementID(pID),
			PackageVersion:            d.Version,
			PackageDownloadLocation:   downloadLocation,
			PrimaryPackagePurpose:     "LIBRARY",
			IsFilesAnalyzedTagPresent: false,
			PackageChecksums:          checksums(d),
		}
		// Only a download from the public index ties the distribution to its
		// PyPI project.
		if p := d.PURL(); p != nil {
			pkg.PackageExternalReferences = []*v2_3.PackageExternalReference{
				{
					Category: "PACKAGE-MANAGER",
					RefType:  "purl",
					Locator:  p.String(),
				},
			}
		}
		packages = append(packages, pkg)
		relationships = append(relationships, &v2_3.Relationship{
			RefA:         toDocElementID(SPDXDocumentID),
			RefB:         toDocElementID(pID),
			Relationship: "DESCRIBES",
		})
	}

	name := c.DocumentName
	if name == "" {
		name = DefaultDocumentName
	}
	namespace := c.DocumentNamespace
	if namespace == "" {
		namespace = uuid.New().URN()
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	creators := []common.Creator{
		{
			CreatorType: "Tool",
			Creator:     c.Tool.String(),
		},
	}
	creators = append(creators, c.Creators...)
	return &v2_3.Document{
		SPDXVersion:       "SPDX-2.3",
		DataLicense:       "CC0-1.0",
		SPDXIdentifier:    "DOCUMENT",
		DocumentName:      name,
		DocumentNamespace: namespace,
		CreationInfo: &v2_3.CreationInfo{
			Creators: creators,
			Created:  now().UTC().Format("2006-01-02T15:04:05Z"),
		},
		Packages:      packages,
		Relationships: relationships,
	}
}

// PackageID returns the SPDX identifier of the package for a distribution.
// Every run of characters that are invalid in an identifier is replaced with
// a single '-'.
func PackageID(d *distribution.Distribution) string {
	return SPDXRefPrefix + spdxIDInvalidCharsRe.ReplaceAllString("Package-"+d.Name+"-"+d.Version, "-")
}

func checksums(d *distribution.Distribution) []common.Checksum {
	var cs []common.Checksum
	for _, alg := range d.HashAlgorithms() {
		a, ok := checksumAlgorithms[alg]
		if !ok {
			continue
		}
		cs = append(cs, common.Checksum{Algorithm: a, Value: d.Hashes[alg]})
	}
	return cs
}

func toDocElementID(id string) common.DocElementID {
	return common.DocElementID{
		ElementRefID: common.ElementID(id),
	}
}

func writeSPDX23TagValue(doc *v2_3.Document, w io.Writer) error {
	return tagvalue.Write(doc, w)
}

func writeSPDX23YAML(doc *v2_3.Document, w io.Writer) error {
	return yaml.Write(doc, w)
}

func writeSPDX23JSON(doc *v2_3.Document, w io.Writer) error {
	return json.Write(doc, w, json.Indent("  "))
}
