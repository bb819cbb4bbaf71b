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

// Package cdx converts distributions into CycloneDX documents.
package cdx

import (
	"fmt"
	"strings"
	"time"

	"github.com/CycloneDX/cyclonedx-go"
	"github.com/google/pip-sbom/distribution"
	"github.com/google/pip-sbom/sbom"
	"github.com/google/uuid"
)

// Supported output formats.
const (
	FormatJSON = "cdx-json"
	FormatXML  = "cdx-xml"
)

// SpecVersion is the CycloneDX version documents are encoded at.
const SpecVersion = cyclonedx.SpecVersion1_4

const cycloneDx14Schema = "http://cyclonedx.org/schema/bom-1.4.schema.json"

// hashAlgorithms maps hashlib names to CycloneDX hash algorithms. MD5, SHA-1
// and SHA-224 hashes are left out of the document.
var hashAlgorithms = map[string]cyclonedx.HashAlgorithm{
	"sha256":   cyclonedx.HashAlgoSHA256,
	"sha384":   cyclonedx.HashAlgoSHA384,
	"sha512":   cyclonedx.HashAlgoSHA512,
	"sha3_256": cyclonedx.HashAlgoSHA3_256,
	"sha3_384": cyclonedx.HashAlgoSHA3_384,
	"sha3_512": cyclonedx.HashAlgoSHA3_512,
	"blake2b":  cyclonedx.HashAlgoBlake2b_512,
}

var fileFormats = map[string]cyclonedx.BOMFileFormat{
	FormatJSON: cyclonedx.BOMFileFormatJSON,
	FormatXML:  cyclonedx.BOMFileFormatXML,
}

// Formats returns the supported format names in sorted order.
func Formats() []string {
	return []string{FormatJSON, FormatXML}
}

// Config describes custom settings that should be applied to the generated CDX document.
type Config struct {
	// Tool is recorded in the metadata of the document.
	Tool sbom.Tool
	// Now returns the document timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Formatter produces CycloneDX documents in one serialization format.
type Formatter struct {
	fileFormat cyclonedx.BOMFileFormat
	cfg        Config
}

// New returns a Formatter for the given format name.
func New(format string, cfg Config) (*Formatter, error) {
	fileFormat, ok := fileFormats[format]
	if !ok {
		return nil, fmt.Errorf("%q is an invalid CDX format, want one of %s", format, strings.Join(Formats(), ", "))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Formatter{fileFormat: fileFormat, cfg: cfg}, nil
}

// Format implements sbom.Formatter.
func (f *Formatter) Format(dists []*distribution.Distribution) (string, error) {
	bom := ToCDX(dists, f.cfg)
	sb := &strings.Builder{}
	encoder := cyclonedx.NewBOMEncoder(sb, f.fileFormat).SetPretty(true)
	if err := encoder.EncodeVersion(bom, SpecVersion); err != nil {
		return "", fmt.Errorf("failed to write CDX document: %w", err)
	}
	return sb.String(), nil
}

// ToCDX converts distributions into a CycloneDX document, with one library
// component per distribution in the given order.
func ToCDX(dists []*distribution.Distribution, c Config) *cyclonedx.BOM {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	bom := cyclonedx.NewBOM()
	bom.JSONSchema = cycloneDx14Schema
	bom.SpecVersion = SpecVersion
	bom.SerialNumber = uuid.New().URN()
	bom.Metadata = &cyclonedx.Metadata{
		Timestamp: now().UTC().Format(time.RFC3339),
		Tools: &cyclonedx.ToolsChoice{
			Tools: &[]cyclonedx.Tool{
				{
					Name:    c.Tool.Name,
					Version: c.Tool.AnnotatedVersion(),
				},
			},
		},
	}

	comps := make([]cyclonedx.Component, 0, len(dists))
	for _, d := range dists {
		comp := cyclonedx.Component{
			BOMRef:  uuid.New().String(),
			Type:    cyclonedx.ComponentTypeLibrary,
			Name:    d.Name,
			Version: d.Version,
		}
		if d.DownloadURL != "" {
			comp.ExternalReferences = &[]cyclonedx.ExternalReference{
				{
					URL:  d.DownloadURL,
					Type: cyclonedx.ERTypeDistribution,
				},
			}
		}
		if p := d.PURL(); p != nil {
			comp.PackageURL = p.String()
		}
		if hashes := toHashes(d); len(hashes) > 0 {
			comp.Hashes = &hashes
		}
		comps = append(comps, comp)
	}
	bom.Components = &comps

	return bom
}

func toHashes(d *distribution.Distribution) []cyclonedx.Hash {
	var hashes []cyclonedx.Hash
	for _, alg := range d.HashAlgorithms() {
		a, ok := hashAlgorithms[alg]
		if !ok {
			continue
		}
		hashes = append(hashes, cyclonedx.Hash{Algorithm: a, Value: d.Hashes[alg]})
	}
	return hashes
}
