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

// Package cli defines the structures to store the CLI flags used by the pip-sbom binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"bitbucket.org/creachadair/stringset"
	"github.com/gobwas/glob"
	"github.com/google/pip-sbom/binary/platform"
	"github.com/google/pip-sbom/distribution"
	"github.com/google/pip-sbom/log"
	"github.com/google/pip-sbom/sbom"
	"github.com/google/pip-sbom/sbom/cdx"
	"github.com/google/pip-sbom/sbom/spdx"
	"github.com/google/pip-sbom/source"
	"github.com/google/pip-sbom/source/distinfo"
	"github.com/google/pip-sbom/source/pipreport"
	"github.com/google/pip-sbom/stats"
	"github.com/google/pip-sbom/version"
	"github.com/spdx/tools-golang/spdx/v2/common"
	"go.uber.org/multierr"
)

// Array is a type to be passed to flag.Var that supports arrays passed as repeated flags,
// e.g. ./pip-sbom -o spdx23-json=out.spdx.json -o cdx-json=out.cdx.json
type Array []string

func (i *Array) String() string {
	return strings.Join(*i, ",")
}

// Set gets called whenever a new instance of a flag is read during CLI arg parsing.
// For example, in the case of -o foo -o bar the library will call arr.Set("foo") then arr.Set("bar").
func (i *Array) Set(value string) error {
	*i = append(*i, strings.TrimSpace(value))
	return nil
}

// Get returns the underlying []string value stored by this flag struct.
func (i *Array) Get() any {
	return i
}

// StringListFlag is a type to be passed to flag.Var that supports list flags passed as repeated
// flags, e.g. ./pip-sbom --exclude a --exclude b,c the library will call Set("a") then Set("b,c").
type StringListFlag struct {
	set          bool
	value        []string
	defaultValue []string
}

// NewStringListFlag creates a new StringListFlag with the given default value.
func NewStringListFlag(defaultValue []string) StringListFlag {
	return StringListFlag{defaultValue: defaultValue}
}

// Set gets called whenever a new instance of a flag is read during CLI arg parsing.
func (s *StringListFlag) Set(x string) error {
	s.value = append(s.value, strings.Split(x, ",")...)
	s.set = true
	return nil
}

// Get returns the underlying []string value stored by this flag struct.
func (s *StringListFlag) Get() any {
	return s.GetSlice()
}

// GetSlice returns the underlying []string value stored by this flag struct.
func (s *StringListFlag) GetSlice() []string {
	if s.set {
		return s.value
	}
	return s.defaultValue
}

func (s *StringListFlag) String() string {
	if len(s.value) == 0 {
		return ""
	}
	return fmt.Sprint(s.value)
}

// Flag names shared by the binary and the config file merging.
const (
	FlagSitePackages          = "site-packages"
	FlagPipReport             = "pip-report"
	FlagPython                = "python"
	FlagPipTimeout            = "pip-timeout"
	FlagFormat                = "format"
	FlagOutput                = "o"
	FlagExclude               = "exclude"
	FlagSPDXDocumentName      = "spdx-document-name"
	FlagSPDXDocumentNamespace = "spdx-document-namespace"
	FlagSPDXCreators          = "spdx-creators"
	FlagConfig                = "config"
	FlagVerbose               = "verbose"
)

// DefaultFormat is the format written to stdout when none is requested.
const DefaultFormat = spdx.FormatJSON

// DefaultPipTimeout bounds the dry-run installation.
const DefaultPipTimeout = 10 * time.Minute

// Flags contains a field for all the cli flags that can be set.
type Flags struct {
	// SitePackages is an OS path list of site-packages directories.
	SitePackages string
	PipReport    bool
	// PipArgs are forwarded to pip install when PipReport is set.
	PipArgs               []string
	Python                string
	PipTimeout            time.Duration
	Format                string
	Output                Array
	Exclude               []string
	SPDXDocumentName      string
	SPDXDocumentNamespace string
	SPDXCreators          string
	ConfigFile            string
	Verbose               bool
	PrintVersion          bool
}

func supportedOutputFormats() stringset.Set {
	return stringset.New(append(spdx.Formats(), cdx.Formats()...)...)
}

// ValidateFlags validates the passed command line flags.
func ValidateFlags(flags *Flags) error {
	if flags.PrintVersion {
		return nil
	}
	if flags.PipReport && flags.SitePackages != "" {
		return errors.New("--pip-report and --site-packages cannot be used together")
	}
	if !flags.PipReport && len(flags.PipArgs) > 0 {
		return fmt.Errorf("unexpected arguments %q, pip arguments can only be passed with --pip-report", flags.PipArgs)
	}
	if flags.PipTimeout < 0 {
		return fmt.Errorf("--pip-timeout %v cannot be negative", flags.PipTimeout)
	}
	if err := validateFormat(flags.Format); err != nil {
		return fmt.Errorf("--format %w", err)
	}
	if err := validateOutput(flags.Output); err != nil {
		return fmt.Errorf("--o %w", err)
	}
	if err := validateGlobs(flags.Exclude); err != nil {
		return fmt.Errorf("--exclude: %w", err)
	}
	if _, err := parseCreators(flags.SPDXCreators); err != nil {
		return fmt.Errorf("--spdx-creators: %w", err)
	}
	return nil
}

func validateFormat(format string) error {
	if format == "" {
		return nil
	}
	if formats := supportedOutputFormats(); !formats.Contains(format) {
		return fmt.Errorf("%q not recognized, supported formats are %v", format, formats.Elements())
	}
	return nil
}

func validateOutput(output []string) error {
	for _, item := range output {
		oFormat, oPath, ok := strings.Cut(item, "=")
		if !ok || oPath == "" {
			return errors.New("invalid output format, should follow a format like -o spdx23-json=result.spdx.json -o cdx-json=result.cdx.json")
		}
		if formats := supportedOutputFormats(); !formats.Contains(oFormat) {
			return fmt.Errorf("output format %q not recognized, supported formats are %v", oFormat, formats.Elements())
		}
	}
	return nil
}

func validateGlobs(globs []string) error {
	for _, g := range globs {
		if g == "" {
			return errors.New("list item cannot be left empty")
		}
		if _, err := glob.Compile(g); err != nil {
			return err
		}
	}
	return nil
}

func parseCreators(creators string) ([]common.Creator, error) {
	if creators == "" {
		return nil, nil
	}
	var result []common.Creator
	for _, item := range strings.Split(creators, ",") {
		cType, cName, ok := strings.Cut(item, ":")
		if !ok || cType == "" || cName == "" {
			return nil, fmt.Errorf("creator %q should follow the format creatortype:creator", item)
		}
		result = append(result, common.Creator{
			CreatorType: strings.TrimSpace(cType),
			Creator:     strings.TrimSpace(cName),
		})
	}
	return result, nil
}

// Tool returns the identity stamped into the generated documents.
func (f *Flags) Tool() sbom.Tool {
	return sbom.Tool{Name: version.ToolName, Version: version.ToolVersion}
}

// GetSPDXConfig creates an SPDX Config struct based on the CLI flags.
func (f *Flags) GetSPDXConfig() spdx.Config {
	// Validated by ValidateFlags.
	creators, _ := parseCreators(f.SPDXCreators)
	return spdx.Config{
		Tool:              f.Tool(),
		DocumentName:      f.SPDXDocumentName,
		DocumentNamespace: f.SPDXDocumentNamespace,
		Creators:          creators,
	}
}

// GetCDXConfig creates a CDX Config struct based on the CLI flags.
func (f *Flags) GetCDXConfig() cdx.Config {
	return cdx.Config{Tool: f.Tool()}
}

// Formatter returns the SBOM formatter for the given output format.
func (f *Flags) Formatter(format string) (sbom.Formatter, error) {
	switch {
	case strings.HasPrefix(format, "spdx23"):
		return spdx.New(format, f.GetSPDXConfig())
	case strings.HasPrefix(format, "cdx"):
		return cdx.New(format, f.GetCDXConfig())
	default:
		return nil, fmt.Errorf("output format %q not recognized", format)
	}
}

// ExcludeGlobs compiles the --exclude patterns.
func (f *Flags) ExcludeGlobs() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(f.Exclude))
	for _, pattern := range f.Exclude {
		g, err := glob.Compile(canonicalPattern(pattern))
		if err != nil {
			return nil, fmt.Errorf("glob.Compile(%q): %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

const globMetaChars = `*?[]{},!\`

// canonicalPattern normalizes the literal parts of a name glob the way
// distribution names are normalized and leaves the glob syntax untouched.
func canonicalPattern(pattern string) string {
	var sb strings.Builder
	literal := 0
	for i := 0; i < len(pattern); i++ {
		if strings.IndexByte(globMetaChars, pattern[i]) < 0 {
			continue
		}
		sb.WriteString(distribution.CanonicalName(pattern[literal:i]))
		sb.WriteByte(pattern[i])
		literal = i + 1
	}
	sb.WriteString(distribution.CanonicalName(pattern[literal:]))
	return sb.String()
}

func (f *Flags) python() string {
	if f.Python != "" {
		return f.Python
	}
	return platform.DefaultPython()
}

// SitePackageRoots returns the --site-packages directories, or the
// site-packages of the interpreter if none were given.
func (f *Flags) SitePackageRoots(ctx context.Context) ([]string, error) {
	if roots := platform.SplitPathList(f.SitePackages); len(roots) > 0 {
		return roots, nil
	}
	roots, err := platform.SitePackages(ctx, f.python())
	if err != nil {
		return nil, fmt.Errorf("failed to find the site-packages of %s: %w", f.python(), err)
	}
	return roots, nil
}

// GetSource constructs the package source selected by the CLI flags. roots
// are only used when scanning site-packages.
func (f *Flags) GetSource(roots []string, collector stats.Collector) source.Source {
	if f.PipReport {
		return pipreport.New(pipreport.Config{
			Python:  f.python(),
			Args:    f.PipArgs,
			Timeout: f.PipTimeout,
		})
	}
	return distinfo.New(distinfo.Config{SitePackages: roots, Stats: collector})
}

// WriteResults writes the SBOM to the files specified by the CLI flags, or to
// stdout if none are specified.
func (f *Flags) WriteResults(dists []*distribution.Distribution, stdout io.Writer, collector stats.Collector) error {
	if collector == nil {
		collector = stats.NoopCollector{}
	}
	if len(f.Output) == 0 {
		format := f.Format
		if format == "" {
			format = DefaultFormat
		}
		doc, err := f.format(format, dists)
		if err != nil {
			return err
		}
		n, err := io.WriteString(stdout, doc)
		collector.AfterResultsExported("stdout", n, err)
		return err
	}

	var errs error
	for _, item := range f.Output {
		oFormat, oPath, _ := strings.Cut(item, "=")
		log.Infof("Writing %s SBOM to %s", oFormat, oPath)
		doc, err := f.format(oFormat, dists)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", oPath, err))
			continue
		}
		err = os.WriteFile(oPath, []byte(doc), 0644)
		n := len(doc)
		if err != nil {
			n = 0
			err = fmt.Errorf("%s: %w", oPath, err)
		}
		collector.AfterResultsExported("file", n, err)
		errs = multierr.Append(errs, err)
	}
	return errs
}

func (f *Flags) format(format string, dists []*distribution.Distribution) (string, error) {
	formatter, err := f.Formatter(format)
	if err != nil {
		return "", err
	}
	return formatter.Format(dists)
}
