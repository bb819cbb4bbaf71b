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

// The pip-sbom command generates an SPDX or CycloneDX SBOM for the Python
// distributions installed in a set of site-packages directories, or for the
// ones pip would install for the given requirements.
//
// Usage:
//
//	pip-sbom [flags]
//	pip-sbom --pip-report [flags] -- [pip install arguments]
package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/pip-sbom/binary/cli"
	"github.com/google/pip-sbom/binary/scanrunner"
	"github.com/google/pip-sbom/log"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	return runWithOutput(args, os.Stdout)
}

func runWithOutput(args []string, stdout io.Writer) int {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	flags, err := parseFlags(rest)
	if err != nil {
		log.Errorf("Error parsing CLI args: %v", err)
		return 1
	}
	return scanrunner.RunScan(context.Background(), flags, stdout)
}

func parseFlags(args []string) (*cli.Flags, error) {
	fs := flag.NewFlagSet("pip-sbom", flag.ContinueOnError)
	sitePackages := fs.String(cli.FlagSitePackages, "", "OS path list of site-packages directories to scan. Defaults to the site-packages of --python")
	pipReport := fs.Bool(cli.FlagPipReport, false, "Describe what pip would install for the positional arguments instead of scanning site-packages")
	python := fs.String(cli.FlagPython, "", "The Python interpreter used to run pip and to locate site-packages. Defaults to $VIRTUAL_ENV's interpreter or python3")
	pipTimeout := fs.Duration(cli.FlagPipTimeout, cli.DefaultPipTimeout, "Maximum duration of the pip dry-run installation, 0 disables the limit")
	format := fs.String(cli.FlagFormat, cli.DefaultFormat, "The SBOM format written to stdout when no -o is given, e.g. spdx23-json, spdx23-yaml, spdx23-tag-value, cdx-json or cdx-xml")
	var output cli.Array
	fs.Var(&output, cli.FlagOutput, "The path of the SBOM outputs in various formats, e.g. -o spdx23-json=result.spdx.json -o cdx-json=result.cdx.json")
	exclude := cli.NewStringListFlag(nil)
	fs.Var(&exclude, cli.FlagExclude, "Comma-separated list of glob patterns matched against normalized distribution names to leave out of the SBOM")
	spdxDocumentName := fs.String(cli.FlagSPDXDocumentName, "", "The 'name' field for the output SPDX document")
	spdxDocumentNamespace := fs.String(cli.FlagSPDXDocumentNamespace, "", "The 'documentNamespace' field for the output SPDX document")
	spdxCreators := fs.String(cli.FlagSPDXCreators, "", "Additional 'creators' for the output SPDX document. Format is --spdx-creators=creatortype1:creator1,creatortype2:creator2")
	configFile := fs.String(cli.FlagConfig, "", "Path to a YAML config file. Flags set on the command line take precedence")
	verbose := fs.Bool(cli.FlagVerbose, false, "Enable this to print debug logs")
	printVersion := fs.Bool("version", false, "Print the pip-sbom version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	flags := &cli.Flags{
		SitePackages:          *sitePackages,
		PipReport:             *pipReport,
		PipArgs:               fs.Args(),
		Python:                *python,
		PipTimeout:            *pipTimeout,
		Format:                *format,
		Output:                output,
		Exclude:               exclude.GetSlice(),
		SPDXDocumentName:      *spdxDocumentName,
		SPDXDocumentNamespace: *spdxDocumentNamespace,
		SPDXCreators:          *spdxCreators,
		ConfigFile:            *configFile,
		Verbose:               *verbose,
		PrintVersion:          *printVersion,
	}

	if flags.ConfigFile != "" {
		setFlags := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
		cfg, err := cli.LoadConfigFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		if err := cli.MergeConfig(flags, cfg, setFlags); err != nil {
			return nil, err
		}
	}

	if err := cli.ValidateFlags(flags); err != nil {
		return nil, err
	}
	return flags, nil
}
