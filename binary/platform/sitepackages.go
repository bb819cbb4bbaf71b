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

package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const sitePackagesScript = "import os, site; print(os.pathsep.join(site.getsitepackages()))"

// SitePackages asks the interpreter for its global site-packages directories.
func SitePackages(ctx context.Context, python string) ([]string, error) {
	cmd := exec.CommandContext(ctx, python, "-c", sitePackagesScript)
	if errors.Is(cmd.Err, exec.ErrDot) {
		cmd.Err = nil
	}
	stdoutBuffer := bytes.Buffer{}
	stderrBuffer := bytes.Buffer{}
	cmd.Stdout = &stdoutBuffer
	cmd.Stderr = &stderrBuffer

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to run `%v`: %w: %s", cmd.String(), err, strings.TrimSpace(stderrBuffer.String()))
	}
	return SplitPathList(stdoutBuffer.String()), nil
}

// SplitPathList splits an OS path list, dropping empty elements.
func SplitPathList(list string) []string {
	var paths []string
	for _, p := range filepath.SplitList(strings.TrimSpace(list)) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
