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

package stats

// DistInfoStats is a struct containing stats about a single .dist-info
// directory that was visited by the environment scanner.
type DistInfoStats struct {
	Path   string
	Result DistInfoResult
}

// DistInfoResult is a string representation of what happened to a .dist-info
// directory during a scan.
type DistInfoResult string

const (
	// DistInfoResultOK indicates that a distribution was read from the directory.
	DistInfoResultOK DistInfoResult = "DIST_INFO_RESULT_OK"

	// DistInfoResultUnreadable indicates that the METADATA file couldn't be read.
	DistInfoResultUnreadable DistInfoResult = "DIST_INFO_RESULT_UNREADABLE"

	// DistInfoResultNoName indicates that METADATA had no Name field.
	DistInfoResultNoName DistInfoResult = "DIST_INFO_RESULT_NO_NAME"

	// DistInfoResultNoVersion indicates that METADATA had no Version field.
	DistInfoResultNoVersion DistInfoResult = "DIST_INFO_RESULT_NO_VERSION"

	// DistInfoResultBadProvenance indicates that provenance_url.json existed but
	// couldn't be read or parsed. This aborts the scan.
	DistInfoResultBadProvenance DistInfoResult = "DIST_INFO_RESULT_BAD_PROVENANCE"
)
