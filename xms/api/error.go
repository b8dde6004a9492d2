// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

// Error is the structured error body XMS attaches to rejected requests.
// It is a plain value; the corresponding Go error type is
// xmserror.ResponseError.
type Error struct {
	// Code identifies the error in a machine-readable way.
	Code string `json:"code"`

	// Text is a human-readable description of the error.
	Text string `json:"text"`
}
