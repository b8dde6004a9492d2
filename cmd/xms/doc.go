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

// Package main implements the xms command-line interface.
// This tool sends SMS batches through the XMS REST API and retrieves
// batches, groups, inbound messages, and delivery reports, writing
// listings as NDJSON for efficient streaming and processing.
//
// The CLI supports:
//   - Sending text and binary SMS batches
//   - Listing and filtering batches, groups, and inbound messages
//   - Fetching batch and per-recipient delivery reports
//   - Customizable output destinations (stdout or file)
//   - API token authentication via flag or environment variable
//
// Usage:
//
//	xms <command> [flags]
//
// Example:
//
//	export XMS_TOKEN=your_token
//	xms send text 12345 987654321 "Hello, world!" --plan myplan
//	xms batches list --output batches.ndjson
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization or API error
//   - 3: Network error
package main
