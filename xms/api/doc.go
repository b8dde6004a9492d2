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

// Package api holds the value types exchanged with the XMS REST API:
// message batches, recipient groups, delivery reports, inbound messages,
// and result pages.
//
// The types in this package hold data and nothing else. Serialization to
// and from the JSON wire format lives in the internal serialize and
// deserialize packages; request execution lives in the xms package.
//
// Polymorphic payloads (text versus binary batches, text versus binary
// inbound messages) are modeled as closed interfaces with exactly two
// implementations each. The set of wire discriminators is fixed, so code
// consuming these types can type switch exhaustively:
//
//	switch b := batch.(type) {
//	case *api.MtBatchTextSmsResult:
//	    fmt.Println(b.Body)
//	case *api.MtBatchBinarySmsResult:
//	    fmt.Printf("% x\n", b.Body)
//	}
//
// Update types use the three-state Update wrapper to distinguish leaving a
// field untouched, resetting it to the server default, and assigning a new
// value. See Update for details.
package api
