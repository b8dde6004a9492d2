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

// DryRunEncoding is the message encoding reported in a per-recipient
// dry-run entry.
type DryRunEncoding string

// Encodings reported by the dry-run endpoint.
const (
	DryRunEncodingText    DryRunEncoding = "text"
	DryRunEncodingUnicode DryRunEncoding = "unicode"
)

// MtBatchDryRunResult is the outcome of simulating a batch send. It
// reports how many recipients and messages the batch would produce
// without dispatching anything.
type MtBatchDryRunResult struct {
	NumberOfRecipients int `json:"number_of_recipients"`
	NumberOfMessages   int `json:"number_of_messages"`

	// PerRecipient holds per-recipient detail. Populated only when the
	// dry run was requested with per-recipient output.
	PerRecipient []DryRunPerRecipient `json:"per_recipient,omitempty"`
}

// DryRunPerRecipient describes the simulated send for one recipient.
type DryRunPerRecipient struct {
	Recipient string `json:"recipient"`

	// NumberOfParts is how many SMS parts the rendered body needs.
	NumberOfParts int `json:"number_of_parts"`

	// Body is the message body after template substitution.
	Body string `json:"body"`

	Encoding DryRunEncoding `json:"encoding"`
}
