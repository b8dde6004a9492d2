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

import "time"

// ReportType describes which kind of delivery report is requested for a
// batch. The constants below are the values known to XMS; the field is a
// plain string type because the server owns the value space.
type ReportType string

// Delivery report types accepted in the DeliveryReport field of a batch.
const (
	ReportTypeNone         ReportType = "none"
	ReportTypeSummary      ReportType = "summary"
	ReportTypeFull         ReportType = "full"
	ReportTypePerRecipient ReportType = "per_recipient"
)

// MtBatchSmsCreate is the closed set of batch creation descriptions. Its
// only implementations are MtBatchTextSmsCreate and MtBatchBinarySmsCreate.
type MtBatchSmsCreate interface {
	mtBatchSmsCreate()
}

// MtBatchTextSmsCreate describes a textual message batch to be created.
//
// The Body may be a template, in which case Parameters maps each template
// placeholder to a per-recipient substitution table. The special recipient
// key "default" supplies the substitution for recipients not listed
// explicitly. For example, with body "Hello, ${name}!":
//
//	batch.Parameters = map[string]map[string]string{
//	    "name": {
//	        "123456789": "Mary",
//	        "987654321": "Joe",
//	        "default":   "valued customer",
//	    },
//	}
//
// Recipients and Tags have set semantics; duplicates are collapsed and the
// elements are sorted when the batch is serialized.
type MtBatchTextSmsCreate struct {
	// Sender is the originating address, typically a short code or long
	// number.
	Sender string

	// Recipients holds one or more destination MSISDNs. Must be non-empty.
	Recipients []string

	// DeliveryReport selects the kind of delivery report to request.
	// Leave empty to use the server default.
	DeliveryReport ReportType

	// SendAt schedules the batch send time. Nil sends immediately.
	SendAt *time.Time

	// ExpireAt sets the batch expiry time. Nil uses the server default.
	ExpireAt *time.Time

	// CallbackURL overrides the default callback URL for this batch.
	CallbackURL string

	// Tags is the initial set of tags to give the batch.
	Tags []string

	// Body is the message text or template.
	Body string

	// Parameters holds template substitutions, keyed first by placeholder
	// and then by recipient.
	Parameters map[string]map[string]string
}

func (*MtBatchTextSmsCreate) mtBatchSmsCreate() {}

// MtBatchBinarySmsCreate describes a binary message batch to be created.
// The body and User Data Header are raw bytes; they are base64 and hex
// encoded, respectively, on the wire.
type MtBatchBinarySmsCreate struct {
	Sender         string
	Recipients     []string
	DeliveryReport ReportType
	SendAt         *time.Time
	ExpireAt       *time.Time
	CallbackURL    string
	Tags           []string

	// Body is the raw binary message body.
	Body []byte

	// UDH is the User Data Header preceding the body.
	UDH []byte
}

func (*MtBatchBinarySmsCreate) mtBatchSmsCreate() {}

// MtBatchSmsResult is the closed set of batch descriptions returned by
// XMS. Its only implementations are MtBatchTextSmsResult and
// MtBatchBinarySmsResult; which one is produced is determined by the
// "type" discriminator on the wire.
type MtBatchSmsResult interface {
	mtBatchSmsResult()

	// ID returns the server-assigned batch identifier.
	ID() string
}

// MtBatchTextSmsResult is a textual batch as returned by XMS. It extends
// the creation fields with the server-assigned identifier, bookkeeping
// timestamps, and the canceled flag.
type MtBatchTextSmsResult struct {
	BatchID        string                       `json:"id"`
	Sender         string                       `json:"from"`
	Recipients     []string                     `json:"to"`
	Canceled       bool                         `json:"canceled"`
	DeliveryReport ReportType                   `json:"delivery_report,omitempty"`
	SendAt         *time.Time                   `json:"send_at,omitempty"`
	ExpireAt       *time.Time                   `json:"expire_at,omitempty"`
	CreatedAt      *time.Time                   `json:"created_at,omitempty"`
	ModifiedAt     *time.Time                   `json:"modified_at,omitempty"`
	CallbackURL    string                       `json:"callback_url,omitempty"`
	Body           string                       `json:"body"`
	Parameters     map[string]map[string]string `json:"parameters,omitempty"`
}

func (*MtBatchTextSmsResult) mtBatchSmsResult() {}

// ID returns the server-assigned batch identifier.
func (b *MtBatchTextSmsResult) ID() string { return b.BatchID }

// MtBatchBinarySmsResult is a binary batch as returned by XMS.
type MtBatchBinarySmsResult struct {
	BatchID        string     `json:"id"`
	Sender         string     `json:"from"`
	Recipients     []string   `json:"to"`
	Canceled       bool       `json:"canceled"`
	DeliveryReport ReportType `json:"delivery_report,omitempty"`
	SendAt         *time.Time `json:"send_at,omitempty"`
	ExpireAt       *time.Time `json:"expire_at,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	ModifiedAt     *time.Time `json:"modified_at,omitempty"`
	CallbackURL    string     `json:"callback_url,omitempty"`
	Body           []byte     `json:"body"`
	UDH            []byte     `json:"udh"`
}

func (*MtBatchBinarySmsResult) mtBatchSmsResult() {}

// ID returns the server-assigned batch identifier.
func (b *MtBatchBinarySmsResult) ID() string { return b.BatchID }
