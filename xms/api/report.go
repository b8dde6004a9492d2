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

// DeliveryStatus is the delivery state of one or more batch messages. The
// constants below are the values known at the time of writing; the value
// space is owned by the server and new statuses may appear, so the type
// is a plain string and consumers should not treat the set as closed.
type DeliveryStatus string

// Known delivery statuses.
const (
	DeliveryStatusQueued     DeliveryStatus = "Queued"
	DeliveryStatusDispatched DeliveryStatus = "Dispatched"
	DeliveryStatusAborted    DeliveryStatus = "Aborted"
	DeliveryStatusRejected   DeliveryStatus = "Rejected"
	DeliveryStatusDelivered  DeliveryStatus = "Delivered"
	DeliveryStatusFailed     DeliveryStatus = "Failed"
	DeliveryStatusExpired    DeliveryStatus = "Expired"
	DeliveryStatusUnknown    DeliveryStatus = "Unknown"
)

// BatchDeliveryReport is an aggregated delivery report for a batch. The
// report is divided into buckets, one per delivery code, each describing
// how many messages ended up with that code.
type BatchDeliveryReport struct {
	// BatchID identifies the batch this report covers.
	BatchID string `json:"batch_id"`

	// TotalMessageCount is the total number of messages sent as part of
	// the batch.
	TotalMessageCount int `json:"total_message_count"`

	// Statuses holds the status buckets in the order the server returned
	// them.
	Statuses []BatchDeliveryReportStatus `json:"statuses"`
}

// BatchDeliveryReportStatus is one bucket of a batch delivery report.
type BatchDeliveryReportStatus struct {
	// Code is the delivery status code of this bucket.
	Code int `json:"code"`

	// Status is the delivery status of this bucket.
	Status DeliveryStatus `json:"status"`

	// Count is the number of messages in this bucket.
	Count int `json:"count"`

	// Recipients holds the affected recipients. It is populated only when
	// a full report was requested; this is server-side policy and not
	// enforced by the client.
	Recipients []string `json:"recipients,omitempty"`
}

// BatchRecipientDeliveryReport is a delivery report for a single batch
// recipient.
type BatchRecipientDeliveryReport struct {
	BatchID   string         `json:"batch_id"`
	Recipient string         `json:"recipient"`
	Code      int            `json:"code"`
	Status    DeliveryStatus `json:"status"`

	// StatusMessage carries additional detail about the status. Empty
	// when the server provided none.
	StatusMessage string `json:"status_message,omitempty"`

	// Operator identifies the recipient's mobile operator, when known.
	Operator string `json:"operator,omitempty"`

	// StatusAt is the time of delivery.
	StatusAt time.Time `json:"at"`

	// OperatorStatusAt is the delivery time as reported by the operator,
	// when available.
	OperatorStatusAt *time.Time `json:"operator_status_at,omitempty"`
}
