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

type updateState uint8

const (
	updateUnchanged updateState = iota
	updateReset
	updateSet
)

// Update describes a change to a single field of an update request. It is
// a three-state tagged value:
//
//   - the zero value leaves the field unchanged (it is omitted from the
//     request payload and the server keeps the current value),
//   - Reset resets the field to its server-side default (serialized as an
//     explicit JSON null),
//   - Set assigns a new value.
//
// The three states are distinct from one another and from any legitimate
// value of T; in particular, Set with T's zero value is not the same as
// the unchanged state.
type Update[T any] struct {
	state updateState
	value T
}

// Set returns an Update that assigns the given value.
func Set[T any](value T) Update[T] {
	return Update[T]{state: updateSet, value: value}
}

// Reset returns an Update that resets the field to its server default.
func Reset[T any]() Update[T] {
	return Update[T]{state: updateReset}
}

// IsSet reports whether the update assigns a value.
func (u Update[T]) IsSet() bool { return u.state == updateSet }

// IsReset reports whether the update resets the field to its default.
func (u Update[T]) IsReset() bool { return u.state == updateReset }

// IsUnchanged reports whether the update leaves the field untouched.
func (u Update[T]) IsUnchanged() bool { return u.state == updateUnchanged }

// Value returns the assigned value. It is only meaningful when IsSet
// reports true; otherwise the zero value of T is returned.
func (u Update[T]) Value() T { return u.value }

// MtBatchSmsUpdate is the closed set of batch update descriptions. Its
// only implementations are MtBatchTextSmsUpdate and
// MtBatchBinarySmsUpdate; the variant chosen must match the variant of
// the batch being updated.
type MtBatchSmsUpdate interface {
	mtBatchSmsUpdate()
}

// MtBatchTextSmsUpdate describes updates to a textual batch. Fields of
// type Update carry three-state semantics; the remaining fields follow
// the usual omit-when-empty rule. Recipient changes are expressed as
// separate insertion and removal sets rather than a replacement set.
type MtBatchTextSmsUpdate struct {
	// RecipientInsertions holds MSISDNs to add to the batch.
	RecipientInsertions []string

	// RecipientRemovals holds MSISDNs to remove from the batch.
	RecipientRemovals []string

	// Sender replaces the originating address when non-empty.
	Sender string

	DeliveryReport Update[ReportType]
	SendAt         Update[time.Time]
	ExpireAt       Update[time.Time]
	CallbackURL    Update[string]

	// Body replaces the message text or template when non-empty.
	Body string

	Parameters Update[map[string]map[string]string]
}

func (*MtBatchTextSmsUpdate) mtBatchSmsUpdate() {}

// MtBatchBinarySmsUpdate describes updates to a binary batch.
type MtBatchBinarySmsUpdate struct {
	RecipientInsertions []string
	RecipientRemovals   []string
	Sender              string

	DeliveryReport Update[ReportType]
	SendAt         Update[time.Time]
	ExpireAt       Update[time.Time]
	CallbackURL    Update[string]

	// Body replaces the binary message body when non-empty.
	Body []byte

	// UDH replaces the User Data Header when non-empty.
	UDH []byte
}

func (*MtBatchBinarySmsUpdate) mtBatchSmsUpdate() {}
