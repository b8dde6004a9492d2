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

// MoSms is the closed set of mobile-originated message variants. Its only
// implementations are MoTextSms and MoBinarySms, selected by the "type"
// discriminator on the wire.
type MoSms interface {
	moSms()

	// ID returns the server-assigned message identifier.
	ID() string
}

// MoTextSms is a textual mobile-originated message.
type MoTextSms struct {
	MessageID string `json:"id"`

	// Recipient is the inbound address the message was sent to, typically
	// a short code or long number.
	Recipient string `json:"to"`

	// Sender is the originating MSISDN.
	Sender string `json:"from"`

	// Operator identifies the originating operator, when known.
	Operator string `json:"operator,omitempty"`

	// SentAt is the time the message was sent, when reported.
	SentAt *time.Time `json:"sent_at,omitempty"`

	// ReceivedAt is the time the system received the message.
	ReceivedAt time.Time `json:"received_at"`

	Body string `json:"body"`

	// Keyword is the message keyword, when one was extracted.
	Keyword string `json:"keyword,omitempty"`
}

func (*MoTextSms) moSms() {}

// ID returns the server-assigned message identifier.
func (m *MoTextSms) ID() string { return m.MessageID }

// MoBinarySms is a binary mobile-originated message. The body and User
// Data Header are raw bytes.
type MoBinarySms struct {
	MessageID  string     `json:"id"`
	Recipient  string     `json:"to"`
	Sender     string     `json:"from"`
	Operator   string     `json:"operator,omitempty"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	ReceivedAt time.Time  `json:"received_at"`

	Body []byte `json:"body"`
	UDH  []byte `json:"udh"`
}

func (*MoBinarySms) moSms() {}

// ID returns the server-assigned message identifier.
func (m *MoBinarySms) ID() string { return m.MessageID }
