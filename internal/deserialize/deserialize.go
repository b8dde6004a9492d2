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

// Package deserialize converts XMS response bodies into api value types.
// All functions are pure and safe for concurrent use.
//
// Parsing is strict: a missing required field, an unrecognized "type"
// discriminator, a malformed timestamp, or malformed base64/hex data is a
// protocol error, never a silent default. Every error is an
// *xmserror.UnexpectedResponseError embedding the offending response body
// for debugging.
//
// The wire structs in this file use pointer fields so that an absent
// field is distinguishable from a present zero value.
package deserialize

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/clxcommunications/sdk-xms-go/xms/api"
	"github.com/clxcommunications/sdk-xms-go/xmserror"
)

func unexpected(body []byte, format string, args ...any) error {
	return &xmserror.UnexpectedResponseError{
		Message:  fmt.Sprintf(format, args...),
		HTTPBody: string(body),
	}
}

// parseTime parses a strict ISO-8601 timestamp. Both "Z" and numeric
// offsets are accepted; a timestamp without zone designator is rejected.
func parseTime(body []byte, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, unexpected(body, "invalid timestamp %q", s)
	}
	return t, nil
}

func parseOptTime(body []byte, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseTime(body, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// decodeBase64 decodes a base64 message body. Some encoders emit trailing
// newlines or wrapped lines, so embedded whitespace is stripped first.
func decodeBase64(body []byte, s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	b, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, unexpected(body, "invalid base64 body %q", s)
	}
	return b, nil
}

func decodeHex(body []byte, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, unexpected(body, "invalid hex UDH %q", s)
	}
	return b, nil
}

// sortedSet collapses a wire array into a sorted duplicate-free set.
func sortedSet(ss []string) []string {
	out := slices.Clone(ss)
	slices.Sort(out)
	return slices.Compact(out)
}

type batchFields struct {
	Type           *string                      `json:"type"`
	ID             *string                      `json:"id"`
	To             []string                     `json:"to"`
	From           *string                      `json:"from"`
	Canceled       *bool                        `json:"canceled"`
	DeliveryReport *string                      `json:"delivery_report"`
	SendAt         *string                      `json:"send_at"`
	ExpireAt       *string                      `json:"expire_at"`
	CreatedAt      *string                      `json:"created_at"`
	ModifiedAt     *string                      `json:"modified_at"`
	CallbackURL    *string                      `json:"callback_url"`
	Body           *string                      `json:"body"`
	UDH            *string                      `json:"udh"`
	Parameters     map[string]map[string]string `json:"parameters"`
}

func batchResultFromFields(body []byte, f *batchFields) (api.MtBatchSmsResult, error) {
	if f.Type == nil {
		return nil, unexpected(body, "missing batch type")
	}
	if f.ID == nil {
		return nil, unexpected(body, `missing required field "id"`)
	}
	if f.To == nil {
		return nil, unexpected(body, `missing required field "to"`)
	}
	if f.From == nil {
		return nil, unexpected(body, `missing required field "from"`)
	}
	if f.Canceled == nil {
		return nil, unexpected(body, `missing required field "canceled"`)
	}

	sendAt, err := parseOptTime(body, f.SendAt)
	if err != nil {
		return nil, err
	}
	expireAt, err := parseOptTime(body, f.ExpireAt)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseOptTime(body, f.CreatedAt)
	if err != nil {
		return nil, err
	}
	modifiedAt, err := parseOptTime(body, f.ModifiedAt)
	if err != nil {
		return nil, err
	}

	var report api.ReportType
	if f.DeliveryReport != nil {
		report = api.ReportType(*f.DeliveryReport)
	}

	var callbackURL string
	if f.CallbackURL != nil {
		callbackURL = *f.CallbackURL
	}

	switch *f.Type {
	case "mt_text":
		if f.Body == nil {
			return nil, unexpected(body, `missing required field "body"`)
		}
		return &api.MtBatchTextSmsResult{
			BatchID:        *f.ID,
			Sender:         *f.From,
			Recipients:     sortedSet(f.To),
			Canceled:       *f.Canceled,
			DeliveryReport: report,
			SendAt:         sendAt,
			ExpireAt:       expireAt,
			CreatedAt:      createdAt,
			ModifiedAt:     modifiedAt,
			CallbackURL:    callbackURL,
			Body:           *f.Body,
			Parameters:     f.Parameters,
		}, nil

	case "mt_binary":
		if f.Body == nil {
			return nil, unexpected(body, `missing required field "body"`)
		}
		if f.UDH == nil {
			return nil, unexpected(body, `missing required field "udh"`)
		}
		rawBody, err := decodeBase64(body, *f.Body)
		if err != nil {
			return nil, err
		}
		udh, err := decodeHex(body, *f.UDH)
		if err != nil {
			return nil, err
		}
		return &api.MtBatchBinarySmsResult{
			BatchID:        *f.ID,
			Sender:         *f.From,
			Recipients:     sortedSet(f.To),
			Canceled:       *f.Canceled,
			DeliveryReport: report,
			SendAt:         sendAt,
			ExpireAt:       expireAt,
			CreatedAt:      createdAt,
			ModifiedAt:     modifiedAt,
			CallbackURL:    callbackURL,
			Body:           rawBody,
			UDH:            udh,
		}, nil

	default:
		return nil, unexpected(body, "received unexpected batch type %q", *f.Type)
	}
}

// BatchResult reads a response carrying a single text or binary batch.
func BatchResult(body []byte) (api.MtBatchSmsResult, error) {
	var f batchFields
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}
	return batchResultFromFields(body, &f)
}

type pageEnvelope struct {
	Page     *int              `json:"page"`
	PageSize *int              `json:"page_size"`
	Count    *int              `json:"count"`
	Batches  []json.RawMessage `json:"batches"`
	Groups   []json.RawMessage `json:"groups"`
	Inbounds []json.RawMessage `json:"inbounds"`
}

// parsePage assembles a typed page from an envelope and its raw content
// elements. The content key differs per listing, so the caller picks the
// element slice out of the envelope.
func parsePage[T any](body []byte, env *pageEnvelope, contentKey string, items []json.RawMessage, decode func(json.RawMessage) (T, error)) (*api.Page[T], error) {
	if env.Page == nil {
		return nil, unexpected(body, `missing required field "page"`)
	}
	if env.PageSize == nil {
		return nil, unexpected(body, `missing required field "page_size"`)
	}
	if env.Count == nil {
		return nil, unexpected(body, `missing required field "count"`)
	}
	if items == nil {
		return nil, unexpected(body, "missing required field %q", contentKey)
	}

	content := make([]T, 0, len(items))
	for _, raw := range items {
		elem, err := decode(raw)
		if err != nil {
			return nil, err
		}
		content = append(content, elem)
	}

	return &api.Page[T]{
		Page:      *env.Page,
		Size:      *env.PageSize,
		TotalSize: *env.Count,
		Content:   content,
	}, nil
}

// BatchesPage reads one page of a batch listing.
func BatchesPage(body []byte) (*api.Page[api.MtBatchSmsResult], error) {
	var env pageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}

	return parsePage(body, &env, "batches", env.Batches, func(raw json.RawMessage) (api.MtBatchSmsResult, error) {
		var f batchFields
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, unexpected(body, "invalid batch element: %v", err)
		}
		return batchResultFromFields(body, &f)
	})
}

// BatchDryRunResult reads a dry-run response.
func BatchDryRunResult(body []byte) (*api.MtBatchDryRunResult, error) {
	var f struct {
		NumberOfRecipients *int `json:"number_of_recipients"`
		NumberOfMessages   *int `json:"number_of_messages"`
		PerRecipient       []struct {
			Recipient     *string `json:"recipient"`
			NumberOfParts *int    `json:"number_of_parts"`
			Body          *string `json:"body"`
			Encoding      *string `json:"encoding"`
		} `json:"per_recipient"`
	}
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}

	if f.NumberOfRecipients == nil {
		return nil, unexpected(body, `missing required field "number_of_recipients"`)
	}
	if f.NumberOfMessages == nil {
		return nil, unexpected(body, `missing required field "number_of_messages"`)
	}

	result := &api.MtBatchDryRunResult{
		NumberOfRecipients: *f.NumberOfRecipients,
		NumberOfMessages:   *f.NumberOfMessages,
	}

	for _, r := range f.PerRecipient {
		if r.Recipient == nil || r.NumberOfParts == nil || r.Body == nil || r.Encoding == nil {
			return nil, unexpected(body, "incomplete per-recipient dry-run entry")
		}
		result.PerRecipient = append(result.PerRecipient, api.DryRunPerRecipient{
			Recipient:     *r.Recipient,
			NumberOfParts: *r.NumberOfParts,
			Body:          *r.Body,
			Encoding:      api.DryRunEncoding(*r.Encoding),
		})
	}

	return result, nil
}

// BatchDeliveryReport reads an aggregated batch delivery report. The
// envelope must carry the "delivery_report_sms" type tag.
func BatchDeliveryReport(body []byte) (*api.BatchDeliveryReport, error) {
	var f struct {
		Type              *string `json:"type"`
		BatchID           *string `json:"batch_id"`
		TotalMessageCount *int    `json:"total_message_count"`
		Statuses          []struct {
			Code       *int     `json:"code"`
			Status     *string  `json:"status"`
			Count      *int     `json:"count"`
			Recipients []string `json:"recipients"`
		} `json:"statuses"`
	}
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}

	if f.Type == nil || *f.Type != "delivery_report_sms" {
		return nil, unexpected(body, "expected delivery report")
	}
	if f.BatchID == nil {
		return nil, unexpected(body, `missing required field "batch_id"`)
	}
	if f.TotalMessageCount == nil {
		return nil, unexpected(body, `missing required field "total_message_count"`)
	}
	if f.Statuses == nil {
		return nil, unexpected(body, `missing required field "statuses"`)
	}

	result := &api.BatchDeliveryReport{
		BatchID:           *f.BatchID,
		TotalMessageCount: *f.TotalMessageCount,
		Statuses:          make([]api.BatchDeliveryReportStatus, 0, len(f.Statuses)),
	}

	for _, s := range f.Statuses {
		if s.Code == nil || s.Status == nil || s.Count == nil {
			return nil, unexpected(body, "incomplete delivery report status bucket")
		}
		result.Statuses = append(result.Statuses, api.BatchDeliveryReportStatus{
			Code:       *s.Code,
			Status:     api.DeliveryStatus(*s.Status),
			Count:      *s.Count,
			Recipients: sortedSet(s.Recipients),
		})
	}

	return result, nil
}

// BatchRecipientDeliveryReport reads a single-recipient delivery report.
// The envelope must carry the "recipient_delivery_report_sms" type tag.
func BatchRecipientDeliveryReport(body []byte) (*api.BatchRecipientDeliveryReport, error) {
	var f struct {
		Type             *string `json:"type"`
		BatchID          *string `json:"batch_id"`
		Recipient        *string `json:"recipient"`
		Code             *int    `json:"code"`
		Status           *string `json:"status"`
		StatusMessage    *string `json:"status_message"`
		Operator         *string `json:"operator"`
		At               *string `json:"at"`
		OperatorStatusAt *string `json:"operator_status_at"`
	}
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}

	if f.Type == nil || *f.Type != "recipient_delivery_report_sms" {
		return nil, unexpected(body, "expected recipient delivery report")
	}
	if f.BatchID == nil {
		return nil, unexpected(body, `missing required field "batch_id"`)
	}
	if f.Recipient == nil {
		return nil, unexpected(body, `missing required field "recipient"`)
	}
	if f.Code == nil {
		return nil, unexpected(body, `missing required field "code"`)
	}
	if f.Status == nil {
		return nil, unexpected(body, `missing required field "status"`)
	}
	if f.At == nil {
		return nil, unexpected(body, `missing required field "at"`)
	}

	statusAt, err := parseTime(body, *f.At)
	if err != nil {
		return nil, err
	}
	operatorStatusAt, err := parseOptTime(body, f.OperatorStatusAt)
	if err != nil {
		return nil, err
	}

	result := &api.BatchRecipientDeliveryReport{
		BatchID:          *f.BatchID,
		Recipient:        *f.Recipient,
		Code:             *f.Code,
		Status:           api.DeliveryStatus(*f.Status),
		StatusAt:         statusAt,
		OperatorStatusAt: operatorStatusAt,
	}

	if f.StatusMessage != nil {
		result.StatusMessage = *f.StatusMessage
	}
	if f.Operator != nil {
		result.Operator = *f.Operator
	}

	return result, nil
}

// Error reads the structured error body of a rejected request.
func Error(body []byte) (*api.Error, error) {
	var f struct {
		Code *string `json:"code"`
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}

	if f.Code == nil || f.Text == nil {
		return nil, unexpected(body, "malformed error body")
	}

	return &api.Error{Code: *f.Code, Text: *f.Text}, nil
}

type keywordFields struct {
	FirstWord  *string `json:"first_word"`
	SecondWord *string `json:"second_word"`
}

type autoUpdateFields struct {
	To     *string        `json:"to"`
	Add    *keywordFields `json:"add"`
	Remove *keywordFields `json:"remove"`
}

func autoUpdateFromFields(body []byte, f *autoUpdateFields) (*api.GroupAutoUpdate, error) {
	if f.To == nil {
		return nil, unexpected(body, `missing required field "to" in auto-update`)
	}

	au := &api.GroupAutoUpdate{Recipient: *f.To}

	pair := func(kw *keywordFields) api.KeywordPair {
		var p api.KeywordPair
		if kw == nil {
			return p
		}
		if kw.FirstWord != nil {
			p.FirstWord = *kw.FirstWord
		}
		if kw.SecondWord != nil {
			p.SecondWord = *kw.SecondWord
		}
		return p
	}

	au.Add = pair(f.Add)
	au.Remove = pair(f.Remove)

	return au, nil
}

type groupFields struct {
	ID          *string           `json:"id"`
	Name        *string           `json:"name"`
	Size        *int              `json:"size"`
	ChildGroups []string          `json:"child_groups"`
	AutoUpdate  *autoUpdateFields `json:"auto_update"`
	CreatedAt   *string           `json:"created_at"`
	ModifiedAt  *string           `json:"modified_at"`
}

func groupResultFromFields(body []byte, f *groupFields) (*api.GroupResult, error) {
	if f.ID == nil {
		return nil, unexpected(body, `missing required field "id"`)
	}
	if f.Size == nil {
		return nil, unexpected(body, `missing required field "size"`)
	}
	if f.ChildGroups == nil {
		return nil, unexpected(body, `missing required field "child_groups"`)
	}
	if f.CreatedAt == nil {
		return nil, unexpected(body, `missing required field "created_at"`)
	}
	if f.ModifiedAt == nil {
		return nil, unexpected(body, `missing required field "modified_at"`)
	}

	createdAt, err := parseTime(body, *f.CreatedAt)
	if err != nil {
		return nil, err
	}
	modifiedAt, err := parseTime(body, *f.ModifiedAt)
	if err != nil {
		return nil, err
	}

	result := &api.GroupResult{
		GroupID:     *f.ID,
		Size:        *f.Size,
		ChildGroups: sortedSet(f.ChildGroups),
		CreatedAt:   createdAt,
		ModifiedAt:  modifiedAt,
	}

	if f.Name != nil {
		result.Name = *f.Name
	}

	if f.AutoUpdate != nil {
		au, err := autoUpdateFromFields(body, f.AutoUpdate)
		if err != nil {
			return nil, err
		}
		result.AutoUpdate = au
	}

	return result, nil
}

// GroupResult reads a response carrying a single group.
func GroupResult(body []byte) (*api.GroupResult, error) {
	var f groupFields
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}
	return groupResultFromFields(body, &f)
}

// GroupsPage reads one page of a group listing.
func GroupsPage(body []byte) (*api.Page[*api.GroupResult], error) {
	var env pageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}

	return parsePage(body, &env, "groups", env.Groups, func(raw json.RawMessage) (*api.GroupResult, error) {
		var f groupFields
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, unexpected(body, "invalid group element: %v", err)
		}
		return groupResultFromFields(body, &f)
	})
}

// GroupMembers reads a response carrying a set of group member MSISDNs.
func GroupMembers(body []byte) ([]string, error) {
	var members []string
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}
	return sortedSet(members), nil
}

// Tags reads a response carrying a tag set.
func Tags(body []byte) ([]string, error) {
	var f struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}

	if f.Tags == nil {
		return nil, unexpected(body, `missing required field "tags"`)
	}

	return sortedSet(f.Tags), nil
}

type moFields struct {
	Type       *string `json:"type"`
	ID         *string `json:"id"`
	To         *string `json:"to"`
	From       *string `json:"from"`
	Operator   *string `json:"operator"`
	SentAt     *string `json:"sent_at"`
	ReceivedAt *string `json:"received_at"`
	Body       *string `json:"body"`
	Keyword    *string `json:"keyword"`
	UDH        *string `json:"udh"`
}

func moSmsFromFields(body []byte, f *moFields) (api.MoSms, error) {
	if f.Type == nil {
		return nil, unexpected(body, "missing inbound type")
	}
	if f.ID == nil {
		return nil, unexpected(body, `missing required field "id"`)
	}
	if f.To == nil {
		return nil, unexpected(body, `missing required field "to"`)
	}
	if f.From == nil {
		return nil, unexpected(body, `missing required field "from"`)
	}
	if f.ReceivedAt == nil {
		return nil, unexpected(body, `missing required field "received_at"`)
	}

	receivedAt, err := parseTime(body, *f.ReceivedAt)
	if err != nil {
		return nil, err
	}
	sentAt, err := parseOptTime(body, f.SentAt)
	if err != nil {
		return nil, err
	}

	var operator string
	if f.Operator != nil {
		operator = *f.Operator
	}

	switch *f.Type {
	case "mo_text":
		if f.Body == nil {
			return nil, unexpected(body, `missing required field "body"`)
		}
		result := &api.MoTextSms{
			MessageID:  *f.ID,
			Recipient:  *f.To,
			Sender:     *f.From,
			Operator:   operator,
			SentAt:     sentAt,
			ReceivedAt: receivedAt,
			Body:       *f.Body,
		}
		if f.Keyword != nil {
			result.Keyword = *f.Keyword
		}
		return result, nil

	case "mo_binary":
		if f.Body == nil {
			return nil, unexpected(body, `missing required field "body"`)
		}
		if f.UDH == nil {
			return nil, unexpected(body, `missing required field "udh"`)
		}
		rawBody, err := decodeBase64(body, *f.Body)
		if err != nil {
			return nil, err
		}
		udh, err := decodeHex(body, *f.UDH)
		if err != nil {
			return nil, err
		}
		return &api.MoBinarySms{
			MessageID:  *f.ID,
			Recipient:  *f.To,
			Sender:     *f.From,
			Operator:   operator,
			SentAt:     sentAt,
			ReceivedAt: receivedAt,
			Body:       rawBody,
			UDH:        udh,
		}, nil

	default:
		return nil, unexpected(body, "received unexpected inbound type %q", *f.Type)
	}
}

// MoSms reads a response carrying a single inbound message.
func MoSms(body []byte) (api.MoSms, error) {
	var f moFields
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}
	return moSmsFromFields(body, &f)
}

// InboundsPage reads one page of an inbound message listing.
func InboundsPage(body []byte) (*api.Page[api.MoSms], error) {
	var env pageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, unexpected(body, "invalid JSON: %v", err)
	}

	return parsePage(body, &env, "inbounds", env.Inbounds, func(raw json.RawMessage) (api.MoSms, error) {
		var f moFields
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, unexpected(body, "invalid inbound element: %v", err)
		}
		return moSmsFromFields(body, &f)
	})
}
