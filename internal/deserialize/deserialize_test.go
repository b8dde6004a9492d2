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

package deserialize

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clxcommunications/sdk-xms-go/xms/api"
	"github.com/clxcommunications/sdk-xms-go/xmserror"
)

func tp(t time.Time) *time.Time { return &t }

func TestBatchResultText(t *testing.T) {
	body := []byte(`{
		"type": "mt_text",
		"id": "3SD49KIOW8lL1Z5E",
		"from": "12345",
		"to": ["987654321", "123456789"],
		"body": "Hello, ${name}!",
		"parameters": {
			"name": {
				"123456789": "Joe",
				"default": "you"
			}
		},
		"canceled": false,
		"delivery_report": "none",
		"send_at": "2016-12-01T11:03:13.192Z",
		"expire_at": "2016-12-04T11:03:13.192Z",
		"created_at": "2016-12-01T11:03:13.192Z",
		"modified_at": "2016-12-01T11:03:13.192Z",
		"callback_url": "https://example.com/callback"
	}`)

	result, err := BatchResult(body)
	require.NoError(t, err)

	text, ok := result.(*api.MtBatchTextSmsResult)
	require.True(t, ok, "expected a text batch, got %T", result)

	assert.Equal(t, &api.MtBatchTextSmsResult{
		BatchID:        "3SD49KIOW8lL1Z5E",
		Sender:         "12345",
		Recipients:     []string{"123456789", "987654321"},
		Canceled:       false,
		DeliveryReport: api.ReportTypeNone,
		SendAt:         tp(time.Date(2016, 12, 1, 11, 3, 13, 192000000, time.UTC)),
		ExpireAt:       tp(time.Date(2016, 12, 4, 11, 3, 13, 192000000, time.UTC)),
		CreatedAt:      tp(time.Date(2016, 12, 1, 11, 3, 13, 192000000, time.UTC)),
		ModifiedAt:     tp(time.Date(2016, 12, 1, 11, 3, 13, 192000000, time.UTC)),
		CallbackURL:    "https://example.com/callback",
		Body:           "Hello, ${name}!",
		Parameters: map[string]map[string]string{
			"name": {"123456789": "Joe", "default": "you"},
		},
	}, text)
	assert.Equal(t, "3SD49KIOW8lL1Z5E", result.ID())
}

func TestBatchResultBinary(t *testing.T) {
	body := []byte(`{
		"type": "mt_binary",
		"id": "4G4OmwztSJbVL2bl",
		"from": "12345",
		"to": ["987654321"],
		"body": "AAECAw==",
		"udh": "fffefd",
		"canceled": true
	}`)

	result, err := BatchResult(body)
	require.NoError(t, err)

	bin, ok := result.(*api.MtBatchBinarySmsResult)
	require.True(t, ok, "expected a binary batch, got %T", result)

	assert.Equal(t, "4G4OmwztSJbVL2bl", bin.BatchID)
	assert.Equal(t, []byte{0, 1, 2, 3}, bin.Body)
	assert.Equal(t, []byte{0xff, 0xfe, 0xfd}, bin.UDH)
	assert.True(t, bin.Canceled)
	assert.Nil(t, bin.SendAt)
}

func TestBatchResultUnknownType(t *testing.T) {
	body := []byte(`{"type": "mt_carrier_pigeon", "id": "X", "from": "1", "to": ["2"], "canceled": false}`)

	_, err := BatchResult(body)

	var uerr *xmserror.UnexpectedResponseError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Message, "mt_carrier_pigeon")
	assert.Equal(t, string(body), uerr.HTTPBody)
}

func TestBatchResultMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no type", `{"id": "X1", "from": "1", "to": ["2"], "canceled": false, "body": "hi"}`},
		{"no id", `{"type": "mt_text", "from": "1", "to": ["2"], "canceled": false, "body": "hi"}`},
		{"no to", `{"type": "mt_text", "id": "X1", "from": "1", "canceled": false, "body": "hi"}`},
		{"no from", `{"type": "mt_text", "id": "X1", "to": ["2"], "canceled": false, "body": "hi"}`},
		{"no canceled", `{"type": "mt_text", "id": "X1", "from": "1", "to": ["2"], "body": "hi"}`},
		{"no body", `{"type": "mt_text", "id": "X1", "from": "1", "to": ["2"], "canceled": false}`},
		{"no udh", `{"type": "mt_binary", "id": "X1", "from": "1", "to": ["2"], "canceled": false, "body": "AAECAw=="}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BatchResult([]byte(tt.body))

			var uerr *xmserror.UnexpectedResponseError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tt.body, uerr.HTTPBody)
		})
	}
}

func TestBatchResultInvalidTimestamp(t *testing.T) {
	// A timestamp without zone designator is a protocol error.
	body := []byte(`{"type": "mt_text", "id": "X1", "from": "1", "to": ["2"], "canceled": false, "body": "hi", "send_at": "2016-12-01T11:03:13"}`)

	_, err := BatchResult(body)

	var uerr *xmserror.UnexpectedResponseError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Message, "2016-12-01T11:03:13")
}

func TestBatchResultInvalidJSON(t *testing.T) {
	_, err := BatchResult([]byte(`{not json`))

	var uerr *xmserror.UnexpectedResponseError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, `{not json`, uerr.HTTPBody)
}

func TestBatchesPage(t *testing.T) {
	body := []byte(`{
		"page": 0,
		"page_size": 10,
		"count": 2,
		"batches": [
			{"type": "mt_text", "id": "A1", "from": "1", "to": ["2"], "canceled": false, "body": "one"},
			{"type": "mt_binary", "id": "B2", "from": "1", "to": ["3"], "canceled": false, "body": "AAECAw==", "udh": "fffefd"}
		]
	}`)

	page, err := BatchesPage(body)
	require.NoError(t, err)

	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 2, page.TotalSize)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "A1", page.Content[0].ID())
	assert.Equal(t, "B2", page.Content[1].ID())
	assert.IsType(t, &api.MtBatchTextSmsResult{}, page.Content[0])
	assert.IsType(t, &api.MtBatchBinarySmsResult{}, page.Content[1])
}

func TestBatchesPageEmpty(t *testing.T) {
	page, err := BatchesPage([]byte(`{"page": 3, "page_size": 10, "count": 2, "batches": []}`))
	require.NoError(t, err)

	assert.Equal(t, 3, page.Page)
	assert.Empty(t, page.Content)
}

func TestBatchesPageMissingEnvelopeFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no page", `{"page_size": 10, "count": 0, "batches": []}`},
		{"no page_size", `{"page": 0, "count": 0, "batches": []}`},
		{"no count", `{"page": 0, "page_size": 10, "batches": []}`},
		{"no batches", `{"page": 0, "page_size": 10, "count": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BatchesPage([]byte(tt.body))

			var uerr *xmserror.UnexpectedResponseError
			require.ErrorAs(t, err, &uerr)
		})
	}
}

func TestBatchDryRunResult(t *testing.T) {
	body := []byte(`{
		"number_of_recipients": 2,
		"number_of_messages": 3,
		"per_recipient": [
			{"recipient": "123456789", "number_of_parts": 2, "body": "Hello, Joe!", "encoding": "text"},
			{"recipient": "987654321", "number_of_parts": 1, "body": "Hello, you!", "encoding": "unicode"}
		]
	}`)

	result, err := BatchDryRunResult(body)
	require.NoError(t, err)

	assert.Equal(t, &api.MtBatchDryRunResult{
		NumberOfRecipients: 2,
		NumberOfMessages:   3,
		PerRecipient: []api.DryRunPerRecipient{
			{Recipient: "123456789", NumberOfParts: 2, Body: "Hello, Joe!", Encoding: api.DryRunEncodingText},
			{Recipient: "987654321", NumberOfParts: 1, Body: "Hello, you!", Encoding: api.DryRunEncodingUnicode},
		},
	}, result)
}

func TestBatchDryRunResultWithoutPerRecipient(t *testing.T) {
	result, err := BatchDryRunResult([]byte(`{"number_of_recipients": 10, "number_of_messages": 10}`))
	require.NoError(t, err)

	assert.Equal(t, 10, result.NumberOfRecipients)
	assert.Empty(t, result.PerRecipient)
}

func TestBatchDeliveryReport(t *testing.T) {
	body := []byte(`{
		"type": "delivery_report_sms",
		"batch_id": "3SD49KIOW8lL1Z5E",
		"total_message_count": 2,
		"statuses": [
			{"code": 0, "status": "Delivered", "count": 1, "recipients": ["987654321", "123456789"]},
			{"code": 11, "status": "Failed", "count": 1}
		]
	}`)

	report, err := BatchDeliveryReport(body)
	require.NoError(t, err)

	assert.Equal(t, &api.BatchDeliveryReport{
		BatchID:           "3SD49KIOW8lL1Z5E",
		TotalMessageCount: 2,
		Statuses: []api.BatchDeliveryReportStatus{
			{Code: 0, Status: api.DeliveryStatusDelivered, Count: 1, Recipients: []string{"123456789", "987654321"}},
			{Code: 11, Status: api.DeliveryStatusFailed, Count: 1},
		},
	}, report)
}

func TestBatchDeliveryReportRejectsWrongType(t *testing.T) {
	body := []byte(`{"type": "mt_text", "batch_id": "X", "total_message_count": 0, "statuses": []}`)

	_, err := BatchDeliveryReport(body)

	var uerr *xmserror.UnexpectedResponseError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Message, "delivery report")
}

func TestBatchRecipientDeliveryReport(t *testing.T) {
	body := []byte(`{
		"type": "recipient_delivery_report_sms",
		"batch_id": "3SD49KIOW8lL1Z5E",
		"recipient": "123456789",
		"code": 11,
		"status": "Failed",
		"status_message": "no such recipient",
		"operator": "31101",
		"at": "2016-10-02T09:34:28.542Z",
		"operator_status_at": "2016-10-02T09:34:29Z"
	}`)

	report, err := BatchRecipientDeliveryReport(body)
	require.NoError(t, err)

	assert.Equal(t, &api.BatchRecipientDeliveryReport{
		BatchID:          "3SD49KIOW8lL1Z5E",
		Recipient:        "123456789",
		Code:             11,
		Status:           api.DeliveryStatusFailed,
		StatusMessage:    "no such recipient",
		Operator:         "31101",
		StatusAt:         time.Date(2016, 10, 2, 9, 34, 28, 542000000, time.UTC),
		OperatorStatusAt: tp(time.Date(2016, 10, 2, 9, 34, 29, 0, time.UTC)),
	}, report)
}

func TestBatchRecipientDeliveryReportMinimal(t *testing.T) {
	body := []byte(`{
		"type": "recipient_delivery_report_sms",
		"batch_id": "X",
		"recipient": "123456789",
		"code": 0,
		"status": "Delivered",
		"at": "2016-10-02T09:34:28Z"
	}`)

	report, err := BatchRecipientDeliveryReport(body)
	require.NoError(t, err)

	assert.Empty(t, report.StatusMessage)
	assert.Empty(t, report.Operator)
	assert.Nil(t, report.OperatorStatusAt)
}

func TestError(t *testing.T) {
	apiErr, err := Error([]byte(`{"code": "yes_this_is_code", "text": "This is a text"}`))
	require.NoError(t, err)

	assert.Equal(t, &api.Error{Code: "yes_this_is_code", Text: "This is a text"}, apiErr)
}

func TestErrorMalformed(t *testing.T) {
	_, err := Error([]byte(`{"code": "oops"}`))

	var uerr *xmserror.UnexpectedResponseError
	require.ErrorAs(t, err, &uerr)
}

func TestGroupResult(t *testing.T) {
	body := []byte(`{
		"id": "4cldmgEdAcBfcHW3",
		"name": "rah-test",
		"size": 1,
		"child_groups": [],
		"auto_update": {
			"to": "12345",
			"add": {"first_word": "hello"},
			"remove": {"first_word": "goodbye", "second_word": "world"}
		},
		"created_at": "2016-12-08T12:38:19.962Z",
		"modified_at": "2016-12-10T10:15:00Z"
	}`)

	group, err := GroupResult(body)
	require.NoError(t, err)

	assert.Equal(t, &api.GroupResult{
		GroupID:     "4cldmgEdAcBfcHW3",
		Name:        "rah-test",
		Size:        1,
		ChildGroups: []string{},
		AutoUpdate: &api.GroupAutoUpdate{
			Recipient: "12345",
			Add:       api.KeywordPair{FirstWord: "hello"},
			Remove:    api.KeywordPair{FirstWord: "goodbye", SecondWord: "world"},
		},
		CreatedAt:  time.Date(2016, 12, 8, 12, 38, 19, 962000000, time.UTC),
		ModifiedAt: time.Date(2016, 12, 10, 10, 15, 0, 0, time.UTC),
	}, group)
}

func TestGroupResultAutoUpdateWithoutKeywords(t *testing.T) {
	body := []byte(`{
		"id": "G1",
		"size": 0,
		"child_groups": [],
		"auto_update": {"to": "12345"},
		"created_at": "2016-12-08T12:38:19Z",
		"modified_at": "2016-12-08T12:38:19Z"
	}`)

	group, err := GroupResult(body)
	require.NoError(t, err)

	require.NotNil(t, group.AutoUpdate)
	assert.Equal(t, "12345", group.AutoUpdate.Recipient)
	assert.True(t, group.AutoUpdate.Add.IsZero())
	assert.True(t, group.AutoUpdate.Remove.IsZero())
}

func TestGroupResultMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no id", `{"size": 0, "child_groups": [], "created_at": "2016-12-08T12:38:19Z", "modified_at": "2016-12-08T12:38:19Z"}`},
		{"no size", `{"id": "G1", "child_groups": [], "created_at": "2016-12-08T12:38:19Z", "modified_at": "2016-12-08T12:38:19Z"}`},
		{"no child_groups", `{"id": "G1", "size": 0, "created_at": "2016-12-08T12:38:19Z", "modified_at": "2016-12-08T12:38:19Z"}`},
		{"no created_at", `{"id": "G1", "size": 0, "child_groups": [], "modified_at": "2016-12-08T12:38:19Z"}`},
		{"no modified_at", `{"id": "G1", "size": 0, "child_groups": [], "created_at": "2016-12-08T12:38:19Z"}`},
		{"auto_update without to", `{"id": "G1", "size": 0, "child_groups": [], "auto_update": {}, "created_at": "2016-12-08T12:38:19Z", "modified_at": "2016-12-08T12:38:19Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GroupResult([]byte(tt.body))

			var uerr *xmserror.UnexpectedResponseError
			require.ErrorAs(t, err, &uerr)
		})
	}
}

func TestGroupsPage(t *testing.T) {
	body := []byte(`{
		"page": 0,
		"page_size": 10,
		"count": 1,
		"groups": [
			{"id": "G1", "name": "g", "size": 2, "child_groups": ["G2"], "created_at": "2016-12-08T12:38:19Z", "modified_at": "2016-12-08T12:38:19Z"}
		]
	}`)

	page, err := GroupsPage(body)
	require.NoError(t, err)

	require.Len(t, page.Content, 1)
	assert.Equal(t, "G1", page.Content[0].GroupID)
	assert.Equal(t, []string{"G2"}, page.Content[0].ChildGroups)
}

func TestGroupMembers(t *testing.T) {
	members, err := GroupMembers([]byte(`["987654321", "123456789", "987654321"]`))
	require.NoError(t, err)

	assert.Equal(t, []string{"123456789", "987654321"}, members)
}

func TestTags(t *testing.T) {
	tags, err := Tags([]byte(`{"tags": ["tag2", "tag1", "tag2"]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"tag1", "tag2"}, tags)
}

func TestTagsMissing(t *testing.T) {
	_, err := Tags([]byte(`{}`))

	var uerr *xmserror.UnexpectedResponseError
	require.ErrorAs(t, err, &uerr)
}

func TestMoTextSms(t *testing.T) {
	body := []byte(`{
		"type": "mo_text",
		"id": "b88b4cee-168f-4721-bbf9-cd748dd93b60",
		"to": "54321",
		"from": "123456789",
		"operator": "31110",
		"sent_at": "2016-12-03T16:24:00Z",
		"received_at": "2016-12-05T16:24:23.123Z",
		"body": "Hello, world!",
		"keyword": "kivord"
	}`)

	mo, err := MoSms(body)
	require.NoError(t, err)

	text, ok := mo.(*api.MoTextSms)
	require.True(t, ok, "expected a text message, got %T", mo)

	assert.Equal(t, &api.MoTextSms{
		MessageID:  "b88b4cee-168f-4721-bbf9-cd748dd93b60",
		Recipient:  "54321",
		Sender:     "123456789",
		Operator:   "31110",
		SentAt:     tp(time.Date(2016, 12, 3, 16, 24, 0, 0, time.UTC)),
		ReceivedAt: time.Date(2016, 12, 5, 16, 24, 23, 123000000, time.UTC),
		Body:       "Hello, world!",
		Keyword:    "kivord",
	}, text)
	assert.Equal(t, "b88b4cee-168f-4721-bbf9-cd748dd93b60", mo.ID())
}

func TestMoBinarySms(t *testing.T) {
	// Base64 with a trailing newline is tolerated.
	body := []byte(`{
		"type": "mo_binary",
		"id": "mo-bin-1",
		"to": "54321",
		"from": "123456789",
		"received_at": "2016-12-05T16:24:23Z",
		"body": "AAECAw==\n",
		"udh": "fffefd"
	}`)

	mo, err := MoSms(body)
	require.NoError(t, err)

	bin, ok := mo.(*api.MoBinarySms)
	require.True(t, ok, "expected a binary message, got %T", mo)

	assert.Equal(t, []byte{0, 1, 2, 3}, bin.Body)
	assert.Equal(t, []byte{0xff, 0xfe, 0xfd}, bin.UDH)
	assert.Nil(t, bin.SentAt)
}

func TestMoSmsMissingReceivedAt(t *testing.T) {
	body := []byte(`{"type": "mo_text", "id": "M1", "to": "54321", "from": "123456789", "body": "hi"}`)

	_, err := MoSms(body)

	var uerr *xmserror.UnexpectedResponseError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Message, "received_at")
}

func TestMoSmsUnknownType(t *testing.T) {
	body := []byte(`{"type": "mo_smoke_signal", "id": "M1", "to": "1", "from": "2", "received_at": "2016-12-05T16:24:23Z"}`)

	_, err := MoSms(body)

	var uerr *xmserror.UnexpectedResponseError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Message, "mo_smoke_signal")
}

func TestInboundsPage(t *testing.T) {
	body := []byte(`{
		"page": 0,
		"page_size": 10,
		"count": 2,
		"inbounds": [
			{"type": "mo_text", "id": "M1", "to": "54321", "from": "1", "received_at": "2016-12-05T16:24:23Z", "body": "one"},
			{"type": "mo_binary", "id": "M2", "to": "54321", "from": "2", "received_at": "2016-12-05T16:24:23Z", "body": "AAECAw==", "udh": "fffefd"}
		]
	}`)

	page, err := InboundsPage(body)
	require.NoError(t, err)

	require.Len(t, page.Content, 2)
	assert.Equal(t, "M1", page.Content[0].ID())
	assert.Equal(t, "M2", page.Content[1].ID())
}

func TestDeserializeErrorsAreUnexpectedResponse(t *testing.T) {
	// Every parse failure surfaces as the same error type so callers can
	// handle protocol violations uniformly.
	_, err := GroupResult([]byte(`[]`))
	var uerr *xmserror.UnexpectedResponseError
	assert.True(t, errors.As(err, &uerr))
}
