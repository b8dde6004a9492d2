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

package xms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clxcommunications/sdk-xms-go/internal/deserialize"
	"github.com/clxcommunications/sdk-xms-go/internal/serialize"
	"github.com/clxcommunications/sdk-xms-go/xms/api"
	"github.com/clxcommunications/sdk-xms-go/xmserror"
)

const (
	// DefaultEndpoint is the XMS endpoint used unless WithEndpoint
	// overrides it.
	DefaultEndpoint = "https://api.clxcommunications.com/xms"

	// DefaultTimeout bounds each HTTP request made by the default HTTP
	// client.
	DefaultTimeout = 30 * time.Second
)

// Client communicates with the XMS API on behalf of one service plan.
// A Client is safe for concurrent use.
type Client struct {
	servicePlanID string
	token         string
	endpoint      string
	httpClient    *http.Client
	log           logrus.FieldLogger
}

// Option configures a Client created by NewClient.
type Option func(*Client)

// WithEndpoint points the client at a non-default XMS endpoint, for
// example a test server. The endpoint must not include the API version
// prefix.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithHTTPClient replaces the default HTTP client. The replacement is
// used as given; authentication headers are still added per request.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger replaces the default logger. The client logs requests and
// responses at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client for the given service plan, authenticating
// with the given API token.
func NewClient(servicePlanID, token string, opts ...Option) *Client {
	c := &Client{
		servicePlanID: servicePlanID,
		token:         token,
		endpoint:      DefaultEndpoint,
		log:           logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: newTransport(token),
		}
	}

	return c
}

// url builds a complete endpoint URL for the given sub-path.
func (c *Client) url(subPath string) string {
	return c.endpoint + "/v1/" + url.PathEscape(c.servicePlanID) + subPath
}

func (c *Client) batchURL(batchID, subPath string) (string, error) {
	if batchID == "" {
		return "", xmserror.ErrEmptyBatchID
	}
	return c.url("/batches/" + url.PathEscape(batchID) + subPath), nil
}

func (c *Client) groupURL(groupID, subPath string) (string, error) {
	if groupID == "" {
		return "", xmserror.ErrEmptyGroupID
	}
	return c.url("/groups/" + url.PathEscape(groupID) + subPath), nil
}

// do performs one HTTP exchange and returns the raw response body after
// status checking. A non-nil payload is sent as a JSON document.
func (c *Client) do(ctx context.Context, method, requestURL string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, requestURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"method": method,
		"url":    requestURL,
		"status": resp.StatusCode,
	}).Debug("xms request complete")

	if err := c.checkStatus(resp.StatusCode, requestURL, body); err != nil {
		return nil, err
	}

	return body, nil
}

// checkStatus maps a non-2xx HTTP status to a typed error. Any 2xx
// status is accepted.
func (c *Client) checkStatus(status int, requestURL string, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusBadRequest || status == http.StatusForbidden:
		apiErr, err := deserialize.Error(body)
		if err != nil {
			return err
		}
		return &xmserror.ResponseError{Code: apiErr.Code, Text: apiErr.Text}
	case status == http.StatusNotFound:
		return &xmserror.NotFoundError{URL: requestURL}
	case status == http.StatusUnauthorized:
		return &xmserror.UnauthorizedError{
			ServicePlanID: c.servicePlanID,
			Token:         c.token,
		}
	default:
		return &xmserror.UnexpectedResponseError{
			Message:  fmt.Sprintf("unexpected HTTP status %d", status),
			HTTPBody: string(body),
		}
	}
}

// joinSorted renders a filter set as the comma-joined sorted form the
// list endpoints expect.
func joinSorted(values []string) string {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return strings.Join(slices.Compact(sorted), ",")
}

const dateLayout = "2006-01-02"

// CreateTextMessage creates a text message addressed to a single
// recipient. This is a convenience wrapper around CreateBatch.
func (c *Client) CreateTextMessage(ctx context.Context, sender, recipient, body string) (*api.MtBatchTextSmsResult, error) {
	if recipient == "" {
		return nil, xmserror.ErrEmptyRecipient
	}

	result, err := c.CreateBatch(ctx, &api.MtBatchTextSmsCreate{
		Sender:     sender,
		Recipients: []string{recipient},
		Body:       body,
	})
	if err != nil {
		return nil, err
	}

	return result.(*api.MtBatchTextSmsResult), nil
}

// CreateBinaryMessage creates a binary message addressed to a single
// recipient. This is a convenience wrapper around CreateBatch.
func (c *Client) CreateBinaryMessage(ctx context.Context, sender, recipient string, udh, body []byte) (*api.MtBatchBinarySmsResult, error) {
	if recipient == "" {
		return nil, xmserror.ErrEmptyRecipient
	}

	result, err := c.CreateBatch(ctx, &api.MtBatchBinarySmsCreate{
		Sender:     sender,
		Recipients: []string{recipient},
		UDH:        udh,
		Body:       body,
	})
	if err != nil {
		return nil, err
	}

	return result.(*api.MtBatchBinarySmsResult), nil
}

// CreateBatch submits the given batch. The result is a text batch for a
// text create and a binary batch for a binary create.
func (c *Client) CreateBatch(ctx context.Context, batch api.MtBatchSmsCreate) (api.MtBatchSmsResult, error) {
	body, err := c.do(ctx, http.MethodPost, c.url("/batches"), serialize.BatchCreate(batch))
	if err != nil {
		return nil, err
	}
	return deserialize.BatchResult(body)
}

// ReplaceBatch replaces the batch with the given identifier.
func (c *Client) ReplaceBatch(ctx context.Context, batchID string, batch api.MtBatchSmsCreate) (api.MtBatchSmsResult, error) {
	u, err := c.batchURL(batchID, "")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPut, u, serialize.BatchCreate(batch))
	if err != nil {
		return nil, err
	}
	return deserialize.BatchResult(body)
}

// UpdateBatch applies the given update description to the batch with the
// given identifier.
func (c *Client) UpdateBatch(ctx context.Context, batchID string, batch api.MtBatchSmsUpdate) (api.MtBatchSmsResult, error) {
	u, err := c.batchURL(batchID, "")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, u, serialize.BatchUpdate(batch))
	if err != nil {
		return nil, err
	}
	return deserialize.BatchResult(body)
}

// CancelBatch cancels the batch with the given identifier.
func (c *Client) CancelBatch(ctx context.Context, batchID string) error {
	u, err := c.batchURL(batchID, "")
	if err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodDelete, u, nil)
	return err
}

// FetchBatch fetches the batch with the given identifier.
func (c *Client) FetchBatch(ctx context.Context, batchID string) (api.MtBatchSmsResult, error) {
	u, err := c.batchURL(batchID, "")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return deserialize.BatchResult(body)
}

// BatchParams filters a batch listing. The zero value applies no filter.
type BatchParams struct {
	// PageSize is the maximum number of batches per page. Zero uses the
	// server default.
	PageSize int

	// Senders limits the listing to batches from one of these senders.
	Senders []string

	// Tags limits the listing to batches carrying one or more of these
	// tags.
	Tags []string

	// StartDate limits the listing to batches sent at or after this
	// date. The time of day is ignored.
	StartDate time.Time

	// EndDate limits the listing to batches sent before this date. The
	// time of day is ignored.
	EndDate time.Time
}

func (p BatchParams) query(page int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if len(p.Senders) > 0 {
		q.Set("from", joinSorted(p.Senders))
	}
	if len(p.Tags) > 0 {
		q.Set("tags", joinSorted(p.Tags))
	}
	if !p.StartDate.IsZero() {
		q.Set("start_date", p.StartDate.Format(dateLayout))
	}
	if !p.EndDate.IsZero() {
		q.Set("end_date", p.EndDate.Format(dateLayout))
	}
	return q
}

// FetchBatches returns the batches matching the given filter. Calling
// this method performs no network traffic; pages are fetched on demand
// from the returned Pages.
func (c *Client) FetchBatches(params BatchParams) *api.Pages[api.MtBatchSmsResult] {
	return api.NewPages(func(ctx context.Context, page int) (*api.Page[api.MtBatchSmsResult], error) {
		body, err := c.do(ctx, http.MethodGet, c.url("/batches?"+params.query(page).Encode()), nil)
		if err != nil {
			return nil, err
		}
		return deserialize.BatchesPage(body)
	})
}

// CreateBatchDryRun simulates sending the given batch. When
// numRecipients is positive the result includes per-recipient statistics
// for that many recipients.
func (c *Client) CreateBatchDryRun(ctx context.Context, batch api.MtBatchSmsCreate, numRecipients int) (*api.MtBatchDryRunResult, error) {
	subPath := "/batches/dry_run"
	if numRecipients > 0 {
		subPath += "?per_recipient=true&number_of_recipients=" + strconv.Itoa(numRecipients)
	}

	body, err := c.do(ctx, http.MethodPost, c.url(subPath), serialize.BatchCreate(batch))
	if err != nil {
		return nil, err
	}
	return deserialize.BatchDryRunResult(body)
}

// FetchBatchTags fetches the tags associated with the given batch.
func (c *Client) FetchBatchTags(ctx context.Context, batchID string) ([]string, error) {
	u, err := c.batchURL(batchID, "/tags")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return deserialize.Tags(body)
}

// ReplaceBatchTags replaces the tags of the given batch and returns the
// new tag set.
func (c *Client) ReplaceBatchTags(ctx context.Context, batchID string, tags []string) ([]string, error) {
	u, err := c.batchURL(batchID, "/tags")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPut, u, serialize.Tags(tags))
	if err != nil {
		return nil, err
	}
	return deserialize.Tags(body)
}

// UpdateBatchTags adds and removes tags on the given batch and returns
// the updated tag set.
func (c *Client) UpdateBatchTags(ctx context.Context, batchID string, tagsToAdd, tagsToRemove []string) ([]string, error) {
	u, err := c.batchURL(batchID, "/tags")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, u, serialize.TagsUpdate(tagsToAdd, tagsToRemove))
	if err != nil {
		return nil, err
	}
	return deserialize.Tags(body)
}

// DeliveryReportParams filters a batch delivery report. The zero value
// uses the server defaults, which include all statuses and codes.
type DeliveryReportParams struct {
	// Kind selects the report type, ReportTypeFull or ReportTypeSummary.
	// Empty uses the server default.
	Kind api.ReportType

	// Statuses limits the report to these delivery statuses.
	Statuses []api.DeliveryStatus

	// Codes limits the report to these status codes.
	Codes []int
}

func (p DeliveryReportParams) query() string {
	q := url.Values{}
	if p.Kind != "" {
		q.Set("type", string(p.Kind))
	}
	if len(p.Statuses) > 0 {
		ss := make([]string, len(p.Statuses))
		for i, s := range p.Statuses {
			ss[i] = string(s)
		}
		q.Set("status", joinSorted(ss))
	}
	if len(p.Codes) > 0 {
		codes := slices.Clone(p.Codes)
		slices.Sort(codes)
		cs := make([]string, 0, len(codes))
		for _, code := range slices.Compact(codes) {
			cs = append(cs, strconv.Itoa(code))
		}
		q.Set("code", strings.Join(cs, ","))
	}

	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// FetchDeliveryReport fetches the delivery report of the given batch.
func (c *Client) FetchDeliveryReport(ctx context.Context, batchID string, params DeliveryReportParams) (*api.BatchDeliveryReport, error) {
	u, err := c.batchURL(batchID, "/delivery_report"+params.query())
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return deserialize.BatchDeliveryReport(body)
}

// FetchRecipientDeliveryReport fetches the delivery report of a single
// batch recipient.
func (c *Client) FetchRecipientDeliveryReport(ctx context.Context, batchID, recipient string) (*api.BatchRecipientDeliveryReport, error) {
	if recipient == "" {
		return nil, xmserror.ErrEmptyRecipient
	}

	u, err := c.batchURL(batchID, "/delivery_report/"+url.PathEscape(recipient))
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return deserialize.BatchRecipientDeliveryReport(body)
}

// CreateGroup creates the given group.
func (c *Client) CreateGroup(ctx context.Context, group *api.GroupCreate) (*api.GroupResult, error) {
	body, err := c.do(ctx, http.MethodPost, c.url("/groups"), serialize.GroupCreate(group))
	if err != nil {
		return nil, err
	}
	return deserialize.GroupResult(body)
}

// ReplaceGroup replaces the group with the given identifier.
func (c *Client) ReplaceGroup(ctx context.Context, groupID string, group *api.GroupCreate) (*api.GroupResult, error) {
	u, err := c.groupURL(groupID, "")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPut, u, serialize.GroupCreate(group))
	if err != nil {
		return nil, err
	}
	return deserialize.GroupResult(body)
}

// UpdateGroup applies the given update description to the group with the
// given identifier.
func (c *Client) UpdateGroup(ctx context.Context, groupID string, group *api.GroupUpdate) (*api.GroupResult, error) {
	u, err := c.groupURL(groupID, "")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, u, serialize.GroupUpdate(group))
	if err != nil {
		return nil, err
	}
	return deserialize.GroupResult(body)
}

// DeleteGroup deletes the group with the given identifier.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	u, err := c.groupURL(groupID, "")
	if err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodDelete, u, nil)
	return err
}

// FetchGroup fetches the group with the given identifier.
func (c *Client) FetchGroup(ctx context.Context, groupID string) (*api.GroupResult, error) {
	u, err := c.groupURL(groupID, "")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return deserialize.GroupResult(body)
}

// GroupParams filters a group listing. The zero value applies no filter.
type GroupParams struct {
	// PageSize is the maximum number of groups per page. Zero uses the
	// server default.
	PageSize int

	// Tags limits the listing to groups carrying one or more of these
	// tags.
	Tags []string
}

func (p GroupParams) query(page int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if len(p.Tags) > 0 {
		q.Set("tags", joinSorted(p.Tags))
	}
	return q
}

// FetchGroups returns the groups matching the given filter. Calling this
// method performs no network traffic; pages are fetched on demand from
// the returned Pages.
func (c *Client) FetchGroups(params GroupParams) *api.Pages[*api.GroupResult] {
	return api.NewPages(func(ctx context.Context, page int) (*api.Page[*api.GroupResult], error) {
		body, err := c.do(ctx, http.MethodGet, c.url("/groups?"+params.query(page).Encode()), nil)
		if err != nil {
			return nil, err
		}
		return deserialize.GroupsPage(body)
	})
}

// FetchGroupMembers fetches the set of MSISDNs that belong to the given
// group.
func (c *Client) FetchGroupMembers(ctx context.Context, groupID string) ([]string, error) {
	u, err := c.groupURL(groupID, "/members")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return deserialize.GroupMembers(body)
}

// FetchGroupTags fetches the tags associated with the given group.
func (c *Client) FetchGroupTags(ctx context.Context, groupID string) ([]string, error) {
	u, err := c.groupURL(groupID, "/tags")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return deserialize.Tags(body)
}

// ReplaceGroupTags replaces the tags of the given group and returns the
// new tag set.
func (c *Client) ReplaceGroupTags(ctx context.Context, groupID string, tags []string) ([]string, error) {
	u, err := c.groupURL(groupID, "/tags")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPut, u, serialize.Tags(tags))
	if err != nil {
		return nil, err
	}
	return deserialize.Tags(body)
}

// UpdateGroupTags adds and removes tags on the given group and returns
// the updated tag set.
func (c *Client) UpdateGroupTags(ctx context.Context, groupID string, tagsToAdd, tagsToRemove []string) ([]string, error) {
	u, err := c.groupURL(groupID, "/tags")
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, u, serialize.TagsUpdate(tagsToAdd, tagsToRemove))
	if err != nil {
		return nil, err
	}
	return deserialize.Tags(body)
}

// FetchInbound fetches the inbound message with the given identifier.
// The returned message is either textual or binary.
func (c *Client) FetchInbound(ctx context.Context, inboundID string) (api.MoSms, error) {
	if inboundID == "" {
		return nil, xmserror.ErrEmptyInboundID
	}

	body, err := c.do(ctx, http.MethodGet, c.url("/inbounds/"+url.PathEscape(inboundID)), nil)
	if err != nil {
		return nil, err
	}
	return deserialize.MoSms(body)
}

// InboundParams filters an inbound message listing. The zero value
// applies no filter.
type InboundParams struct {
	// PageSize is the maximum number of messages per page. Zero uses the
	// server default.
	PageSize int

	// Recipients limits the listing to messages addressed to one of
	// these recipients.
	Recipients []string

	// StartDate limits the listing to messages received at or after this
	// date. The time of day is ignored.
	StartDate time.Time

	// EndDate limits the listing to messages received before this date.
	// The time of day is ignored.
	EndDate time.Time
}

func (p InboundParams) query(page int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if len(p.Recipients) > 0 {
		q.Set("to", joinSorted(p.Recipients))
	}
	if !p.StartDate.IsZero() {
		q.Set("start_date", p.StartDate.Format(dateLayout))
	}
	if !p.EndDate.IsZero() {
		q.Set("end_date", p.EndDate.Format(dateLayout))
	}
	return q
}

// FetchInbounds returns the inbound messages matching the given filter.
// Calling this method performs no network traffic; pages are fetched on
// demand from the returned Pages.
func (c *Client) FetchInbounds(params InboundParams) *api.Pages[api.MoSms] {
	return api.NewPages(func(ctx context.Context, page int) (*api.Page[api.MoSms], error) {
		body, err := c.do(ctx, http.MethodGet, c.url("/inbounds?"+params.query(page).Encode()), nil)
		if err != nil {
			return nil, err
		}
		return deserialize.InboundsPage(body)
	})
}
