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

// Package xmserror defines the errors produced by the XMS client. Response
// errors are typed structs carrying the diagnostic data of the failing
// exchange and are matched with errors.As; client-side precondition
// failures are sentinel errors matched with errors.Is.
//
// None of these errors are retried or swallowed by the client; they are
// raised immediately and retry policy is left to the caller.
package xmserror

import (
	"errors"
	"fmt"
)

// Sentinel errors for client-side precondition failures. These are
// detected before any network call is made.
var (
	// ErrEmptyBatchID indicates an operation was given an empty batch
	// identifier.
	ErrEmptyBatchID = errors.New("empty batch ID given")

	// ErrEmptyGroupID indicates an operation was given an empty group
	// identifier.
	ErrEmptyGroupID = errors.New("empty group ID given")

	// ErrEmptyInboundID indicates an operation was given an empty inbound
	// message identifier.
	ErrEmptyInboundID = errors.New("empty inbound ID given")

	// ErrEmptyRecipient indicates an operation was given an empty
	// recipient address.
	ErrEmptyRecipient = errors.New("empty recipient given")
)

// ResponseError is returned when XMS rejects a request with a structured
// error body (HTTP 400 or 403). Code is machine readable, Text is meant
// for humans.
type ResponseError struct {
	Code string
	Text string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("xms rejected request (%s): %s", e.Code, e.Text)
}

// NotFoundError is returned when the requested resource does not exist in
// XMS (HTTP 404).
type NotFoundError struct {
	// URL is the URL of the missing resource.
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no resource found at %q", e.URL)
}

// UnauthorizedError is returned when XMS does not accept the service plan
// and token pair (HTTP 401). The rejected credentials are carried for
// caller-side diagnostics, not for retry.
type UnauthorizedError struct {
	ServicePlanID string
	Token         string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("authentication failed with service plan %q", e.ServicePlanID)
}

// UnexpectedResponseError is returned when an XMS response cannot be
// interpreted: the body is not valid JSON, a required field or
// discriminator is missing or unrecognized, a timestamp or binary field
// fails to parse, or the HTTP status falls outside the expected set. The
// offending body is retained for debugging.
type UnexpectedResponseError struct {
	Message  string
	HTTPBody string
}

func (e *UnexpectedResponseError) Error() string { return e.Message }
