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

import (
	"context"
	"iter"
)

// Page is one page of a paged XMS listing.
type Page[T any] struct {
	// Page is the zero-based page index.
	Page int `json:"page"`

	// Size is the number of elements on this page. It may be zero.
	Size int `json:"page_size"`

	// TotalSize is the total number of elements across all pages, as
	// declared by the server. It reflects a server-side count that may be
	// stale while the underlying collection changes.
	TotalSize int `json:"count"`

	// Content holds the page elements in server order.
	Content []T `json:"content"`
}

// PageFetcher retrieves the page with the given zero-based index. It is
// expected to perform the network call and deserialization.
type PageFetcher[T any] func(ctx context.Context, page int) (*Page[T], error)

// Pages gives access to a paged XMS listing. It wraps a page fetcher and
// offers both page-at-a-time access through Get and sequential iteration
// through All and Elements. Creating a Pages value causes no network
// traffic; pages are fetched on demand and never cached.
//
// A Pages value itself carries no mutable state and may be shared freely.
// Each sequence returned by All or Elements is single use and must be
// consumed from one goroutine; independent sequences over the same Pages
// are fully independent.
type Pages[T any] struct {
	fetch PageFetcher[T]
}

// NewPages returns a Pages over the given fetcher.
func NewPages[T any](fetch PageFetcher[T]) *Pages[T] {
	return &Pages[T]{fetch: fetch}
}

// Get fetches the page with the given zero-based index. Every call
// re-invokes the underlying fetcher, including for previously seen
// indices.
func (p *Pages[T]) Get(ctx context.Context, page int) (*Page[T], error) {
	return p.fetch(ctx, page)
}

// All returns a single-use sequence of pages starting at index 0. Pages
// are fetched lazily, one per step. The sequence ends when a fetched page
// has no content; that empty page is not yielded. The declared total size
// is deliberately not used for termination, since it may be stale while
// the collection changes under iteration.
//
// A fetch error is yielded once, paired with a nil page, and ends the
// sequence.
func (p *Pages[T]) All(ctx context.Context) iter.Seq2[*Page[T], error] {
	return func(yield func(*Page[T], error) bool) {
		for n := 0; ; n++ {
			page, err := p.fetch(ctx, n)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(page.Content) == 0 {
				return
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}

// Elements returns a single-use sequence of the individual elements of
// all pages, in page order. Termination and error behavior match All;
// errors are yielded paired with the zero value of T.
func (p *Pages[T]) Elements(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for page, err := range p.All(ctx) {
			if err != nil {
				yield(zero, err)
				return
			}
			for _, elem := range page.Content {
				if !yield(elem, nil) {
					return
				}
			}
		}
	}
}
