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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFetcher serves fixed page sizes and records how often each page
// index is requested.
func countingFetcher(sizes []int, calls *[]int) PageFetcher[string] {
	return func(ctx context.Context, page int) (*Page[string], error) {
		*calls = append(*calls, page)

		size := 0
		if page < len(sizes) {
			size = sizes[page]
		}
		content := make([]string, 0, size)
		for i := 0; i < size; i++ {
			content = append(content, fmt.Sprintf("p%d-e%d", page, i))
		}

		return &Page[string]{
			Page:      page,
			Size:      size,
			TotalSize: 3,
			Content:   content,
		}, nil
	}
}

func TestPagesAllStopsAtEmptyPage(t *testing.T) {
	var calls []int
	pages := NewPages(countingFetcher([]int{2, 1, 0}, &calls))

	var yielded []*Page[string]
	for page, err := range pages.All(context.Background()) {
		require.NoError(t, err)
		yielded = append(yielded, page)
	}

	// The empty page terminates iteration without being yielded.
	require.Len(t, yielded, 2)
	assert.Equal(t, 0, yielded[0].Page)
	assert.Equal(t, 1, yielded[1].Page)
	assert.Equal(t, []int{0, 1, 2}, calls)
}

func TestPagesAllIgnoresDeclaredTotal(t *testing.T) {
	// The fetcher declares three elements but serves only one before an
	// empty page. The declared total must not keep iteration alive.
	var calls []int
	pages := NewPages(countingFetcher([]int{1, 0}, &calls))

	count := 0
	for page, err := range pages.All(context.Background()) {
		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalSize)
		count++
	}

	assert.Equal(t, 1, count)
}

func TestPagesElementsFlattens(t *testing.T) {
	var calls []int
	pages := NewPages(countingFetcher([]int{2, 1, 0}, &calls))

	var elems []string
	for elem, err := range pages.Elements(context.Background()) {
		require.NoError(t, err)
		elems = append(elems, elem)
	}

	assert.Equal(t, []string{"p0-e0", "p0-e1", "p1-e0"}, elems)
}

func TestPagesElementsEarlyBreak(t *testing.T) {
	var calls []int
	pages := NewPages(countingFetcher([]int{2, 2, 0}, &calls))

	for range pages.Elements(context.Background()) {
		break
	}

	// Breaking after the first element must not fetch further pages.
	assert.Equal(t, []int{0}, calls)
}

func TestPagesErrorYieldedOnce(t *testing.T) {
	fetchErr := errors.New("boom")
	calls := 0
	pages := NewPages(func(ctx context.Context, page int) (*Page[int], error) {
		calls++
		if page == 0 {
			return &Page[int]{Page: 0, Size: 1, TotalSize: 2, Content: []int{7}}, nil
		}
		return nil, fetchErr
	})

	var seen []error
	for _, err := range pages.All(context.Background()) {
		seen = append(seen, err)
	}

	require.Len(t, seen, 2)
	assert.NoError(t, seen[0])
	assert.ErrorIs(t, seen[1], fetchErr)
	assert.Equal(t, 2, calls)
}

func TestPagesGetDoesNotCache(t *testing.T) {
	var calls []int
	pages := NewPages(countingFetcher([]int{1}, &calls))
	ctx := context.Background()

	first, err := pages.Get(ctx, 0)
	require.NoError(t, err)
	second, err := pages.Get(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, []int{0, 0}, calls, "every Get re-fetches")
}

func TestPagesIndependentIterations(t *testing.T) {
	var calls []int
	pages := NewPages(countingFetcher([]int{1, 0}, &calls))
	ctx := context.Background()

	for range pages.All(ctx) {
	}
	for range pages.All(ctx) {
	}

	// Two full iterations each walk from page zero.
	assert.Equal(t, []int{0, 1, 0, 1}, calls)
}
