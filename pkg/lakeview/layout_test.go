// Copyright 2026 Lakedeck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lakeview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overlaps(a, b Position) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

func assertNoOverlap(t *testing.T, positions []Position) {
	t.Helper()
	for i := range positions {
		assert.LessOrEqual(t, positions[i].X+positions[i].Width, GridColumns,
			"widget %d exceeds grid width", i)
		for j := i + 1; j < len(positions); j++ {
			assert.False(t, overlaps(positions[i], positions[j]),
				"widgets %d and %d overlap: %+v vs %+v", i, j, positions[i], positions[j])
		}
	}
}

func TestGridLayoutNonOverlap(t *testing.T) {
	sizes := []Size{
		{Width: 6, Height: 4},
		{Width: 6, Height: 6},
		{Width: 4, Height: 2},
		{Width: 12, Height: 4},
		{Width: 3, Height: 8},
		{Width: 5, Height: 3},
	}

	positions, err := AutoLayout(sizes, LayoutGrid)
	require.NoError(t, err)
	require.Len(t, positions, len(sizes))
	assertNoOverlap(t, positions)
}

func TestGridLayoutRowWrap(t *testing.T) {
	sizes := []Size{
		{Width: 6, Height: 4},
		{Width: 6, Height: 4},
		{Width: 6, Height: 4},
	}

	positions, err := AutoLayout(sizes, LayoutGrid)
	require.NoError(t, err)

	assert.Equal(t, Position{X: 0, Y: 0, Width: 6, Height: 4}, positions[0])
	assert.Equal(t, Position{X: 6, Y: 0, Width: 6, Height: 4}, positions[1])
	assert.Equal(t, Position{X: 0, Y: 4, Width: 6, Height: 4}, positions[2])
}

func TestGridLayoutClampsOversizedWidgets(t *testing.T) {
	positions, err := AutoLayout([]Size{{Width: 20, Height: 4}}, LayoutGrid)
	require.NoError(t, err)
	assert.Equal(t, GridColumns, positions[0].Width)
	assertNoOverlap(t, positions)
}

func TestGridLayoutDefaults(t *testing.T) {
	positions, err := AutoLayout([]Size{{}}, LayoutGrid)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 0, Y: 0, Width: 6, Height: 4}, positions[0])
}

func TestVerticalLayout(t *testing.T) {
	sizes := []Size{{Height: 4}, {Height: 6}, {Height: 2}}

	positions, err := AutoLayout(sizes, LayoutVertical)
	require.NoError(t, err)

	assert.Equal(t, Position{X: 0, Y: 0, Width: 12, Height: 4}, positions[0])
	assert.Equal(t, Position{X: 0, Y: 4, Width: 12, Height: 6}, positions[1])
	assert.Equal(t, Position{X: 0, Y: 10, Width: 12, Height: 2}, positions[2])
}

func TestHorizontalLayout(t *testing.T) {
	positions, err := AutoLayout(make([]Size, 4), LayoutHorizontal)
	require.NoError(t, err)

	for i, p := range positions {
		assert.Equal(t, i*3, p.X)
		assert.Equal(t, 0, p.Y)
		assert.Equal(t, 3, p.Width)
		assert.Equal(t, 8, p.Height)
	}
}

func TestMasonryLayoutNonOverlap(t *testing.T) {
	sizes := []Size{
		{Height: 4}, {Height: 8}, {Height: 2},
		{Height: 6}, {Height: 3}, {Height: 5},
		{Height: 4}, {Height: 7},
	}

	positions, err := AutoLayout(sizes, LayoutMasonry)
	require.NoError(t, err)
	assertNoOverlap(t, positions)

	for _, p := range positions {
		assert.Equal(t, 4, p.Width)
		assert.Contains(t, []int{0, 4, 8}, p.X)
	}
}

func TestMasonryShortestColumnFirst(t *testing.T) {
	sizes := []Size{{Height: 8}, {Height: 2}, {Height: 2}, {Height: 2}}

	positions, err := AutoLayout(sizes, LayoutMasonry)
	require.NoError(t, err)

	// The fourth widget lands in column 1, the shortest after three
	// placements (heights 8, 2, 2).
	assert.Equal(t, Position{X: 4, Y: 2, Width: 4, Height: 2}, positions[3])
}

func TestAutoLayoutUnknownType(t *testing.T) {
	_, err := AutoLayout([]Size{{}}, "diagonal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown layout type")
}

func TestAutoLayoutCapacity(t *testing.T) {
	_, err := AutoLayout(make([]Size, MaxLayoutWidgets+1), LayoutGrid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum")

	positions, err := AutoLayout(make([]Size, MaxLayoutWidgets), LayoutGrid)
	require.NoError(t, err)
	assert.Len(t, positions, MaxLayoutWidgets)
}
