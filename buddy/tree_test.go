// Copyright 2025 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package buddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderOf(t *testing.T) {
	a := newTestArena(t, 1024) // max order 4, 31 nodes
	assert.Len(t, a.nodes, 31)

	tests := []struct {
		first, last int
		order       int
	}{
		{0, 0, 4},
		{1, 2, 3},
		{3, 6, 2},
		{7, 14, 1},
		{15, 30, 0},
	}
	for _, tt := range tests {
		for i := tt.first; i <= tt.last; i++ {
			assert.Equal(t, tt.order, a.orderOf(i), "index=%d", i)
		}
		level := a.levelOf(tt.order)
		assert.Equal(t, tt.first, levelStart(level))
		assert.Equal(t, tt.last, levelEnd(level))
	}
}

func TestTreeTilesArena(t *testing.T) {
	for _, size := range []int{64, 128, 1024, 64 * 1024} {
		a := newTestArena(t, size)
		for i := range a.nodes {
			order := a.orderOf(i)
			nodesAtOrder := 1 << a.levelOf(order)
			assert.Equal(t, a.Size(), a.sizeOf(order)*nodesAtOrder, "size=%d index=%d", size, i)
		}
	}
}

func TestIndexToOffset(t *testing.T) {
	a := newTestArena(t, 1024)

	tests := []struct {
		index  int
		offset int
	}{
		{0, 0},
		{1, 0},
		{2, 512},
		{6, 768},
		{7, 0},
		{8, 128},
		{15, 0},
		{16, 64},
		{30, 960},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.offset, a.indexToOffset(tt.index), "index=%d", tt.index)
	}

	// blockIndex is the exact inverse, and every offset is block aligned
	for i := range a.nodes {
		order := a.orderOf(i)
		off := a.indexToOffset(i)
		assert.Zero(t, off%a.sizeOf(order), "index=%d", i)
		assert.Less(t, off, a.Size())
		assert.Equal(t, i, a.blockIndex(off, order), "index=%d", i)
	}
}

func TestBuddyOf(t *testing.T) {
	pairs := [][2]int{{1, 2}, {3, 4}, {5, 6}, {15, 16}, {29, 30}}
	for _, p := range pairs {
		assert.Equal(t, p[1], buddyOf(p[0]))
		assert.Equal(t, p[0], buddyOf(p[1]))
		assert.Equal(t, parentOf(p[0]), parentOf(p[1]))
		assert.Equal(t, p[0], leftChildOf(parentOf(p[0])))
	}
}

func TestOrderFor(t *testing.T) {
	a := newTestArena(t, 1024)
	tests := []struct {
		n     int
		order int
	}{
		{1, 0},
		{64, 0},
		{65, 1},
		{128, 1},
		{129, 2},
		{513, 4},
		{1024, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.order, a.orderFor(tt.n), "n=%d", tt.n)
	}
}
