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

import "math/bits"

// nodeState holds the bookkeeping of one block.
//
// Only four values ever occur:
//   - 0: not part of the current tiling, its parent is free, allocated or itself unused
//   - stateFree: available as is
//   - stateSplit: both children describe the block
//   - stateAllocated: handed out to a caller
type nodeState uint8

const (
	nodeInit nodeState = 1 << iota
	nodeFree
	nodeSplit
)

const (
	stateFree      = nodeInit | nodeFree
	stateSplit     = nodeInit | nodeSplit
	stateAllocated = nodeInit
)

// The tree is stored heap-ordered: root at 0, children of i at 2i+1 and 2i+2.
// Level 0 is the root. A level holds the blocks of a single order.

func parentOf(index int) int { return (index - 1) / 2 }

func leftChildOf(index int) int { return 2*index + 1 }

// buddyOf returns the sibling of a non-root node.
func buddyOf(index int) int { return ((index - 1) ^ 1) + 1 }

func levelStart(level int) int { return 1<<level - 1 }

// levelEnd is inclusive.
func levelEnd(level int) int { return 1<<(level+1) - 2 }

// orderOf returns the order of the block at index, the root has maxOrder.
func (a *Arena) orderOf(index int) int {
	// floor(log2(len(nodes))) - floor(log2(index+1))
	return bits.Len(uint(len(a.nodes))) - bits.Len(uint(index+1))
}

func (a *Arena) sizeOf(order int) int { return a.minBlockSize << order }

func (a *Arena) levelOf(order int) int { return a.maxOrder - order }

// orderFor returns the smallest order whose blocks hold n bytes.
func (a *Arena) orderFor(n int) int {
	if n <= a.minBlockSize {
		return 0
	}
	return bits.Len(uint(n-1)) - a.minShift
}

// findFree returns the leftmost free node of the given order, or -1.
// There is no free list, the scan is bounded by the width of the level.
func (a *Arena) findFree(order int) int {
	level := a.levelOf(order)
	for i, end := levelStart(level), levelEnd(level); i <= end; i++ {
		if a.nodes[i] == stateFree {
			return i
		}
	}
	return -1
}
