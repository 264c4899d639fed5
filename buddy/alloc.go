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
	"math/bits"

	"github.com/pkg/errors"
)

// Allocate returns size bytes aligned to alignment.
// alignment is 0 for none, or a power of two.
//
// The returned slice has len == size and its cap runs to the end of the block.
// Pass it back unchanged to Deallocate or Free.
//
// Alignment holds for the actual address, which is only possible when the arena
// buffer itself is aligned at least that much, see BaseAlignment.
// Use AllocateOffset for alignment relative to the arena start.
func (a *Arena) Allocate(size, alignment int) ([]byte, error) {
	if a.destroyed {
		return nil, ErrDestroyed
	}
	need, alignShift, err := a.blockNeed(size, alignment)
	if err != nil {
		return nil, err
	}
	if base := a.BaseAlignment(); alignment > base {
		return nil, errors.Wrapf(ErrInvalidAlignment, "alignment %d exceeds arena base alignment %d", alignment, base)
	}
	off, end, err := a.allocate(need, alignShift)
	if err != nil {
		return nil, err
	}
	return a.mem[off : off+size : end], nil
}

// AllocateOffset is like Allocate but returns the arena offset of the data.
// The offset is a multiple of alignment, and of HeaderSize.
func (a *Arena) AllocateOffset(size, alignment int) (int, error) {
	if a.destroyed {
		return 0, ErrDestroyed
	}
	need, alignShift, err := a.blockNeed(size, alignment)
	if err != nil {
		return 0, err
	}
	off, _, err := a.allocate(need, alignShift)
	return off, err
}

// allocate takes a block of at least need bytes and returns the data offset
// and the end offset of the block.
// Nothing is modified unless it succeeds.
func (a *Arena) allocate(need int, alignShift uint8) (int, int, error) {
	order := a.orderFor(need)

	index, found := -1, order
	for ; found <= a.maxOrder; found++ {
		if a.numFree[found] == 0 {
			continue
		}
		if index = a.findFree(found); index < 0 {
			return 0, 0, errors.Wrapf(ErrCorrupted, "order %d counts %d free blocks, none found", found, a.numFree[found])
		}
		break
	}
	if index < 0 {
		return 0, 0, errors.Wrapf(ErrOutOfMemory, "no free block of %d bytes", a.sizeOf(order))
	}

	a.numFree[found]--
	index = a.split(index, found, order)
	a.nodes[index] = stateAllocated
	a.allocated++
	a.allocatedBytes += a.sizeOf(order)

	blockOff := a.indexToOffset(index)
	dataOff := blockOff + dataPad(alignShift)
	a.writeHeader(dataOff-HeaderSize, header{order: uint8(order), alignShift: alignShift})
	return dataOff, blockOff + a.sizeOf(order), nil
}

// blockNeed returns the block size required for a request, header and alignment pad included.
func (a *Arena) blockNeed(size, alignment int) (int, uint8, error) {
	if size <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidSize, "size=%d", size)
	}
	if alignment < 0 || alignment&(alignment-1) != 0 {
		return 0, 0, errors.Wrapf(ErrInvalidAlignment, "alignment %d is not a power of two", alignment)
	}
	required := max(size, alignment)
	if required > a.size-HeaderSize {
		return 0, 0, errors.Wrapf(ErrArenaTooSmall, "size %d alignment %d in %d-byte arena", size, alignment, a.size)
	}
	need := required + HeaderSize

	// Data of over-aligned requests starts alignment bytes into the block,
	// the header sits just before it.
	var alignShift uint8
	if alignment > HeaderSize {
		alignShift = uint8(bits.TrailingZeros(uint(alignment)))
		need = max(need, size+alignment)
	}
	if need > a.size {
		return 0, 0, errors.Wrapf(ErrArenaTooSmall, "size %d alignment %d needs %d bytes in %d-byte arena", size, alignment, need, a.size)
	}
	return need, alignShift, nil
}

// split halves the free block at index until it reaches target order.
// Each step leaves the right half free and continues in the left half,
// whose index is returned.
func (a *Arena) split(index, order, target int) int {
	for order > target {
		a.nodes[index] = stateSplit
		left := leftChildOf(index)
		right := left + 1
		order--

		a.nodes[left] = stateFree
		a.nodes[right] = stateFree
		a.numFree[order]++
		a.writeFreeHeader(right, order)

		if a.trace {
			a.logger.Debug("buddy split", "index", index, "order", order+1, "free_buddy", right)
		}
		index = left
	}
	return index
}
