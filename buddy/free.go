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
	"github.com/pkg/errors"

	"github.com/cloudwego/buddyarena/unsafex"
)

// Free returns a block obtained from Allocate to the arena.
// nil or empty-cap slices are ignored.
// It panics if b was not allocated by this arena or was already freed:
// carrying on would leave headers and bookkeeping out of sync.
func (a *Arena) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	if err := a.Deallocate(b); err != nil {
		panic(err)
	}
}

// Deallocate returns a block obtained from Allocate to the arena.
// b must start where the slice returned by Allocate started.
// On error the arena is left untouched.
func (a *Arena) Deallocate(b []byte) error {
	if a.destroyed {
		return ErrDestroyed
	}
	off, ok := unsafex.OffsetIn(a.mem, b)
	if !ok {
		return errors.Wrap(ErrInvalidPointer, "slice does not belong to the arena")
	}
	return a.DeallocateOffset(off)
}

// DeallocateOffset returns the block whose data starts at dataOffset,
// as returned by AllocateOffset, to the arena.
// On error the arena is left untouched.
func (a *Arena) DeallocateOffset(dataOffset int) error {
	if a.destroyed {
		return ErrDestroyed
	}
	index, h, err := a.offsetToIndex(dataOffset)
	if err != nil {
		return err
	}
	order := int(h.order)

	a.nodes[index] = stateFree
	a.numFree[order]++
	a.allocated--
	a.allocatedBytes -= a.sizeOf(order)

	// The data header keeps the free flag for double-free detection;
	// over-aligned blocks also get a header at their start.
	h.free = true
	a.writeHeader(dataOffset-HeaderSize, h)
	if h.alignShift != 0 {
		a.writeFreeHeader(index, order)
	}

	a.coalesce(index, order)
	return nil
}

// coalesce merges the free block at index with its buddy, level by level,
// for as long as the buddy is free too.
func (a *Arena) coalesce(index, order int) {
	for index > 0 {
		buddy := buddyOf(index)
		if a.nodes[buddy] != stateFree {
			return
		}
		parent := parentOf(index)
		a.numFree[order] -= 2
		a.nodes[index], a.nodes[buddy] = 0, 0
		order++
		a.nodes[parent] = stateFree
		a.numFree[order]++
		a.writeFreeHeader(parent, order)

		if a.trace {
			a.logger.Debug("buddy coalesce", "index", index, "buddy", buddy, "order", order)
		}
		index = parent
	}
}
