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

// Package buddy implements a fixed-capacity buddy-block allocator.
//
// An Arena owns one power-of-two sized buffer and carves it into power-of-two
// blocks on demand. Bookkeeping lives in an implicit binary tree with one node
// per possible block, plus a per-order count of free blocks. Every allocation
// carries a small header in front of the returned bytes, which is enough to
// find its node again on free.
//
// An Arena is not safe for concurrent use.
package buddy

import (
	"context"
	"encoding/binary"
	"log/slog"
	"math/bits"

	"github.com/bytedance/gopkg/util/xxhash3"
	"github.com/pkg/errors"

	"github.com/cloudwego/buddyarena/provider"
	"github.com/cloudwego/buddyarena/unsafex"
)

// Arena is a buddy allocator over a single buffer.
type Arena struct {
	// mem is the managed region, exactly size bytes.
	mem []byte
	// buf is mem as returned by the provider, handed back on Destroy.
	buf      []byte
	provider provider.Provider

	logger *slog.Logger
	// trace is set when the logger takes debug records.
	trace bool

	// nodes has 2^(maxOrder+1)-1 entries, see tree.go.
	nodes []nodeState
	// numFree[o] is the number of nodes of order o in stateFree.
	numFree []int

	allocated      int
	allocatedBytes int

	size         int
	minBlockSize int
	minShift     int
	maxOrder     int

	destroyed bool
}

// New creates an arena of at least requestedSize bytes with DefaultMinBlockSize blocks.
func New(requestedSize int) (*Arena, error) {
	return NewWithConfig(Config{RequestedSize: requestedSize})
}

// NewWithConfig creates an arena as described by cfg.
func NewWithConfig(cfg Config) (*Arena, error) {
	cfg.fillDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	size := cfg.arenaSize()
	buf, err := cfg.Provider.Acquire(size)
	if err != nil {
		return nil, errors.Wrapf(err, "buddy: acquire %d bytes", size)
	}
	if len(buf) < size {
		_ = cfg.Provider.Release(buf)
		return nil, errors.Errorf("buddy: provider returned %d bytes, want %d", len(buf), size)
	}

	minShift := bits.TrailingZeros(uint(cfg.MinBlockSize))
	maxOrder := bits.TrailingZeros(uint(size)) - minShift
	a := &Arena{
		mem:          buf[:size:size],
		buf:          buf,
		provider:     cfg.Provider,
		logger:       cfg.Logger,
		trace:        cfg.Logger.Enabled(context.Background(), slog.LevelDebug),
		nodes:        make([]nodeState, 1<<(maxOrder+1)-1),
		numFree:      make([]int, maxOrder+1),
		size:         size,
		minBlockSize: cfg.MinBlockSize,
		minShift:     minShift,
		maxOrder:     maxOrder,
	}
	a.reset()

	a.logger.Debug("buddy arena created",
		"requested", cfg.RequestedSize,
		"size", size,
		"min_block", cfg.MinBlockSize,
		"max_order", maxOrder)
	return a, nil
}

// Destroy hands the buffer back to the provider.
// Every slice or offset obtained from the arena becomes invalid.
// Calling Destroy again is a no-op.
func (a *Arena) Destroy() error {
	if a.destroyed {
		return nil
	}
	buf := a.buf
	a.destroyed = true
	a.mem, a.buf, a.nodes = nil, nil, nil
	a.allocated, a.allocatedBytes = 0, 0
	clear(a.numFree)
	a.logger.Debug("buddy arena destroyed", "size", a.size)
	if err := a.provider.Release(buf); err != nil {
		return errors.Wrap(err, "buddy: release arena")
	}
	return nil
}

// Reset frees every block at once, returning the arena to its initial state.
// Outstanding allocations must not be used or freed afterwards.
func (a *Arena) Reset() {
	if a.destroyed {
		return
	}
	a.reset()
	a.logger.Debug("buddy arena reset", "size", a.size)
}

func (a *Arena) reset() {
	clear(a.nodes)
	clear(a.numFree)
	a.nodes[0] = stateFree
	a.numFree[a.maxOrder] = 1
	a.allocated, a.allocatedBytes = 0, 0
	a.writeFreeHeader(0, a.maxOrder)
}

// Size returns the arena capacity in bytes.
func (a *Arena) Size() int { return a.size }

// MinBlockSize returns the size of an order-0 block.
func (a *Arena) MinBlockSize() int { return a.minBlockSize }

// MaxOrder returns the order of the whole arena.
func (a *Arena) MaxOrder() int { return a.maxOrder }

// BaseAlignment returns the largest power of two, capped at Size,
// that the address of the first arena byte is a multiple of.
// A block of size s is at an address aligned to min(s, BaseAlignment()).
func (a *Arena) BaseAlignment() int {
	if a.destroyed {
		return 0
	}
	align := unsafex.AddrAlign(unsafex.SliceAddr(a.mem))
	if align > uintptr(a.size) {
		return a.size
	}
	return int(align)
}

// Bytes returns n bytes of the arena starting at off.
// It is the way to reach memory returned by AllocateOffset.
func (a *Arena) Bytes(off, n int) []byte {
	return a.mem[off : off+n : off+n]
}

// Available returns the total size of free blocks, headers included.
func (a *Arena) Available() int {
	total := 0
	for order, n := range a.numFree {
		total += n * a.sizeOf(order)
	}
	return total
}

// IsValidOffset reports whether dataOffset could have been returned by AllocateOffset.
// It checks bounds and alignment only, not the allocation state,
// so it is safe to use on untrusted input before DeallocateOffset.
func (a *Arena) IsValidOffset(dataOffset int) bool {
	return !a.destroyed &&
		dataOffset >= HeaderSize &&
		dataOffset < a.size &&
		dataOffset%HeaderSize == 0
}

// Stats is a snapshot of the arena bookkeeping.
type Stats struct {
	Size         int
	MinBlockSize int
	MaxOrder     int

	// FreeBlocks[o] is the number of free blocks of order o.
	FreeBlocks []int
	FreeBytes  int

	AllocatedBlocks int
	// AllocatedBytes is the size of allocated blocks, headers and padding included.
	AllocatedBytes int
}

// Stats ...
func (a *Arena) Stats() Stats {
	return Stats{
		Size:            a.size,
		MinBlockSize:    a.minBlockSize,
		MaxOrder:        a.maxOrder,
		FreeBlocks:      append([]int(nil), a.numFree...),
		FreeBytes:       a.Available(),
		AllocatedBlocks: a.allocated,
		AllocatedBytes:  a.allocatedBytes,
	}
}

// Fingerprint returns a digest of the bookkeeping state: every node and every free counter.
// Two fingerprints are equal when the arena tiles its buffer the same way.
func (a *Arena) Fingerprint() uint64 {
	b := make([]byte, 0, len(a.nodes)+8*len(a.numFree))
	for _, n := range a.nodes {
		b = append(b, byte(n))
	}
	for _, n := range a.numFree {
		b = binary.LittleEndian.AppendUint64(b, uint64(n))
	}
	return xxhash3.Hash(b)
}
