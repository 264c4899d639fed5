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

import "encoding/binary"

const (
	// headerMagic marks a header written by this package.
	headerMagic uint32 = 0xB0DDB10C

	// headerShift is log2(HeaderSize).
	headerShift = 3
)

// header is the on-arena twin of a node, stored in the HeaderSize bytes
// right before the data handed to the caller:
//
//	[0:4] magic  [4] order  [5] free  [6] alignShift  [7] reserved
//
// Free blocks carry a header at their block start as well.
type header struct {
	magic uint32
	order uint8
	free  bool
	// alignShift is log2 of the requested alignment when it exceeds HeaderSize, else 0.
	alignShift uint8
}

func (a *Arena) readHeader(off int) header {
	b := a.mem[off : off+HeaderSize]
	return header{
		magic:      binary.LittleEndian.Uint32(b),
		order:      b[4],
		free:       b[5] != 0,
		alignShift: b[6],
	}
}

func (a *Arena) writeHeader(off int, h header) {
	b := a.mem[off : off+HeaderSize]
	binary.LittleEndian.PutUint32(b, headerMagic)
	b[4] = h.order
	b[5] = 0
	if h.free {
		b[5] = 1
	}
	b[6] = h.alignShift
	b[7] = 0
}

// writeFreeHeader tags the start of a free block.
func (a *Arena) writeFreeHeader(index, order int) {
	a.writeHeader(a.indexToOffset(index), header{order: uint8(order), free: true})
}

// dataPad returns the distance from block start to the caller's data.
func dataPad(alignShift uint8) int {
	if alignShift == 0 {
		return HeaderSize
	}
	return 1 << alignShift
}
