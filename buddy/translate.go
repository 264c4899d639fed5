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

import "github.com/pkg/errors"

// indexToOffset returns the arena offset of the block at index.
// The result is a multiple of the block size.
func (a *Arena) indexToOffset(index int) int {
	order := a.orderOf(index)
	return (index - levelStart(a.levelOf(order))) * a.sizeOf(order)
}

// blockIndex is the inverse of indexToOffset for a known order.
func (a *Arena) blockIndex(blockOff, order int) int {
	return levelStart(a.levelOf(order)) + blockOff>>(a.minShift+order)
}

// offsetToIndex recovers the allocated node whose data starts at dataOff,
// using the header stored right in front of it.
// It returns the header as read, so the caller can flip it without reading twice.
func (a *Arena) offsetToIndex(dataOff int) (int, header, error) {
	var h header
	hdrOff := dataOff - HeaderSize
	// Every data offset is HeaderSize aligned, whatever the alignment pad.
	if hdrOff < 0 || dataOff >= a.size || dataOff%HeaderSize != 0 {
		return 0, h, errors.Wrapf(ErrInvalidPointer, "offset %d outside arena of %d bytes", dataOff, a.size)
	}
	h = a.readHeader(hdrOff)
	if h.magic != headerMagic {
		return 0, h, errors.Wrapf(ErrInvalidPointer, "offset %d: bad magic %#x", dataOff, h.magic)
	}
	if int(h.order) > a.maxOrder {
		return 0, h, errors.Wrapf(ErrInvalidPointer, "offset %d: order %d > max order %d", dataOff, h.order, a.maxOrder)
	}
	if h.free {
		return 0, h, errors.Wrapf(ErrInvalidPointer, "offset %d: double free", dataOff)
	}
	order := int(h.order)
	if h.alignShift != 0 && (h.alignShift <= headerShift || int(h.alignShift) >= a.minShift+order) {
		return 0, h, errors.Wrapf(ErrInvalidPointer, "offset %d: bad alignment shift %d", dataOff, h.alignShift)
	}
	blockSize := a.sizeOf(order)
	blockOff := dataOff - dataPad(h.alignShift)
	if blockOff < 0 || blockOff&(blockSize-1) != 0 {
		return 0, h, errors.Wrapf(ErrInvalidPointer, "offset %d: misaligned for order %d", dataOff, order)
	}
	index := a.blockIndex(blockOff, order)
	if a.nodes[index] != stateAllocated {
		return 0, h, errors.Wrapf(ErrInvalidPointer, "offset %d: block %d not allocated", dataOff, index)
	}
	return index, h, nil
}
