/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package unsafex converts between byte slices and raw addresses/offsets.
package unsafex

import "unsafe"

// SliceAddr returns the address of the first byte of b's backing array.
// It works for zero-length slices with cap > 0, unlike &b[0].
// Returns 0 for nil slices.
func SliceAddr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// OffsetIn returns the offset of b's data within base.
// ok is false if b does not start inside base (or exactly at its end).
func OffsetIn(base, b []byte) (off int, ok bool) {
	if cap(base) == 0 || cap(b) == 0 {
		return 0, false
	}
	start, p := SliceAddr(base), SliceAddr(b)
	if p < start || p-start > uintptr(len(base)) {
		return 0, false
	}
	return int(p - start), true
}

// AddrAlign returns the largest power of two that divides p.
// p == 0 is aligned to anything, in which case the max uintptr power of two is returned.
func AddrAlign(p uintptr) uintptr {
	if p == 0 {
		return 1 << (unsafe.Sizeof(p)*8 - 1)
	}
	return p & -p
}
