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

package unsafex

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestSliceAddr(t *testing.T) {
	b := make([]byte, 16)
	assert.Equal(t, uintptr(unsafe.Pointer(&b[0])), SliceAddr(b))
	assert.Equal(t, uintptr(unsafe.Pointer(&b[4])), SliceAddr(b[4:4]))
	assert.Zero(t, SliceAddr(nil))
}

func TestOffsetIn(t *testing.T) {
	base := make([]byte, 1024)

	tests := []struct {
		name   string
		b      []byte
		want   int
		wantOK bool
	}{
		{"start", base, 0, true},
		{"middle", base[100:200], 100, true},
		{"empty_in_range", base[512:512], 512, true},
		{"foreign", make([]byte, 8), 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, ok := OffsetIn(base, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, off)
			}
		})
	}

	_, ok := OffsetIn(nil, base)
	assert.False(t, ok)
}

func TestAddrAlign(t *testing.T) {
	assert.Equal(t, uintptr(1), AddrAlign(3))
	assert.Equal(t, uintptr(8), AddrAlign(24))
	assert.Equal(t, uintptr(4096), AddrAlign(4096))
	assert.Equal(t, uintptr(4096), AddrAlign(3*4096))
	assert.NotZero(t, AddrAlign(0))
}

func BenchmarkOffsetIn(b *testing.B) {
	base := make([]byte, 1<<16)
	x := base[4096:]
	for i := 0; i < b.N; i++ {
		_, _ = OffsetIn(base, x)
	}
}
