//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

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

package provider

import (
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmap(t *testing.T) {
	var p Mmap
	buf, err := p.Acquire(1 << 16)
	require.NoError(t, err)
	require.Len(t, buf, 1<<16)

	addr := uintptr(unsafe.Pointer(&buf[0]))
	assert.Zero(t, addr%uintptr(os.Getpagesize()), "mapping must be page aligned")

	buf[0], buf[len(buf)-1] = 0xAA, 0x55
	assert.NoError(t, p.Release(buf))

	_, err = p.Acquire(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
