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
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Mmap maps anonymous private memory for each arena and unmaps it on Release.
// Buffers are page aligned, which makes every block in the arena aligned to
// its own size up to the page size.
type Mmap struct{}

var _ Provider = Mmap{}

// Acquire implements Provider.
func (Mmap) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "mmap: size=%d", size)
	}
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap: map %d bytes", size)
	}
	return buf, nil
}

// Release implements Provider.
func (Mmap) Release(buf []byte) error {
	if err := unix.Munmap(buf); err != nil {
		return errors.Wrapf(err, "mmap: unmap %d bytes", len(buf))
	}
	return nil
}
