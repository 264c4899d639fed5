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
	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/pkg/errors"
)

// Heap allocates arena buffers on the Go heap without zeroing them.
// Release is a no-op, the buffer is reclaimed by the GC.
type Heap struct{}

var _ Provider = Heap{}

// Acquire implements Provider.
func (Heap) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "heap: size=%d", size)
	}
	return dirtmake.Bytes(size, size), nil
}

// Release implements Provider.
func (Heap) Release([]byte) error { return nil }
