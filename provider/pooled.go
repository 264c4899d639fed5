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
	"github.com/bytedance/gopkg/lang/mcache"
	"github.com/pkg/errors"
)

// Pooled takes arena buffers from power-of-two sized pools, so arenas that are
// created and destroyed frequently reuse their memory.
//
// The buffer returned by Acquire must be passed to Release unchanged:
// the pool is selected by its cap.
type Pooled struct{}

var _ Provider = Pooled{}

// Acquire implements Provider.
func (Pooled) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "pooled: size=%d", size)
	}
	return mcache.Malloc(size), nil
}

// Release implements Provider.
func (Pooled) Release(buf []byte) error {
	mcache.Free(buf)
	return nil
}
