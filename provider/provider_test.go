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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviders(t *testing.T) {
	tests := []struct {
		name string
		p    Provider
	}{
		{"heap", Heap{}},
		{"pooled", Pooled{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, sz := range []int{64, 1000, 4096, 1 << 20} {
				buf, err := tt.p.Acquire(sz)
				require.NoError(t, err, "size=%d", sz)
				assert.GreaterOrEqual(t, len(buf), sz)
				// must be writable end to end
				buf[0], buf[sz-1] = 1, 2
				assert.NoError(t, tt.p.Release(buf))
			}

			_, err := tt.p.Acquire(0)
			assert.ErrorIs(t, err, ErrInvalidSize)
			_, err = tt.p.Acquire(-1)
			assert.ErrorIs(t, err, ErrInvalidSize)
		})
	}
}
