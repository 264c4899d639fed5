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

import (
	"io"
	"log/slog"
	"math/bits"

	"github.com/pkg/errors"

	"github.com/cloudwego/buddyarena/provider"
)

const (
	// HeaderSize is the size of the header written in front of every allocation.
	HeaderSize = 8

	// DefaultMinBlockSize is the default size of an order-0 block.
	DefaultMinBlockSize = 64

	// maxArenaSize keeps size+alignment arithmetic clear of int overflow.
	maxArenaSize = 1 << (bits.UintSize - 3)
)

// Config ...
type Config struct {
	// RequestedSize is the lower bound of the arena capacity.
	// The arena is rounded up to a power of two, and to at least MinBlockSize.
	RequestedSize int

	// MinBlockSize is the size of the smallest block, header included.
	// It must be a power of two greater than HeaderSize.
	// Zero means DefaultMinBlockSize.
	MinBlockSize int

	// Provider supplies the arena buffer. Nil means provider.Heap.
	Provider provider.Provider

	// Logger receives lifecycle records, and split/coalesce records at debug level.
	// Nil discards everything.
	Logger *slog.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (c *Config) fillDefaults() {
	if c.MinBlockSize == 0 {
		c.MinBlockSize = DefaultMinBlockSize
	}
	if c.Provider == nil {
		c.Provider = provider.Heap{}
	}
	if c.Logger == nil {
		c.Logger = discardLogger
	}
}

func (c *Config) validate() error {
	if c.MinBlockSize <= 0 || c.MinBlockSize&(c.MinBlockSize-1) != 0 {
		return errors.Wrapf(ErrInvalidConfig, "MinBlockSize must be a power of two, got %d", c.MinBlockSize)
	}
	if c.MinBlockSize <= HeaderSize {
		return errors.Wrapf(ErrInvalidConfig, "MinBlockSize must be > HeaderSize (%d), got %d", HeaderSize, c.MinBlockSize)
	}
	if c.RequestedSize < 0 || c.RequestedSize > maxArenaSize {
		return errors.Wrapf(ErrInvalidConfig, "RequestedSize out of range [0, %d], got %d", maxArenaSize, c.RequestedSize)
	}
	return nil
}

// arenaSize rounds the requested capacity up to a power of two.
func (c *Config) arenaSize() int {
	n := max(c.RequestedSize, c.MinBlockSize)
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}
