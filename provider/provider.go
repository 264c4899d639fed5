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

// Package provider supplies the backing memory of a buddy arena.
//
// A Provider is asked for one buffer when an arena is created and gets it back
// exactly once when the arena is destroyed.
package provider

import "errors"

// ErrInvalidSize is returned when a non-positive size is requested.
var ErrInvalidSize = errors.New("provider: invalid size")

// ErrUnsupported is returned by providers not available on the current platform.
var ErrUnsupported = errors.New("provider: unsupported on this platform")

// Provider acquires and releases arena buffers.
type Provider interface {
	// Acquire returns a buffer with len >= size. Contents are unspecified.
	Acquire(size int) ([]byte, error)

	// Release returns a buffer obtained from Acquire.
	// The caller must not touch buf afterwards.
	Release(buf []byte) error
}
