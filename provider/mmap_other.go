//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

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

// Mmap is not available on this platform, Acquire always fails.
type Mmap struct{}

var _ Provider = Mmap{}

// Acquire implements Provider.
func (Mmap) Acquire(int) ([]byte, error) { return nil, ErrUnsupported }

// Release implements Provider.
func (Mmap) Release([]byte) error { return ErrUnsupported }
