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

import "errors"

// Errors returned by Arena. Returned errors may carry extra context,
// match them with errors.Is.
var (
	// ErrArenaTooSmall means the request can never be satisfied, even by an empty arena.
	ErrArenaTooSmall = errors.New("buddy: request larger than arena")

	// ErrOutOfMemory means no free block is large enough right now.
	ErrOutOfMemory = errors.New("buddy: out of memory")

	// ErrInvalidPointer means a block passed to free was not handed out by the arena,
	// or has already been freed.
	ErrInvalidPointer = errors.New("buddy: invalid pointer")

	ErrInvalidSize      = errors.New("buddy: invalid size")
	ErrInvalidAlignment = errors.New("buddy: invalid alignment")
	ErrInvalidConfig    = errors.New("buddy: invalid config")

	// ErrDestroyed is returned by every operation after Destroy.
	ErrDestroyed = errors.New("buddy: arena destroyed")

	// ErrCorrupted is reported by CheckInvariants.
	ErrCorrupted = errors.New("buddy: bookkeeping corrupted")
)
