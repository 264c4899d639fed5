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

import "github.com/pkg/errors"

// CheckInvariants audits the whole tree and returns an ErrCorrupted error
// describing the first violation found. It walks every node, use it in tests
// and debugging, not on hot paths.
//
// Checked: every node holds a valid state; the root is part of the tiling;
// a node is part of the tiling iff its parent is split; split nodes are never
// leaves; no two buddies are free at once; free counters match the tree;
// free and allocated blocks cover the arena exactly.
func (a *Arena) CheckInvariants() error {
	if a.destroyed {
		return ErrDestroyed
	}
	if a.nodes[0] == 0 {
		return errors.Wrap(ErrCorrupted, "root is not initialized")
	}

	free := make([]int, a.maxOrder+1)
	covered, allocated, allocatedBytes := 0, 0, 0
	for i, st := range a.nodes {
		switch st {
		case 0, stateFree, stateSplit, stateAllocated:
		default:
			return errors.Wrapf(ErrCorrupted, "node %d: invalid state %#x", i, st)
		}
		if i > 0 {
			parentSplit := a.nodes[parentOf(i)] == stateSplit
			if parentSplit != (st != 0) {
				return errors.Wrapf(ErrCorrupted, "node %d: state %#x under parent state %#x", i, st, a.nodes[parentOf(i)])
			}
		}
		order := a.orderOf(i)
		switch st {
		case stateSplit:
			if order == 0 {
				return errors.Wrapf(ErrCorrupted, "node %d: order 0 block is split", i)
			}
		case stateFree:
			free[order]++
			covered += a.sizeOf(order)
			if i > 0 && i%2 == 1 && a.nodes[buddyOf(i)] == stateFree {
				return errors.Wrapf(ErrCorrupted, "nodes %d and %d: free buddies not merged", i, buddyOf(i))
			}
		case stateAllocated:
			allocated++
			allocatedBytes += a.sizeOf(order)
			covered += a.sizeOf(order)
		}
	}

	for order, n := range free {
		if a.numFree[order] != n {
			return errors.Wrapf(ErrCorrupted, "order %d: counter says %d free, tree has %d", order, a.numFree[order], n)
		}
	}
	if allocated != a.allocated || allocatedBytes != a.allocatedBytes {
		return errors.Wrapf(ErrCorrupted, "allocated %d blocks/%d bytes, counters say %d/%d",
			allocated, allocatedBytes, a.allocated, a.allocatedBytes)
	}
	if covered != a.size {
		return errors.Wrapf(ErrCorrupted, "blocks cover %d bytes of %d", covered, a.size)
	}
	return nil
}
