/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

package ring

// rebuildFingers materialises m entries per node, finger[k] = successor of
// (node_id + 2^k) mod 2^m. Invoked after every join/leave; O(N * m * log N).
func rebuildFingers(m uint, idx *index) {
	for _, n := range idx.nodes() {
		finger := make([]uint64, m)
		for k := uint(0); k < m; k++ {
			target := modulus(n.id+(uint64(1)<<k), m)
			succ, _ := idx.successor(target) // idx is non-empty: n is a member
			finger[k] = succ.id
		}
		n.finger = finger
	}
}

// dist is the forward walking distance from a to x on a 2^m ring, 0 when
// x == a.
func dist(a, x uint64, m uint) uint64 {
	return modulus(x-a, m)
}

// inInterval tests modular membership of x in (a, b], or in (a, b) when
// includeRight is false. If a == b the interval spans the whole ring, per
// spec: "if a == b the interval spans the whole ring".
func inInterval(x, a, b uint64, m uint, includeRight bool) bool {
	if a == b {
		if includeRight {
			return true
		}
		return x != a
	}

	d := dist(a, b, m)
	dx := dist(a, x, m)
	if includeRight {
		return dx > 0 && dx <= d
	}
	return dx > 0 && dx < d
}

// findSuccessorFrom is the Chord routing procedure used when the caller is
// a node rather than the global index: it returns the same node as
// idx.successor(h) but walks finger pointers instead of binary search.
func findSuccessorFrom(origin *Node, h uint64, idx *index, m uint) (*Node, error) {
	if idx.size() == 0 {
		return nil, errEmpty("findSuccessorFrom")
	}

	current := origin
	limit := int(m)*idx.size() + idx.size() + 2

	for i := 0; i < limit; i++ {
		f0, ok := idx.get(current.finger[0])
		if !ok {
			return current, nil
		}

		if inInterval(h, current.id, f0.id, m, true) {
			return f0, nil
		}

		var next *Node
		for k := len(current.finger) - 1; k >= 0; k-- {
			yid := current.finger[k]
			if inInterval(yid, current.id, h, m, false) {
				if y, ok := idx.get(yid); ok {
					next = y
				}
				break
			}
		}

		if next == nil || next.id == current.id {
			return current, nil
		}
		current = next
	}

	return current, nil
}
