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

import "sort"

// index is the ordered sequence of node identifiers, kept sorted, plus a
// reverse map from identifier to node. It is the single owner of Node
// values; every other reference into the ring is an identifier.
type index struct {
	ids []uint64
	by  map[uint64]*Node
}

func newIndex() *index {
	return &index{by: map[uint64]*Node{}}
}

func (x *index) size() int { return len(x.ids) }

func (x *index) get(id uint64) (*Node, bool) {
	n, ok := x.by[id]
	return n, ok
}

// insert preserves sort order by node_id; returns ErrDuplicateNode if the
// identifier is already present, leaving the index untouched.
func (x *index) insert(n *Node) error {
	if _, exists := x.by[n.id]; exists {
		return errDuplicate(n.id)
	}

	i := sort.Search(len(x.ids), func(i int) bool { return x.ids[i] >= n.id })
	x.ids = append(x.ids, 0)
	copy(x.ids[i+1:], x.ids[i:])
	x.ids[i] = n.id
	x.by[n.id] = n

	return nil
}

// remove deletes the matching node; no-op if absent.
func (x *index) remove(id uint64) {
	if _, exists := x.by[id]; !exists {
		return
	}

	i := sort.Search(len(x.ids), func(i int) bool { return x.ids[i] >= id })
	x.ids = append(x.ids[:i], x.ids[i+1:]...)
	delete(x.by, id)
}

// successor returns the node with the smallest node_id >= id, wrapping to
// the first node when id exceeds the largest node_id. Fails with
// ErrRingEmpty when the index holds no nodes.
func (x *index) successor(id uint64) (*Node, error) {
	if len(x.ids) == 0 {
		return nil, errEmpty("successor")
	}

	i := sort.Search(len(x.ids), func(i int) bool { return x.ids[i] >= id })
	if i == len(x.ids) {
		i = 0
	}

	return x.by[x.ids[i]], nil
}

// nextAfter returns the node at position (index(n)+1) mod N.
func (x *index) nextAfter(n *Node) (*Node, error) {
	if len(x.ids) == 0 {
		return nil, errEmpty("nextAfter")
	}

	i := sort.Search(len(x.ids), func(i int) bool { return x.ids[i] >= n.id })
	if i == len(x.ids) || x.ids[i] != n.id {
		// n is not a member of this index snapshot; treat its id as the
		// search key and take the following slot.
		if i == len(x.ids) {
			i = 0
		}
		return x.by[x.ids[i]], nil
	}

	i = (i + 1) % len(x.ids)
	return x.by[x.ids[i]], nil
}

// nodes returns every node in sorted order, for maintenance passes.
func (x *index) nodes() []*Node {
	seq := make([]*Node, len(x.ids))
	for i, id := range x.ids {
		seq[i] = x.by[id]
	}
	return seq
}
