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

import "fmt"

// Node is a member of the ring. Its identity is the ring identifier;
// finger entries are identifier-indirected (node_ids, not pointers) so
// that the index remains the single owner of Node values — a rebuild
// after join/leave is enough to drop stale references.
type Node struct {
	id      uint64
	store   map[string]string
	finger  []uint64
	counter uint64
}

func newNode(id uint64) *Node {
	return &Node{
		id:    id,
		store: map[string]string{},
	}
}

// ID returns the node's ring identifier.
func (n *Node) ID() uint64 { return n.id }

// Counter returns the number of writes this node has served as primary
// or replica.
func (n *Node) Counter() uint64 { return n.counter }

// Size returns the number of extents currently held by the node.
func (n *Node) Size() int { return len(n.store) }

// Get returns the value stored under key, if present.
func (n *Node) Get(key string) (string, bool) {
	v, ok := n.store[key]
	return v, ok
}

func (n *Node) put(key, value string) {
	n.store[key] = value
	n.counter++
}

func (n *Node) delete(key string) {
	delete(n.store, key)
}

// migrate sets (key, value) on n without incrementing the write counter.
func (n *Node) migrate(key, value string) {
	n.store[key] = value
}

func (n *Node) String() string {
	return fmt.Sprintf("node[%d] keys=%d writes=%d", n.id, len(n.store), n.counter)
}
