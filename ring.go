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

// Package ring implements a consistent-hashing distributed hash table
// simulator modelled after the Chord protocol: an m-bit identifier ring,
// successor-based placement with contiguous replication, mandatory
// finger tables for O(log N) routed lookup, and a workload driver used
// to study load distribution as the node set grows.
package ring

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const joinRandomMaxAttempts = 16

// Ring coordinates the identifier index, finger tables and extent
// placement. It is the single owner of every Node; callers only ever
// hold identifier-valued references.
type Ring struct {
	m          uint
	numExtents int
	replicas   int
	hasher     Hasher
	rng        *rand.Rand
	log        *logrus.Logger
	joinSeq    uint64

	idx *index
}

// New constructs an empty Ring. Defaults to the Medium preset; pass
// options to override m, num_extents, replication_factor, hasher, the
// random source, or the logger.
func New(opts ...Option) *Ring {
	r := &Ring{}
	Medium(r)
	for _, opt := range opts {
		opt(r)
	}

	if r.hasher == nil {
		r.hasher = sha1Hasher(r.m)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(1))
	}
	if r.log == nil {
		r.log = logrus.New()
		r.log.SetLevel(logrus.WarnLevel)
	}
	r.idx = newIndex()

	return r
}

// Join adds a node at the given identifier. Fails with
// ErrIdentifierOutOfRange or ErrDuplicateNode, making no other change to
// the ring on failure.
func (r *Ring) Join(id uint64) error {
	if id > highest(r.m) {
		return errOutOfRange(id, r.m)
	}

	if err := r.idx.insert(newNode(id)); err != nil {
		return err
	}

	rebuildFingers(r.m, r.idx)
	r.redistributeOnJoin(id)

	r.log.WithFields(logrus.Fields{"node": id, "size": r.idx.size()}).Debug("node joined")
	return nil
}

// JoinRandom synthesises a unique attribute (a monotone logical counter
// concatenated with a token drawn from the ring's random source), hashes
// it, and joins the derived identifier. Retries a bounded number of
// times on collision before surfacing ErrCollisionExhausted. Entropy
// comes solely from r.rng, so two rings constructed with WithRand(seed)
// produce identical JoinRandom id sequences.
func (r *Ring) JoinRandom() (uint64, error) {
	for attempt := 0; attempt < joinRandomMaxAttempts; attempt++ {
		r.joinSeq++
		token, err := uuid.NewRandomFromReader(r.rng)
		if err != nil {
			return 0, err
		}
		attribute := fmt.Sprintf("%d-%s", r.joinSeq, token.String())
		id := r.hasher(attribute)

		err = r.Join(id)
		switch {
		case err == nil:
			return id, nil
		case errors.Is(err, ErrDuplicateNode):
			continue
		default:
			return 0, err
		}
	}

	return 0, errCollision(joinRandomMaxAttempts)
}

// Leave removes the node at id; its stored keys migrate to its
// successor. Fails with ErrUnknownNode, making no other change.
func (r *Ring) Leave(id uint64) error {
	z, exists := r.idx.get(id)
	if !exists {
		return errUnknown(id)
	}

	r.idx.remove(id)
	r.redistributeOnLeave(id, z)
	rebuildFingers(r.m, r.idx)

	r.log.WithFields(logrus.Fields{"node": id, "size": r.idx.size()}).Debug("node left")
	return nil
}

// Store writes (key, value) to the key's primary and its r replicas,
// incrementing each chosen node's write counter once per storage.
func (r *Ring) Store(key, value string) error {
	if r.idx.size() == 0 {
		return errEmpty("Store")
	}

	primary, replicas, err := computePlacement(r.idx, r.hasher, r.replicas, key)
	if err != nil {
		return err
	}

	primary.put(key, value)
	for _, rep := range replicas {
		rep.put(key, value)
	}

	r.log.WithFields(logrus.Fields{"key": key, "primary": primary.id, "replicas": len(replicas)}).Debug("stored")
	return nil
}

// LookupResult is the outcome of Lookup: the primary's identifier, the
// key that was requested, and its value at the primary (if any).
type LookupResult struct {
	NodeID uint64
	Key    string
	Value  string
	Found  bool
}

// Lookup returns the primary's identifier and its store entry for key.
// It does not consult replicas — a deliberate modelling choice so that
// replica-only keys expose placement bugs.
func (r *Ring) Lookup(key string) (LookupResult, error) {
	if r.idx.size() == 0 {
		return LookupResult{}, errEmpty("Lookup")
	}

	primary, err := r.idx.successor(r.hasher(key))
	if err != nil {
		return LookupResult{}, err
	}

	value, found := primary.Get(key)
	return LookupResult{NodeID: primary.id, Key: key, Value: value, Found: found}, nil
}

// Placement returns a key's primary node and its ordered replica nodes,
// min(r, N-1) of them.
func (r *Ring) Placement(key string) (primary uint64, replicaIDs []uint64, err error) {
	if r.idx.size() == 0 {
		return 0, nil, errEmpty("Placement")
	}

	p, reps, err := computePlacement(r.idx, r.hasher, r.replicas, key)
	if err != nil {
		return 0, nil, err
	}

	ids := make([]uint64, len(reps))
	for i, n := range reps {
		ids[i] = n.id
	}
	return p.id, ids, nil
}

// FindSuccessorFrom is the routed (finger-table walking) equivalent of
// Successor(h), exposed so decentralised-lookup tests can assert
// equivalence with the centralised index lookup.
func (r *Ring) FindSuccessorFrom(originID, h uint64) (uint64, error) {
	origin, exists := r.idx.get(originID)
	if !exists {
		return 0, errUnknown(originID)
	}

	n, err := findSuccessorFrom(origin, h, r.idx, r.m)
	if err != nil {
		return 0, err
	}
	return n.id, nil
}

// Successor is the centralised O(log N) equivalent of FindSuccessorFrom,
// used directly by Placement/Lookup/Store.
func (r *Ring) Successor(h uint64) (uint64, error) {
	n, err := r.idx.successor(h)
	if err != nil {
		return 0, err
	}
	return n.id, nil
}

// Address computes the ring address of key, i.e. hash(key) mod 2^m.
func (r *Ring) Address(key string) uint64 {
	return r.hasher(key)
}

// Size returns the number of nodes currently on the ring.
func (r *Ring) Size() int { return r.idx.size() }

// Nodes returns every node identifier in ascending order.
func (r *Ring) Nodes() []uint64 {
	nodes := r.idx.nodes()
	ids := make([]uint64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.id
	}
	return ids
}

// Finger returns node x's k-th finger entry (the successor of
// x.id + 2^k mod 2^m), for property-based finger-table assertions.
func (r *Ring) Finger(x uint64, k uint) (uint64, bool) {
	n, exists := r.idx.get(x)
	if !exists || int(k) >= len(n.finger) {
		return 0, false
	}
	return n.finger[k], true
}

// String renders a human-readable ring snapshot: every node, its store
// size and write counter, mirroring the teacher library's own Debug
// dump but reporting successors instead of shard ranks.
func (r *Ring) String() string {
	buf := strings.Builder{}
	fmt.Fprintf(&buf, "ring: m=%d, extents=%d, r=%d, nodes=%d\n", r.m, r.numExtents, r.replicas, r.idx.size())
	for _, n := range r.idx.nodes() {
		fmt.Fprintf(&buf, "| %20d keys=%-6d writes=%-6d finger[0]=%d\n", n.id, n.Size(), n.Counter(), firstFinger(n))
	}
	return buf.String()
}

func firstFinger(n *Node) uint64 {
	if len(n.finger) == 0 {
		return n.id
	}
	return n.finger[0]
}

// redistributeOnJoin migrates every key whose new primary is the joining
// node y to y, removing it from every other node that held it (its old
// primary and any replica). No new replica copies are placed, and keys
// whose primary did not change keep their existing copies.
func (r *Ring) redistributeOnJoin(newID uint64) {
	y, exists := r.idx.get(newID)
	if !exists {
		return
	}

	for _, x := range r.idx.nodes() {
		if x.id == newID {
			continue
		}

		for k, v := range x.store {
			primary, err := r.idx.successor(r.hasher(k))
			if err != nil || primary.id != newID {
				continue
			}
			y.migrate(k, v)
			x.delete(k)
		}
	}
}

// redistributeOnLeave hands z's store to the node that becomes successor
// of (z.id + 1) mod 2^m after removal.
func (r *Ring) redistributeOnLeave(zID uint64, z *Node) {
	if r.idx.size() == 0 {
		return
	}

	s, err := r.idx.successor(modulus(zID+1, r.m))
	if err != nil {
		return
	}

	for k, v := range z.store {
		s.migrate(k, v)
	}
}
