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

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/fogfish/it"
	"github.com/stretchr/testify/require"
)

func TestJoinDuplicateRejectedNoMutation(t *testing.T) {
	r := New(WithM(8), WithNumExtents(8), WithReplicationFactor(0))
	require.NoError(t, r.Join(5))

	before := r.Size()
	err := r.Join(5)
	require.True(t, errors.Is(err, ErrDuplicateNode))
	require.Equal(t, before, r.Size())
}

func TestJoinOutOfRange(t *testing.T) {
	r := New(WithM(4), WithNumExtents(8), WithReplicationFactor(0))
	err := r.Join(16) // 2^4 == 16, out of [0,16)
	require.True(t, errors.Is(err, ErrIdentifierOutOfRange))
	require.Equal(t, 0, r.Size())
}

func TestLeaveUnknownNode(t *testing.T) {
	r := New(WithM(8), WithNumExtents(8), WithReplicationFactor(0))
	r.Join(1)

	err := r.Leave(99)
	require.True(t, errors.Is(err, ErrUnknownNode))
	require.Equal(t, 1, r.Size())
}

func TestRingEmptyErrors(t *testing.T) {
	r := New(WithM(8), WithNumExtents(8), WithReplicationFactor(0))

	_, err := r.Lookup("a")
	require.True(t, errors.Is(err, ErrRingEmpty))

	err = r.Store("a", "b")
	require.True(t, errors.Is(err, ErrRingEmpty))

	_, _, err = r.Placement("a")
	require.True(t, errors.Is(err, ErrRingEmpty))

	_, err = r.SimulateWorkload(10)
	require.True(t, errors.Is(err, ErrRingEmpty))
}

func TestJoinRandomIsUnique(t *testing.T) {
	r := New(WithM(16), WithNumExtents(64), WithReplicationFactor(1), WithRand(rand.New(rand.NewSource(3))))

	seen := map[uint64]bool{}
	for i := 0; i < 20; i++ {
		id, err := r.JoinRandom()
		require.NoError(t, err)
		require.False(t, seen[id])
		seen[id] = true
	}
	require.Equal(t, 20, r.Size())
}

func TestStoreLookupRoundTrip(t *testing.T) {
	r := New(WithM(16), WithNumExtents(64), WithReplicationFactor(2))
	for _, id := range []uint64{10, 20000, 40000, 60000} {
		r.Join(id)
	}

	require.NoError(t, r.Store("widget", "v1"))

	got, err := r.Lookup("widget")
	require.NoError(t, err)
	require.True(t, got.Found)
	require.Equal(t, "v1", got.Value)
}

func TestStoreIsIdempotentOnContents(t *testing.T) {
	r := New(WithM(16), WithNumExtents(64), WithReplicationFactor(1))
	r.Join(1)
	r.Join(30000)

	require.NoError(t, r.Store("k", "same"))
	require.NoError(t, r.Store("k", "same"))

	got, err := r.Lookup("k")
	require.NoError(t, err)
	require.Equal(t, "same", got.Value)

	// counters still advance even though contents are unchanged
	primary, _, _ := r.Placement("k")
	n, _ := r.idx.get(primary)
	require.Equal(t, uint64(2), n.Counter())
}

// TestDeterminism is testable property #7: given a fixed sequence of
// (m, r, node_ids, store calls), the final per-node store contents are
// identical across runs.
func TestDeterminism(t *testing.T) {
	run := func() map[uint64]map[string]string {
		r := New(WithM(16), WithNumExtents(64), WithReplicationFactor(2))
		for _, id := range []uint64{500, 9000, 20000, 45000, 61000} {
			r.Join(id)
		}
		for i := 0; i < 200; i++ {
			r.Store(testExtentKey(i%32), testExtentKey(i))
		}

		out := map[uint64]map[string]string{}
		for _, n := range r.idx.nodes() {
			snapshot := map[string]string{}
			for k, v := range n.store {
				snapshot[k] = v
			}
			out[n.id] = snapshot
		}
		return out
	}

	a := run()
	b := run()
	require.Equal(t, a, b)
}

func TestLeaveMigratesKeysToSuccessor(t *testing.T) {
	r := New(WithM(8), WithNumExtents(8), WithReplicationFactor(0))
	for _, id := range []uint64{1, 4, 9, 11} {
		r.Join(id)
	}

	for i := 0; i < 8; i++ {
		r.Store(testExtentKey(i), testExtentKey(i))
	}

	removed, _ := r.idx.get(9)
	keysOnRemoved := map[string]string{}
	for k, v := range removed.store {
		keysOnRemoved[k] = v
	}

	require.NoError(t, r.Leave(9))

	// successor of (9+1) mod 2^8 after removal is 11
	succ, ok := r.idx.get(11)
	require.True(t, ok)
	for k, v := range keysOnRemoved {
		got, ok := succ.Get(k)
		require.True(t, ok)
		require.Equal(t, v, got)
	}
}

func TestStringSnapshotMentionsEveryNode(t *testing.T) {
	r := New(WithM(8), WithNumExtents(8), WithReplicationFactor(0))
	r.Join(1)
	r.Join(200)

	snap := r.String()
	it.Ok(t).IfTrue(len(snap) > 0)
	for _, id := range []uint64{1, 200} {
		it.Ok(t).IfTrue(strings.Contains(snap, fmt.Sprintf(" %d keys=", id)))
	}
}
