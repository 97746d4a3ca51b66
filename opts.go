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
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Option configures a Ring at construction time.
type Option func(*Ring)

// WithM configures the ring's address space exponent: identifiers live
// in [0, 2^m).
func WithM(m uint) Option {
	return func(r *Ring) { r.m = m }
}

// WithNumExtents configures the declared universe of keys used by the
// workload driver (extent0 .. extent{n-1}).
func WithNumExtents(n int) Option {
	return func(r *Ring) { r.numExtents = n }
}

// WithReplicationFactor configures how many successors after the primary
// also hold a copy of each stored extent.
func WithReplicationFactor(n int) Option {
	return func(r *Ring) { r.replicas = n }
}

// WithHasher overrides the default SHA-1 hasher. Exposed for tests that
// need to pin specific key placements; production rings should rely on
// the default.
func WithHasher(h Hasher) Option {
	return func(r *Ring) { r.hasher = h }
}

// WithRand supplies the random source used by JoinRandom, so that its
// identifier sequence is reproducible under a fixed seed. SimulateWorkload
// does not draw from it: its keys and values follow from the op index.
func WithRand(rng *rand.Rand) Option {
	return func(r *Ring) { r.rng = rng }
}

// WithLogger overrides the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(r *Ring) { r.log = l }
}

// Options turns a list of Option into a single Option, applied in order.
func Options(opts ...Option) Option {
	return func(r *Ring) {
		for _, opt := range opts {
			opt(r)
		}
	}
}

// Presets mirroring common simulation scales.
var (
	Small  = Options(WithM(8), WithNumExtents(64), WithReplicationFactor(1))
	Medium = Options(WithM(32), WithNumExtents(4096), WithReplicationFactor(2))
	Large  = Options(WithM(64), WithNumExtents(1<<20), WithReplicationFactor(3))
)
