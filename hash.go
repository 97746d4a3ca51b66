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
	"crypto/sha1"
	"math/big"
)

// Hasher maps an arbitrary byte string onto a ring identifier.
type Hasher func(key string) uint64

// sha1Hasher interprets the full 160-bit SHA-1 digest of key as a
// big-endian integer, reduced modulo the ring's address space.
func sha1Hasher(m uint) Hasher {
	mod := new(big.Int).Lsh(big.NewInt(1), m)

	return func(key string) uint64 {
		sum := sha1.Sum([]byte(key))
		digest := new(big.Int).SetBytes(sum[:])
		digest.Mod(digest, mod)
		return digest.Uint64()
	}
}

// modulus reduces x into [0, 2^m). m==64 spans the full uint64 range.
func modulus(x uint64, m uint) uint64 {
	if m >= 64 {
		return x
	}
	return x & ((uint64(1) << m) - 1)
}

// highest returns the largest identifier representable with m bits.
func highest(m uint) uint64 {
	if m >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << m) - 1
}
