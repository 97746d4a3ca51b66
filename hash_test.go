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
	"testing"

	"github.com/fogfish/it"
)

func TestSha1HasherDeterministic(t *testing.T) {
	h := sha1Hasher(16)

	a := h("extent42")
	b := h("extent42")
	it.Ok(t).If(a).Equal(b)
}

func TestSha1HasherInRange(t *testing.T) {
	for _, m := range []uint{8, 16, 32, 64} {
		h := sha1Hasher(m)
		for i := 0; i < 100; i++ {
			addr := h(testExtentKey(i))
			if m < 64 {
				it.Ok(t).IfTrue(addr <= highest(m))
			}
		}
	}
}

func TestModulusFullRangeAtM64(t *testing.T) {
	it.Ok(t).If(modulus(12345, 64)).Equal(uint64(12345))
	it.Ok(t).If(highest(64)).Equal(^uint64(0))
}

func TestModulusMasksLowerM(t *testing.T) {
	it.Ok(t).If(modulus(0xFF, 4)).Equal(uint64(0xF))
	it.Ok(t).If(highest(4)).Equal(uint64(15))
}
