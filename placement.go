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

// computePlacement resolves a key's primary (successor of hash(key)) and
// its r contiguous replica successors, walked via direct succession.
func computePlacement(idx *index, hasher Hasher, r int, key string) (*Node, []*Node, error) {
	h := hasher(key)

	primary, err := idx.successor(h)
	if err != nil {
		return nil, nil, errEmpty("placement")
	}

	replicas := make([]*Node, 0, r)
	cur := primary
	for i := 0; i < r; i++ {
		next, err := idx.nextAfter(cur)
		if err != nil {
			break
		}
		if next.id == primary.id {
			// stepping around the ring returned to the primary: fewer
			// than r other nodes exist, stop early.
			break
		}
		replicas = append(replicas, next)
		cur = next
	}

	return primary, replicas, nil
}
