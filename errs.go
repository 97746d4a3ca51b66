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

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors of the ring. Use errors.Is against these, the wrapped
// message carries the offending value.
var (
	ErrIdentifierOutOfRange = errors.New("identifier out of range")
	ErrDuplicateNode        = errors.New("duplicate node")
	ErrUnknownNode          = errors.New("unknown node")
	ErrRingEmpty            = errors.New("ring is empty")
	ErrCollisionExhausted   = errors.New("collision exhausted")
)

func errOutOfRange(id uint64, m uint) error {
	return pkgerrors.Wrap(
		fmt.Errorf("%w: %d not in [0, 2^%d)", ErrIdentifierOutOfRange, id, m),
		"ring.Join",
	)
}

func errDuplicate(id uint64) error {
	return pkgerrors.Wrap(
		fmt.Errorf("%w: %d", ErrDuplicateNode, id),
		"ring.Join",
	)
}

func errUnknown(id uint64) error {
	return pkgerrors.Wrap(
		fmt.Errorf("%w: %d", ErrUnknownNode, id),
		"ring.Leave",
	)
}

func errEmpty(op string) error {
	return pkgerrors.Wrap(
		fmt.Errorf("%w: %s on ring with no nodes", ErrRingEmpty, op),
		"ring."+op,
	)
}

func errCollision(attempts int) error {
	return pkgerrors.Wrap(
		fmt.Errorf("%w: no free identifier after %d attempts", ErrCollisionExhausted, attempts),
		"ring.JoinRandom",
	)
}
