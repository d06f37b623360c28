// SPDX-License-Identifier: MIT

// Package paircov: wire snapshots of Partials.
// A Partial is the value that crosses process boundaries in multi-process
// deployments (checkpointing a long fold, shipping per-worker partials to a
// final reducer), so it implements encoding.BinaryMarshaler /
// encoding.BinaryUnmarshaler over a msgpack envelope.
package paircov

import (
	"fmt"

	"github.com/shamaton/msgpack/v2"
)

// snapshot is the wire shape of a Partial. Field names are part of the
// format; do not rename without a version bump.
type snapshot struct {
	D     int       `msgpack:"d"`
	Count []int64   `msgpack:"count"`
	Sum   []float64 `msgpack:"sum"`
	Prod  []float64 `msgpack:"prod"`
	Pair  []int64   `msgpack:"pair"`
}

// MarshalBinary encodes p as a msgpack snapshot.
func (p *Partial) MarshalBinary() ([]byte, error) {
	b, err := msgpack.Marshal(snapshot{
		D:     p.d,
		Count: p.count,
		Sum:   p.sum,
		Prod:  p.prod,
		Pair:  p.pair,
	})
	if err != nil {
		return nil, fmt.Errorf("paircov: MarshalBinary: %w", err)
	}

	return b, nil
}

// UnmarshalBinary replaces the receiver's state with the decoded snapshot.
// Returns ErrBadSnapshot when the decoded field lengths are inconsistent
// with the recorded dimension, leaving the receiver untouched in that case.
func (p *Partial) UnmarshalBinary(data []byte) error {
	var s snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("paircov: UnmarshalBinary: %w", err)
	}
	if s.D < 0 ||
		len(s.Count) != s.D || len(s.Sum) != s.D ||
		len(s.Prod) != s.D*s.D || len(s.Pair) != s.D*s.D {
		return fmt.Errorf("paircov: UnmarshalBinary: d=%d count=%d sum=%d prod=%d pair=%d: %w",
			s.D, len(s.Count), len(s.Sum), len(s.Prod), len(s.Pair), ErrBadSnapshot)
	}

	p.d = s.D
	p.count = s.Count
	p.sum = s.Sum
	p.prod = s.Prod
	p.pair = s.Pair

	return nil
}
