package domain

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Sequence allocates monotonic, prefixed identifiers such as ACC001 or
// TXN042. Registries own their sequences instead of relying on package
// globals, which keeps tests isolated and allocation safe under
// concurrency.
//
// Identifiers are zero-padded to three digits; past 999 they widen
// (ACC1000) rather than collide.
type Sequence struct {
	prefix string
	last   atomic.Int64
}

// NewSequence returns a sequence that issues ids with the given prefix,
// starting at <prefix>001.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (s *Sequence) Next() string {
	return fmt.Sprintf("%s%03d", s.prefix, s.last.Add(1))
}

// Advance raises the sequence so it will never re-issue id or anything
// below it. Used when restoring persisted entities that carry their own
// identifiers. Ids with a foreign prefix or non-numeric suffix are ignored.
func (s *Sequence) Advance(id string) {
	suffix, ok := strings.CutPrefix(id, s.prefix)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return
	}
	for {
		cur := s.last.Load()
		if n <= cur || s.last.CompareAndSwap(cur, n) {
			return
		}
	}
}
