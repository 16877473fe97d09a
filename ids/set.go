package ids

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrDuplicateIdentifier is returned when a Set is built from repeated identifiers.
var ErrDuplicateIdentifier = errors.New("duplicate identifier")

// DuplicateError reports the first repeated identifier found while building a Set.
type DuplicateError struct {
	Identifier string
	First      int
	Second     int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate identifier %q at positions %d and %d", e.Identifier, e.First, e.Second)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateIdentifier }

// Set is an immutable collection of identifiers with their positions.
type Set struct {
	kind    Kind
	ordered []string
	pos     map[string]int
}

// New builds a Set from identifiers in file order.
// The position of each identifier is its index in identifiers.
func New(kind Kind, identifiers []string) (*Set, error) {
	pos := make(map[string]int, len(identifiers))
	for i, id := range identifiers {
		if prev, ok := pos[id]; ok {
			return nil, &DuplicateError{Identifier: id, First: prev, Second: i}
		}
		pos[id] = i
	}

	ordered := make([]string, len(identifiers))
	copy(ordered, identifiers)

	return &Set{kind: kind, ordered: ordered, pos: pos}, nil
}

// Kind returns what the identifiers name.
func (s *Set) Kind() Kind {
	return s.kind
}

// Len returns the number of identifiers.
func (s *Set) Len() int {
	return len(s.ordered)
}

// Contains reports whether id is a member.
func (s *Set) Contains(id string) bool {
	_, ok := s.pos[id]
	return ok
}

// Position returns the file position of id.
func (s *Set) Position(id string) (int, bool) {
	p, ok := s.pos[id]
	return p, ok
}

// Identifiers returns all identifiers in position order.
// The returned slice is shared; do not modify.
func (s *Set) Identifiers() []string {
	return s.ordered
}

// Intersect returns the members that are also in s.
// Members absent from s are dropped.
func (s *Set) Intersect(members []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, m := range members {
		if _, ok := s.pos[m]; ok {
			out[m] = struct{}{}
		}
	}
	return out
}

// Positions returns the positions of the members that are in s.
func (s *Set) Positions(members []string) *roaring.Bitmap {
	bm := roaring.New()
	for _, m := range members {
		if p, ok := s.pos[m]; ok {
			bm.Add(uint32(p)) //nolint:gosec
		}
	}
	return bm
}

// Select returns the members that are in s, ordered by position.
// Duplicates in members are collapsed.
func (s *Set) Select(members []string) []string {
	bm := s.Positions(members)
	out := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, s.ordered[it.Next()])
	}
	return out
}

// Subset returns the members that are in s as a new Set.
// The subset keeps the kind of s, whatever the members claim to be.
func (s *Set) Subset(members []string) *Set {
	selected := s.Select(members)
	pos := make(map[string]int, len(selected))
	for i, id := range selected {
		pos[id] = i
	}
	return &Set{kind: s.kind, ordered: selected, pos: pos}
}
