package scan

import (
	"iter"

	"github.com/uldane/microhook/memory"
	"github.com/uldane/microhook/pattern"
)

// Scanner locates pattern matches inside a memory window.
type Scanner struct {
	win *memory.Window
	pat pattern.Pattern
}

func New(win *memory.Window, pat pattern.Pattern) *Scanner {
	return &Scanner{win, pat}
}

// Match is an address inside a window where a pattern matched
// contiguously. It is a value, it retains no memory of its own.
type Match struct {
	win *memory.Window
	off int
	n   int
}

func (m Match) Window() *memory.Window {
	return m.win
}

func (m Match) Offset() int {
	return m.off
}

// Len is the matched byte count, the pattern length.
func (m Match) Len() int {
	return m.n
}

func (m Match) Addr() uint64 {
	return m.win.Addr(m.off)
}

// All returns the matches in ascending address order. The sequence is
// lazy and restartable: each range starts over from the window base.
// Every byte offset is a candidate position, matches need no alignment.
func (s *Scanner) All() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		data, err := s.win.Bytes(0, s.win.Size())
		if err != nil {
			return
		}
		for off := 0; off+len(s.pat) <= len(data); off++ {
			if !s.pat.MatchAt(data, off) {
				continue
			}
			if !yield(Match{s.win, off, len(s.pat)}) {
				return
			}
		}
	}
}

// First returns the lowest-address match, or ErrNotFound.
func (s *Scanner) First() (Match, error) {
	for m := range s.All() {
		return m, nil
	}
	return Match{}, ErrNotFound
}

// Unique returns the single match of the pattern. A second match is
// reported as ambiguity rather than guessed away.
func (s *Scanner) Unique() (Match, error) {
	var first Match
	found := false
	for m := range s.All() {
		if found {
			return Match{}, &AmbiguousMatchError{First: first.Addr(), Second: m.Addr()}
		}
		first, found = m, true
	}
	if !found {
		return Match{}, ErrNotFound
	}
	return first, nil
}
