package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// Token matches one byte of foreign code: either an exact value or a
// wildcard that matches any byte.
type Token struct {
	Value byte
	Any   bool
}

// Pattern is an ordered byte signature. At least one token must be exact,
// an all-wildcard pattern matches everywhere and is rejected.
type Pattern []Token

// Parse reads the usual signature notation: hex byte values separated by
// whitespace, with "?" or "??" marking a wildcard position.
//
//	Parse("50 51 52 8B CE E8 ?? ?? ?? ?? 5E")
func Parse(s string) (Pattern, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, ErrEmptyPattern
	}
	pat := make(Pattern, 0, len(fields))
	for i, f := range fields {
		if f == "?" || f == "??" {
			pat = append(pat, Token{Any: true})
			continue
		}
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("token %d %q: %w", i, f, ErrBadToken)
		}
		pat = append(pat, Token{Value: byte(v)})
	}
	if err := pat.check(); err != nil {
		return nil, err
	}
	return pat, nil
}

// Exact builds a pattern of only literal bytes.
func Exact(b []byte) (Pattern, error) {
	if len(b) == 0 {
		return nil, ErrEmptyPattern
	}
	pat := make(Pattern, len(b))
	for i, v := range b {
		pat[i] = Token{Value: v}
	}
	return pat, nil
}

// Mask builds a pattern from a byte string and a mask of the same length,
// where a zero mask byte marks a wildcard position.
func Mask(b, mask []byte) (Pattern, error) {
	if len(b) == 0 {
		return nil, ErrEmptyPattern
	}
	if len(b) != len(mask) {
		return nil, ErrLengthMismatch
	}
	pat := make(Pattern, len(b))
	for i, v := range b {
		pat[i] = Token{Value: v, Any: mask[i] == 0}
	}
	if err := pat.check(); err != nil {
		return nil, err
	}
	return pat, nil
}

func (p Pattern) check() error {
	if len(p) == 0 {
		return ErrEmptyPattern
	}
	for _, t := range p {
		if !t.Any {
			return nil
		}
	}
	return ErrNonDiscriminating
}

// MatchAt reports whether the pattern matches buf at offset off.
func (p Pattern) MatchAt(buf []byte, off int) bool {
	if off < 0 || off+len(p) > len(buf) {
		return false
	}
	for i, t := range p {
		if !t.Any && buf[off+i] != t.Value {
			return false
		}
	}
	return true
}

// String renders the pattern back to Parse notation.
func (p Pattern) String() string {
	var sb strings.Builder
	for i, t := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if t.Any {
			sb.WriteString("??")
		} else {
			fmt.Fprintf(&sb, "%02X", t.Value)
		}
	}
	return sb.String()
}
