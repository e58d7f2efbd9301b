package scan

// CallSite is a match carrying an embedded displacement field: a
// control-transfer instruction whose operand references another address
// relative to the instruction that follows it.
type CallSite struct {
	match Match
	disp  int
	width int
}

// Site describes the displacement field at offset disp within the match,
// width bytes wide. The field must lie inside the matched span.
func Site(m Match, disp, width int) (CallSite, error) {
	if disp < 0 || width <= 0 || width > 8 || disp+width > m.Len() {
		return CallSite{}, ErrSiteBounds
	}
	return CallSite{m, disp, width}, nil
}

func (s CallSite) Match() Match {
	return s.match
}

func (s CallSite) Width() int {
	return s.width
}

// FieldAddr is the address of the displacement field itself.
func (s CallSite) FieldAddr() uint64 {
	return s.match.win.Addr(s.match.off + s.disp)
}

// Resolve reads the signed little-endian displacement and computes the
// absolute address it references: the address of the instruction
// following the field plus the displacement, under the window arch's
// modular address arithmetic. Overflow wraps, matching the target's
// instruction-pointer-relative semantics; it never traps or saturates.
func Resolve(site CallSite) (uint64, error) {
	win := site.match.win
	if win == nil {
		return 0, ErrUnreadableField
	}
	raw, err := win.Uint(site.match.off+site.disp, site.width)
	if err != nil {
		return 0, ErrUnreadableField
	}
	disp := signExtend(raw, site.width)
	next := win.Addr(site.match.off + site.disp + site.width)
	return (next + uint64(disp)) & win.Arch().Mask(), nil
}

func signExtend(v uint64, width int) int64 {
	shift := 64 - 8*width
	return int64(v<<shift) >> shift
}
