package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/uldane/microhook/encoding"
)

// byteStream is a plain in-memory stream for codec tests.
type byteStream struct {
	buf []byte
	off int
	bs  int
}

func (s *byteStream) BlockSize() int { return s.bs }

func (s *byteStream) Offset() uint64 { return uint64(s.off) }

func (s *byteStream) Skip(n int) error {
	s.off += n
	return nil
}

func (s *byteStream) Read(b []byte) (int, error) {
	if s.off+len(b) > len(s.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	n := copy(b, s.buf[s.off:])
	s.off += n
	return n, nil
}

func (s *byteStream) Write(b []byte) (int, error) {
	if s.off+len(b) > len(s.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	n := copy(s.buf[s.off:], b)
	s.off += n
	return n, nil
}

// eventParams mirrors a 32-bit C struct with interior padding and a
// pointer-sized tail field.
type eventParams struct {
	Flags uint32
	Kind  uint8
	Count uint32
	Data  uintptr
}

func TestDecodeStruct32(t *testing.T) {
	buf := []byte{
		0x44, 0x33, 0x22, 0x11, // Flags
		0x55,             // Kind
		0xEE, 0xEE, 0xEE, // padding
		0x78, 0x56, 0x34, 0x12, // Count
		0xEF, 0xBE, 0xAD, 0xDE, // Data (4-byte pointer)
	}
	var v eventParams
	if err := encoding.Decode(&byteStream{buf: buf, bs: 4}, &v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Flags != 0x11223344 || v.Kind != 0x55 || v.Count != 0x12345678 || v.Data != 0xDEADBEEF {
		t.Fatalf("decoded %+v", v)
	}
}

func TestEncodeStruct32LeavesPadding(t *testing.T) {
	v := eventParams{Flags: 0x11223344, Kind: 0x55, Count: 0x12345678, Data: 0xDEADBEEF}
	buf := bytes.Repeat([]byte{0xEE}, 16)
	if err := encoding.Encode(&byteStream{buf: buf, bs: 4}, &v); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{
		0x44, 0x33, 0x22, 0x11,
		0x55,
		0xEE, 0xEE, 0xEE, // padding untouched
		0x78, 0x56, 0x34, 0x12,
		0xEF, 0xBE, 0xAD, 0xDE,
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("encoded % X, want % X", buf, want)
	}
}

func TestSizeOf(t *testing.T) {
	if got := encoding.SizeOf(eventParams{}, 4); got != 16 {
		t.Fatalf("SizeOf(bs=4) = %d, want 16", got)
	}
	// with 8-byte pointers Data aligns to 8: 4+1+3+4+4(pad)+8
	if got := encoding.SizeOf(&eventParams{}, 8); got != 24 {
		t.Fatalf("SizeOf(bs=8) = %d, want 24", got)
	}
	if got := encoding.SizeOf(uint32(0), 4); got != 4 {
		t.Fatalf("SizeOf(uint32) = %d", got)
	}
}

func TestArrayField(t *testing.T) {
	type pair struct {
		IDs [2]uint32
		Tag uint16
	}
	buf := []byte{
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0xCD, 0xAB,
		0x00, 0x00, // tail padding to align 4
	}
	var v pair
	if err := encoding.Decode(&byteStream{buf: buf, bs: 4}, &v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.IDs != [2]uint32{1, 2} || v.Tag != 0xABCD {
		t.Fatalf("decoded %+v", v)
	}
	if got := encoding.SizeOf(pair{}, 4); got != 12 {
		t.Fatalf("SizeOf = %d, want 12", got)
	}
}

func TestIgnoredField(t *testing.T) {
	type rec struct {
		A     uint32
		Local *byte `encoding:"ignore"`
		B     uint32
	}
	buf := []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}
	var v rec
	if err := encoding.Decode(&byteStream{buf: buf, bs: 4}, &v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.A != 1 || v.B != 2 || v.Local != nil {
		t.Fatalf("decoded %+v", v)
	}
}

func TestDecodeErrors(t *testing.T) {
	s := &byteStream{buf: make([]byte, 4), bs: 4}
	if err := encoding.Decode(s, eventParams{}); err != encoding.ErrNotPointer {
		t.Fatalf("non-pointer error = %v", err)
	}
	var nilPtr *eventParams
	if err := encoding.Decode(s, nilPtr); err != encoding.ErrNilValue {
		t.Fatalf("nil pointer error = %v", err)
	}
	var v eventParams
	if err := encoding.Decode(&byteStream{buf: make([]byte, 3), bs: 4}, &v); err == nil {
		t.Fatal("short stream should fail")
	}
}
