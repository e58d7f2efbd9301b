package encoding

// Stream is a cursor over the raw bytes of a foreign C layout.
// BlockSize is the pointer width of the layout's owning code, which
// decides how pointer-sized fields are read and padded.
type Stream interface {
	BlockSize() int
	Offset() uint64
	Skip(int) error
	Read([]byte) (int, error)
	Write([]byte) (int, error)
}
