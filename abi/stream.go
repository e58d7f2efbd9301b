package abi

import (
	"github.com/uldane/microhook/encoding"
	"github.com/uldane/microhook/memory"
)

type windowStream struct {
	win *memory.Window
	off int
	bs  int
}

// BlockStream positions an encoding stream over win at addr, with the
// window arch's pointer width as the block size.
func BlockStream(win *memory.Window, addr uint64) (encoding.Stream, error) {
	off, err := win.Offset(addr)
	if err != nil {
		return nil, err
	}
	return &windowStream{win, off, win.Arch().PtrSize()}, nil
}

func (ws *windowStream) BlockSize() int {
	return ws.bs
}

func (ws *windowStream) Offset() uint64 {
	return ws.win.Addr(ws.off)
}

func (ws *windowStream) Skip(n int) error {
	ws.off += n
	return nil
}

func (ws *windowStream) Read(b []byte) (int, error) {
	n, err := ws.win.ReadAt(b, int64(ws.off))
	if err == nil {
		ws.off += n
	}
	return n, err
}

func (ws *windowStream) Write(b []byte) (int, error) {
	n, err := ws.win.WriteAt(b, int64(ws.off))
	if err == nil {
		ws.off += n
	}
	return n, err
}
