package encoding

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/modern-go/reflect2"

	"github.com/uldane/microhook/memory"
)

var (
	ErrNotPointer = errors.New("value is not a pointer")
	ErrNilValue   = errors.New("value is nil")
)

type handler func(Stream, unsafe.Pointer) error

// layout is the cached C representation of a Go type for one block size:
// how to read it, how to write it, and its foreign size and alignment.
type layout struct {
	read  handler
	write handler
	size  int
	align int
}

var layouts sync.Map // [2]uintptr{blockSize, rtype} -> *layout

// Decode fills val, which must be a non-nil pointer, from the C-layout
// bytes at the stream position. Field order, padding and pointer-sized
// fields follow the stream's block size, not the Go layout.
func Decode(stream Stream, val any) error {
	typ, ptr, err := target(val)
	if err != nil {
		return err
	}
	return layoutOf(typ, stream.BlockSize()).read(stream, ptr)
}

// Encode writes val's C-layout representation at the stream position.
// Padding bytes are skipped, not zeroed, so unrelated foreign bytes
// stay untouched.
func Encode(stream Stream, val any) error {
	typ, ptr, err := target(val)
	if err != nil {
		return err
	}
	return layoutOf(typ, stream.BlockSize()).write(stream, ptr)
}

// SizeOf reports the C-layout size of val's type for the given pointer
// width. val may be a value or a pointer to it.
func SizeOf(val any, blockSize int) int {
	typ := reflect2.TypeOf(val)
	if pt, ok := typ.(reflect2.PtrType); ok {
		typ = pt.Elem()
	}
	return layoutOf(typ, blockSize).size
}

func target(val any) (reflect2.Type, unsafe.Pointer, error) {
	typ := reflect2.TypeOf(val)
	ptrType, ok := typ.(reflect2.PtrType)
	if !ok {
		return nil, nil, ErrNotPointer
	}
	ptr := reflect2.PtrOf(val)
	if ptr == nil {
		return nil, nil, ErrNilValue
	}
	return ptrType.Elem(), ptr, nil
}

func layoutOf(typ reflect2.Type, bs int) *layout {
	key := [2]uintptr{uintptr(bs), typ.RType()}
	if v, ok := layouts.Load(key); ok {
		return v.(*layout)
	}
	lay := build(typ, bs)
	layouts.Store(key, lay)
	return lay
}

func build(typ reflect2.Type, bs int) *layout {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		size := int(typ.Type1().Size())
		return &layout{
			read: func(s Stream, p unsafe.Pointer) error {
				_, err := s.Read(unsafe.Slice((*byte)(p), size))
				return err
			},
			write: func(s Stream, p unsafe.Pointer) error {
				_, err := s.Write(unsafe.Slice((*byte)(p), size))
				return err
			},
			size:  size,
			align: size,
		}
	case reflect.Int, reflect.Uint, reflect.Uintptr, reflect.UnsafePointer:
		return buildBlock(typ, bs)
	case reflect.Array:
		return buildArray(typ, bs)
	case reflect.Struct:
		return buildStruct(typ, bs)
	}
	panic(fmt.Sprintf("encoding: unsupported type %s", typ))
}

// buildBlock handles fields that are pointer-sized in the foreign layout.
// The Go side may be wider than the block size, in which case the upper
// bytes are zeroed on decode and dropped on encode. Little-endian only.
func buildBlock(typ reflect2.Type, bs int) *layout {
	goSize := int(typ.Type1().Size())
	n := min(goSize, bs)
	pad := bs - n
	return &layout{
		read: func(s Stream, p unsafe.Pointer) error {
			b := unsafe.Slice((*byte)(p), goSize)
			clear(b)
			if _, err := s.Read(b[:n]); err != nil {
				return err
			}
			if pad > 0 {
				return s.Skip(pad)
			}
			return nil
		},
		write: func(s Stream, p unsafe.Pointer) error {
			b := unsafe.Slice((*byte)(p), goSize)
			if _, err := s.Write(b[:n]); err != nil {
				return err
			}
			if pad > 0 {
				var zero [8]byte
				_, err := s.Write(zero[:pad])
				return err
			}
			return nil
		},
		size:  bs,
		align: n,
	}
}

func buildArray(typ reflect2.Type, bs int) *layout {
	t := typ.Type1()
	elem := build(reflect2.Type2(t.Elem()), bs)
	count := t.Len()
	goStride := t.Elem().Size()
	each := func(h handler) handler {
		return func(s Stream, p unsafe.Pointer) error {
			for i := 0; i < count; i++ {
				if err := h(s, unsafe.Add(p, uintptr(i)*goStride)); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return &layout{
		read:  each(elem.read),
		write: each(elem.write),
		size:  count * elem.size,
		align: elem.align,
	}
}

func buildStruct(typ reflect2.Type, bs int) *layout {
	t := typ.Type1()
	type member struct {
		lay   *layout
		goOff uintptr
		pad   int
	}
	var members []member
	off, maxAlign := 0, 1
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Tag.Get("encoding") == "ignore" {
			continue
		}
		lay := build(reflect2.Type2(f.Type), bs)
		aligned := memory.Align(off, lay.align)
		members = append(members, member{lay, f.Offset, aligned - off})
		off = aligned + lay.size
		maxAlign = max(maxAlign, lay.align)
	}
	total := memory.Align(off, maxAlign)
	tail := total - off
	each := func(pick func(*layout) handler) handler {
		return func(s Stream, p unsafe.Pointer) error {
			for _, m := range members {
				if m.pad > 0 {
					if err := s.Skip(m.pad); err != nil {
						return err
					}
				}
				if err := pick(m.lay)(s, unsafe.Add(p, m.goOff)); err != nil {
					return err
				}
			}
			if tail > 0 {
				return s.Skip(tail)
			}
			return nil
		}
	}
	return &layout{
		read:  each(func(l *layout) handler { return l.read }),
		write: each(func(l *layout) handler { return l.write }),
		size:  total,
		align: maxAlign,
	}
}
