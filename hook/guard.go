package hook

import (
	"bytes"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/uldane/microhook/memory"
)

// State of a guard's descriptor.
type State int32

const (
	State_Uninstalled State = iota
	State_Installing
	State_Installed
	State_Uninstalling
)

// Guard owns one detour installation at a resolved target. Install
// patches the entry transactionally; Uninstall writes the snapshot back
// and is idempotent. Close equals Uninstall, so the guard's scope bounds
// the hook's lifetime:
//
//	g, err := hook.New(win, off, entry)
//	if err != nil { ... }
//	if err := g.Install(); err != nil { ... }
//	defer g.Close()
//
// No descriptor stays installed past its guard.
type Guard struct {
	win   *memory.Window
	off   int
	entry uint64
	prot  memory.Protector
	check bool
	state atomic.Int32
	patch []byte
	saved []byte
}

var _ io.Closer = (*Guard)(nil)

type Option func(*Guard)

// WithProtector overrides the page protector used around patch writes.
// The default flips page protection through the operating system.
func WithProtector(p memory.Protector) Option {
	return func(g *Guard) { g.prot = p }
}

// WithoutBoundaryCheck skips the instruction-boundary walk before the
// patch write, for windows whose bytes are not decodable code.
func WithoutBoundaryCheck() Option {
	return func(g *Guard) { g.check = false }
}

// New prepares a guard that will redirect the code at win+targetOff to
// the detour entry. Nothing is written until Install.
func New(win *memory.Window, targetOff int, entry uint64, opts ...Option) (*Guard, error) {
	if win == nil {
		return nil, memory.ErrEmptyWindow
	}
	patch, err := JumpPatch(win.Arch(), win.Addr(targetOff), entry)
	if err != nil {
		return nil, err
	}
	if targetOff < 0 || targetOff > win.Size()-len(patch) {
		return nil, ErrPatchBounds
	}
	g := &Guard{
		win:   win,
		off:   targetOff,
		entry: entry,
		prot:  memory.PageProtector(),
		check: true,
		patch: patch,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Install snapshots the target bytes and writes the control transfer.
// On any failure the target is left exactly as found. A second Install
// while installed fails with ErrAlreadyInstalled.
func (g *Guard) Install() error {
	if !g.state.CompareAndSwap(int32(State_Uninstalled), int32(State_Installing)) {
		return ErrAlreadyInstalled
	}
	installed := false
	defer func() {
		if installed {
			g.state.Store(int32(State_Installed))
		} else {
			g.state.Store(int32(State_Uninstalled))
		}
	}()
	if g.check {
		if err := g.checkBoundary(); err != nil {
			return fmt.Errorf("%w: %v", ErrInstallFailed, err)
		}
	}
	addr := g.win.Addr(g.off)
	restore, err := g.prot.Writable(addr, len(g.patch))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMemoryProtection, err)
	}
	target, err := g.win.Bytes(g.off, len(g.patch))
	if err != nil {
		restore()
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}
	// exact snapshot before any write; uninstall restores these bytes
	g.saved = bytes.Clone(target)
	// operand bytes first, opcode byte last: until the opcode lands, a
	// concurrent caller still executes the original first instruction.
	copy(target[1:], g.patch[1:])
	target[0] = g.patch[0]
	if !bytes.Equal(target, g.patch) {
		copy(target, g.saved)
		restore()
		return fmt.Errorf("%w: write-back verification", ErrInstallFailed)
	}
	if err := restore(); err != nil {
		copy(target, g.saved)
		return fmt.Errorf("%w: %v", ErrMemoryProtection, err)
	}
	installed = true
	return nil
}

// Uninstall writes the snapshot back and releases the descriptor. It is
// idempotent: releasing an uninstalled guard is a no-op. A verification
// failure after the write-back is RestoreError, fatal but reported.
func (g *Guard) Uninstall() error {
	if !g.state.CompareAndSwap(int32(State_Installed), int32(State_Uninstalling)) {
		if g.State() == State_Uninstalled {
			return nil
		}
		return ErrGuardBusy
	}
	addr := g.win.Addr(g.off)
	restore, err := g.prot.Writable(addr, len(g.saved))
	if err != nil {
		g.state.Store(int32(State_Installed))
		return fmt.Errorf("%w: %v", ErrMemoryProtection, err)
	}
	target, err := g.win.Bytes(g.off, len(g.saved))
	if err == nil {
		copy(target, g.saved)
		if !bytes.Equal(target, g.saved) {
			err = &RestoreError{Target: addr, Saved: bytes.Clone(g.saved)}
		}
	}
	if err != nil {
		restore()
		g.state.Store(int32(State_Installed))
		return err
	}
	if err := restore(); err != nil {
		// the original bytes are back; only the protection is off
		g.state.Store(int32(State_Uninstalled))
		return fmt.Errorf("%w: %v", ErrMemoryProtection, err)
	}
	g.state.Store(int32(State_Uninstalled))
	return nil
}

// Close releases the guard, restoring the original bytes if installed.
func (g *Guard) Close() error {
	return g.Uninstall()
}

func (g *Guard) State() State {
	return State(g.state.Load())
}

func (g *Guard) Installed() bool {
	return g.State() == State_Installed
}

// Target is the absolute address the guard patches.
func (g *Guard) Target() uint64 {
	return g.win.Addr(g.off)
}

// Entry is the detour address the patch transfers to.
func (g *Guard) Entry() uint64 {
	return g.entry
}

// Saved returns a copy of the snapshot taken at install time, or nil
// before the first install.
func (g *Guard) Saved() []byte {
	return bytes.Clone(g.saved)
}

func (g *Guard) checkBoundary() error {
	n := min(g.win.Size()-g.off, len(g.patch)+15)
	code, err := g.win.Bytes(g.off, n)
	if err != nil {
		return err
	}
	mode := 32
	if g.win.Arch() == memory.ARCH_X86_64 {
		mode = 64
	}
	_, err = coverLength(code, mode, len(g.patch))
	return err
}
