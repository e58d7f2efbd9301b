package hook

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyInstalled = errors.New("hook already installed")
	ErrGuardBusy        = errors.New("guard state change in progress")
	ErrMemoryProtection = errors.New("memory protection change failed")
	ErrInstallFailed    = errors.New("hook install failed")
	ErrRestoreFailed    = errors.New("original bytes restore failed")
	ErrPatchBounds      = errors.New("patch exceeds window")
)

// RestoreError reports a failed uninstall: the target is left in a
// patched state the guard can no longer account for. The caller decides
// whether continuing against the host is acceptable.
type RestoreError struct {
	Target uint64
	Saved  []byte
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore of %d bytes at %#x failed", len(e.Saved), e.Target)
}

func (e *RestoreError) Unwrap() error {
	return ErrRestoreFailed
}
