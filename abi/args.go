package abi

import (
	"github.com/uldane/microhook/encoding"
	"github.com/uldane/microhook/memory"
)

// ExtractArgs overlays a typed view over the call's parameter block.
// out must be a pointer to a struct mirroring the foreign layout; the
// block itself stays owned by the host.
func ExtractArgs(win *memory.Window, call Call, out any) error {
	s, err := BlockStream(win, call.Params)
	if err != nil {
		return err
	}
	return encoding.Decode(s, out)
}

// WriteRet writes a typed value into the call's return slot. val must
// be a pointer to the value in its foreign layout.
func WriteRet(win *memory.Window, call Call, val any) error {
	s, err := BlockStream(win, call.Ret)
	if err != nil {
		return err
	}
	return encoding.Encode(s, val)
}
