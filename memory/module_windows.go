package memory

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// ModuleWindow returns a live window over the loaded image of the named
// module in the current process.
func ModuleWindow(arch Arch, name string) (*Window, error) {
	wname, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, errors.Wrapf(err, "module %q", name)
	}
	handle, err := windows.GetModuleHandle(wname)
	if err != nil {
		return nil, errors.Wrapf(ErrModuleNotFound, "%q: %v", name, err)
	}
	var info windows.ModuleInfo
	err = windows.GetModuleInformation(windows.CurrentProcess(), handle, &info, uint32(unsafe.Sizeof(info)))
	if err != nil {
		return nil, errors.Wrapf(err, "module %q information", name)
	}
	return Live(arch, uint64(info.BaseOfDll), int(info.SizeOfImage))
}
