package memory

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ModuleWindow returns a live window over the first executable mapping of
// the named module in the current process, read from /proc/self/maps.
func ModuleWindow(arch Arch, name string) (*Window, error) {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return nil, errors.Wrap(err, "open maps")
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 6 || !matchMapping(fields[5], name) {
			continue
		}
		if !strings.Contains(fields[1], "x") {
			continue
		}
		lo, hi, ok := parseRange(fields[0])
		if !ok {
			continue
		}
		return Live(arch, lo, int(hi-lo))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read maps")
	}
	return nil, errors.Wrapf(ErrModuleNotFound, "%q", name)
}

func matchMapping(path, name string) bool {
	return path == name || strings.HasSuffix(path, "/"+name)
}

func parseRange(s string) (uint64, uint64, bool) {
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, false
	}
	begin, err := strconv.ParseUint(lo, 16, 64)
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.ParseUint(hi, 16, 64)
	if err != nil || end <= begin {
		return 0, 0, false
	}
	return begin, end, true
}
