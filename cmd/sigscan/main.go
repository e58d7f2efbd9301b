// sigscan runs a byte signature against the code section of a PE or ELF
// image and prints the matches, optionally resolving a relative call
// displacement inside each match. The image comes from a file path or
// from the on-disk executable of a running process looked up by name.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/uldane/microhook/pattern"
	"github.com/uldane/microhook/scan"
)

var (
	flagFile    = flag.String("file", "", "path to a PE or ELF image")
	flagProc    = flag.String("proc", "", "name of a running process whose executable to scan")
	flagPattern = flag.String("pattern", "", "signature, e.g. \"50 51 52 8B CE E8 ?? ?? ?? ??\"")
	flagAll     = flag.Bool("all", false, "print every match instead of requiring a unique one")
	flagSite    = flag.Int("site", -1, "offset of a displacement field inside the match to resolve")
	flagWidth   = flag.Int("width", 4, "displacement field width in bytes")
	flagVerbose = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()
	log.SetHandler(cli.New(os.Stderr))
	if *flagVerbose {
		log.SetLevel(log.DebugLevel)
	}
	if err := run(); err != nil {
		log.WithError(err).Fatal("sigscan")
	}
}

func run() error {
	pat, err := pattern.Parse(*flagPattern)
	if err != nil {
		return fmt.Errorf("parse pattern: %w", err)
	}
	path := *flagFile
	if *flagProc != "" {
		path, err = exeOfProcess(*flagProc)
		if err != nil {
			return err
		}
		log.WithField("exe", path).Debug("resolved process executable")
	}
	if path == "" {
		return fmt.Errorf("one of -file or -proc is required")
	}
	win, err := codeWindow(path)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"image":   path,
		"arch":    win.Arch().String(),
		"base":    fmt.Sprintf("%#x", win.Base()),
		"size":    win.Size(),
		"pattern": pat.String(),
	}).Info("scanning code section")

	s := scan.New(win, pat)
	var matches []scan.Match
	if *flagAll {
		for m := range s.All() {
			matches = append(matches, m)
		}
		if len(matches) == 0 {
			return scan.ErrNotFound
		}
	} else {
		m, err := s.Unique()
		if err != nil {
			return err
		}
		matches = append(matches, m)
	}

	green := color.New(color.FgGreen).SprintFunc()
	addrs := lo.Map(matches, func(m scan.Match, _ int) string {
		return fmt.Sprintf("%#x", m.Addr())
	})
	fmt.Printf("%s %s\n", green(fmt.Sprintf("%d match(es):", len(matches))), strings.Join(addrs, " "))

	if *flagSite < 0 {
		return nil
	}
	for _, m := range matches {
		site, err := scan.Site(m, *flagSite, *flagWidth)
		if err != nil {
			return err
		}
		target, err := scan.Resolve(site)
		if err != nil {
			return err
		}
		fmt.Printf("  %#x -> %s\n", m.Addr(), green(fmt.Sprintf("%#x", target)))
	}
	return nil
}

func exeOfProcess(name string) (string, error) {
	procs, err := process.Processes()
	if err != nil {
		return "", fmt.Errorf("list processes: %w", err)
	}
	found := lo.Filter(procs, func(p *process.Process, _ int) bool {
		n, err := p.Name()
		return err == nil && strings.EqualFold(n, name)
	})
	if len(found) == 0 {
		return "", fmt.Errorf("no running process named %q", name)
	}
	if len(found) > 1 {
		log.WithField("count", len(found)).Warn("multiple processes match, using the first")
	}
	return found[0].Exe()
}
