package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/1broseidon/dragshell/internal/ipc"
	"github.com/1broseidon/dragshell/internal/platform"
)

// wantJSON reports whether list output should be JSON: when asked for, or
// when stdout is not a terminal.
func wantJSON(flagSet bool) bool {
	return flagSet || !term.IsTerminal(int(os.Stdout.Fd()))
}

// writeTable writes rows in columns padded to display width, so names with
// wide characters still line up.
func writeTable(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				parts[i] = cell
				continue
			}
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
	line(header)
	for _, row := range rows {
		line(row)
	}
}

func targetRows(targets []ipc.TargetInfo) [][]string {
	rows := make([][]string, 0, len(targets))
	for _, t := range targets {
		rows = append(rows, []string{
			strconv.FormatUint(t.Key, 10),
			t.Kind,
			platform.WorkspaceHandle{ID: t.WorkspaceID, Name: t.WorkspaceName}.String(),
			platform.Output{ID: t.OutputID, Name: t.OutputName}.String(),
		})
	}
	return rows
}

func toplevelRows(toplevels []ipc.ToplevelInfo) [][]string {
	rows := make([][]string, 0, len(toplevels))
	for _, t := range toplevels {
		rows = append(rows, []string{
			fmt.Sprintf("%#x", t.ID),
			t.AppID,
			t.Title,
		})
	}
	return rows
}

func runTargets(args []string) int {
	fs := flag.NewFlagSet("targets", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path")
	jsonOut := fs.Bool("json", false, "Output as JSON (default when stdout is not a terminal)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell targets [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the drop targets registered in the daemon. Entries for the same")
		fmt.Fprintln(os.Stderr, "workspace on different outputs share one key; only the first is listed.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "targets takes no arguments")
		fs.Usage()
		return 2
	}

	client, err := newClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	data, err := client.ListTargets()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if wantJSON(*jsonOut) {
		if err := writeJSON(os.Stdout, data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	writeTable(os.Stdout, []string{"KEY", "KIND", "WORKSPACE", "OUTPUT"}, targetRows(data.Targets))
	return 0
}

func runToplevels(args []string) int {
	fs := flag.NewFlagSet("toplevels", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path")
	jsonOut := fs.Bool("json", false, "Output as JSON (default when stdout is not a terminal)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell toplevels [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the windows the daemon can drag.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "toplevels takes no arguments")
		fs.Usage()
		return 2
	}

	client, err := newClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	data, err := client.ListToplevels()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if wantJSON(*jsonOut) {
		if err := writeJSON(os.Stdout, data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	writeTable(os.Stdout, []string{"ID", "APP", "TITLE"}, toplevelRows(data.Toplevels))
	return 0
}
