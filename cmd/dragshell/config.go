package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  dragshell config validate [--path FILE]")
	fmt.Fprintln(w, "  dragshell config print [--path FILE]")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stdout)
		return 0
	}

	sub := args[0]
	if sub != "validate" && sub != "print" {
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", sub)
		printConfigUsage(os.Stderr)
		return 2
	}

	fs := flag.NewFlagSet(sub, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/dragshell/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dragshell config %s [--path FILE]\n", sub)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args[1:]); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if sub == "validate" {
		fmt.Println("OK")
		return 0
	}

	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	os.Stdout.Write(data)
	return 0
}
