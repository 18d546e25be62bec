package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/1broseidon/dragshell/internal/ipc"
	"github.com/1broseidon/dragshell/internal/tui"
)

func printDragUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  dragshell drag begin --kind toplevel|workspace --id ID [--output ID]")
	fmt.Fprintln(w, "  dragshell drag drop --key KEY [--mime TYPE] [--data HEX]")
	fmt.Fprintln(w, "  dragshell drag cancel")
	fmt.Fprintln(w, "  dragshell drag move --toplevel ID --key KEY")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'dragshell drag <command> --help' for command-specific options.")
}

func runDrag(args []string) int {
	if len(args) == 0 {
		printDragUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "begin":
		return runDragBegin(args[1:])
	case "drop":
		return runDragDrop(args[1:])
	case "cancel":
		return runDragCancel(args[1:])
	case "move":
		return runDragMove(args[1:])
	case "help", "-h", "--help":
		printDragUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown drag command: %s\n\n", args[0])
		printDragUsage(os.Stderr)
		return 2
	}
}

func runDragBegin(args []string) int {
	fs := flag.NewFlagSet("begin", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path")
	kind := fs.String("kind", "toplevel", "Drag source kind: toplevel or workspace")
	id := fs.String("id", "", "Protocol id of the dragged object (required)")
	output := fs.String("output", "0", "Output protocol id (0: output under the pointer)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell drag begin --kind toplevel|workspace --id ID [--output ID]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start a drag in the daemon and print the MIME types it offers.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 || *id == "" {
		fs.Usage()
		return 2
	}
	handleID, err := parseID(*id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --id: %v\n", err)
		return 2
	}
	outputID, err := parseID(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --output: %v\n", err)
		return 2
	}

	client, err := newClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	data, err := client.BeginDrag(ipc.BeginDragPayload{Kind: *kind, HandleID: handleID, OutputID: outputID})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("session: %s\n", data.SessionID)
	fmt.Printf("kind:    %s\n", data.Kind)
	fmt.Printf("output:  %d\n", data.OutputID)
	for _, mime := range data.MimeTypes {
		fmt.Printf("offer:   %s\n", mime)
	}
	return 0
}

func runDragDrop(args []string) int {
	fs := flag.NewFlagSet("drop", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path")
	keyArg := fs.String("key", "", "Drop target key (required)")
	mime := fs.String("mime", "", "MIME type of the drop (default: the daemon's offer)")
	dataHex := fs.String("data", "", "Payload bytes as hex")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell drag drop --key KEY [--mime TYPE] [--data HEX]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Drop the active drag on a target. Passing a MIME type other than the")
		fmt.Fprintln(os.Stderr, "daemon's own (for example 'dragshell mime') is rejected.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 || *keyArg == "" {
		fs.Usage()
		return 2
	}
	key, err := strconv.ParseUint(*keyArg, 0, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --key: %v\n", err)
		return 2
	}
	payload, err := hex.DecodeString(*dataHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --data: %v\n", err)
		return 2
	}

	client, err := newClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	mimeType := *mime
	if mimeType == "" {
		status, err := client.GetStatus()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !status.DragActive {
			fmt.Fprintln(os.Stderr, "no active drag")
			return 1
		}
		mimeType = status.ToplevelMime
		if status.DragKind == "workspace" {
			mimeType = status.WorkspaceMime
		}
	}

	data, err := client.Drop(ipc.DropPayload{Key: key, MimeType: mimeType, Data: payload})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printDrop(data)
}

func printDrop(data *ipc.DropData) int {
	fmt.Printf("session: %s\n", data.SessionID)
	fmt.Printf("outcome: %s\n", data.Outcome)
	if data.Reason != "" {
		fmt.Printf("reason:  %s\n", data.Reason)
	}
	if data.Outcome != "moved" {
		return 1
	}
	return 0
}

func runDragCancel(args []string) int {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell drag cancel")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Cancel the daemon's active drag, if any.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "drag cancel takes no arguments")
		fs.Usage()
		return 2
	}

	client, err := newClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cancelled, err := client.CancelDrag()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if cancelled {
		fmt.Println("cancelled")
	} else {
		fmt.Println("no active drag")
	}
	return 0
}

func runDragMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path")
	toplevel := fs.String("toplevel", "", "Window id of the toplevel (required)")
	keyArg := fs.String("key", "", "Drop target key (required)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell drag move --toplevel ID --key KEY")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Begin a toplevel drag and drop it on KEY using the daemon's offer.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 || *toplevel == "" || *keyArg == "" {
		fs.Usage()
		return 2
	}
	toplevelID, err := parseID(*toplevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --toplevel: %v\n", err)
		return 2
	}
	key, err := strconv.ParseUint(*keyArg, 0, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --key: %v\n", err)
		return 2
	}

	client, err := newClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	data, err := ipc.DragToplevel(client, toplevelID, key)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printDrop(data)
}

func runPick(args []string) int {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell pick")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Choose a window and a workspace sidebar entry in the terminal, then drag.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "pick takes no arguments")
		fs.Usage()
		return 2
	}

	client, err := newClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := tui.Run(client); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
