package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/1broseidon/dragshell/internal/config"
	"github.com/1broseidon/dragshell/internal/dnd"
	"github.com/1broseidon/dragshell/internal/ipc"
	"github.com/1broseidon/dragshell/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "mime":
		os.Exit(runMime(os.Args[2:]))
	case "key":
		os.Exit(runKey(os.Args[2:]))
	case "targets":
		os.Exit(runTargets(os.Args[2:]))
	case "toplevels":
		os.Exit(runToplevels(os.Args[2:]))
	case "drag":
		os.Exit(runDrag(os.Args[2:]))
	case "pick":
		os.Exit(runPick(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dragshell <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the dragshell daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  mime                Show this process's drag MIME types")
	fmt.Fprintln(w, "  key                 Compute a drop target key")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  targets             List registered drop targets")
	fmt.Fprintln(w, "  toplevels           List draggable windows")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  drag begin          Start a drag in the daemon")
	fmt.Fprintln(w, "  drag drop           Drop the active drag on a key")
	fmt.Fprintln(w, "  drag cancel         Cancel the active drag")
	fmt.Fprintln(w, "  drag move           Drag a window onto a key in one step")
	fmt.Fprintln(w, "  pick                Pick a window and a workspace interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'dragshell <command> --help' for command-specific options.")
}

// parseFlags parses args and maps the result to an exit code. ok is false
// when the caller should return code immediately.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

// newClient builds an IPC client for the socket named in the config file.
func newClient(configPath string) (*ipc.Client, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return ipc.NewClient(cfg.IPC.Socket), nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/dragshell/config.yaml)")
	jsonOut := fs.Bool("json", false, "Output status as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client, err := newClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		if err := writeJSON(os.Stdout, status); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("pid:            %d\n", status.PID)
	fmt.Printf("workspace_mime: %s\n", status.WorkspaceMime)
	fmt.Printf("toplevel_mime:  %s\n", status.ToplevelMime)
	fmt.Printf("target_count:   %d\n", status.TargetCount)
	if status.DragActive {
		fmt.Printf("drag:           %s (%s)\n", status.DragSession, status.DragKind)
	} else {
		fmt.Printf("drag:           none\n")
	}
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runMime(args []string) int {
	fs := flag.NewFlagSet("mime", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell mime")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the drag MIME types of this process. They embed the process id,")
		fmt.Fprintln(os.Stderr, "so they never match the daemon's (see 'dragshell status').")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "mime takes no arguments")
		fs.Usage()
		return 2
	}

	fmt.Printf("pid:            %d\n", os.Getpid())
	fmt.Printf("workspace_mime: %s\n", dnd.WorkspaceMime())
	fmt.Printf("toplevel_mime:  %s\n", dnd.ToplevelMime())
	return 0
}

func runKey(args []string) int {
	fs := flag.NewFlagSet("key", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	workspace := fs.String("workspace", "", "Workspace protocol id (required)")
	output := fs.String("output", "0", "Output protocol id (does not change the key)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell key --workspace ID [--output ID]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the drop target key of a workspace sidebar entry.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 || *workspace == "" {
		fs.Usage()
		return 2
	}
	id, err := parseID(*workspace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --workspace: %v\n", err)
		return 2
	}
	outputID, err := parseID(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --output: %v\n", err)
		return 2
	}

	key := dnd.KeyOf(dnd.WorkspaceSidebarEntry{
		Workspace: platform.WorkspaceHandle{ID: id},
		Output:    platform.Output{ID: outputID},
	})
	fmt.Printf("%d\t%s\n", uint64(key), key)
	return 0
}

// parseID parses a 32-bit protocol id in decimal or 0x hex.
func parseID(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
