package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Run opens the interactive drag picker.
func Run(d Daemon) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("pick requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	final, err := tea.NewProgram(newModel(d), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	m, ok := final.(model)
	if !ok {
		return nil
	}
	if m.err != nil {
		return m.err
	}
	if m.drop != nil {
		fmt.Println(m.resultView())
	}
	return nil
}
