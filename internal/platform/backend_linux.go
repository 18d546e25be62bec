//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/1broseidon/dragshell/internal/x11"
)

// LinuxBackend binds the compositor handles to X11: outputs are RandR
// outputs, workspaces are EWMH desktops and toplevels are managed client
// windows. Protocol ids are XIDs and desktop indices, all 32-bit.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// StopEventLoop makes a running EventLoop return.
func (b *LinuxBackend) StopEventLoop() error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Quit()
}

// XUtil exposes the X connection for key grabs.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the root window of the default screen.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Outputs returns all active outputs.
func (b *LinuxBackend) Outputs() ([]Output, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	outputs := make([]Output, 0, len(monitors))
	for _, m := range monitors {
		outputs = append(outputs, Output{ID: m.OutputID, Name: m.Name})
	}
	return outputs, nil
}

// PointerOutput returns the output under the pointer.
func (b *LinuxBackend) PointerOutput() (Output, error) {
	conn, err := b.connection()
	if err != nil {
		return Output{}, err
	}

	m, err := conn.GetPointerMonitor()
	if err != nil {
		return Output{}, err
	}
	return Output{ID: m.OutputID, Name: m.Name}, nil
}

// Workspaces returns the virtual desktops.
func (b *LinuxBackend) Workspaces() ([]WorkspaceHandle, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	desktops, err := conn.GetDesktops()
	if err != nil {
		return nil, err
	}

	workspaces := make([]WorkspaceHandle, 0, len(desktops))
	for _, d := range desktops {
		workspaces = append(workspaces, WorkspaceHandle{ID: d.Index, Name: d.Name})
	}
	return workspaces, nil
}

// Toplevels returns normal application windows.
func (b *LinuxBackend) Toplevels() ([]ToplevelHandle, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := conn.GetClients()
	if err != nil {
		return nil, err
	}

	toplevels := make([]ToplevelHandle, 0, len(clients))
	for _, c := range clients {
		toplevels = append(toplevels, ToplevelHandle{
			ID:    uint32(c.Window),
			Title: c.Title,
			AppID: c.Class,
		})
	}
	return toplevels, nil
}

// MoveToplevel sends the window to the desktop.
func (b *LinuxBackend) MoveToplevel(toplevel ToplevelHandle, workspace WorkspaceHandle) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if err := conn.SetWindowDesktop(toplevel.ID, workspace.ID); err != nil {
		return fmt.Errorf("failed to move window %#x to desktop %d: %w", toplevel.ID, workspace.ID, err)
	}
	return nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("linux backend is not connected")
	}
	return b.conn, nil
}
