package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// Client is a managed top-level window from the EWMH client list.
type Client struct {
	Window xproto.Window
	Title  string
	Class  string
}

// GetClients lists normal application windows in _NET_CLIENT_LIST order.
func (c *Connection) GetClients() ([]Client, error) {
	windows, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	clients := make([]Client, 0, len(windows))
	for _, win := range windows {
		if !c.IsNormalWindow(win) {
			continue
		}
		client := Client{Window: win}
		if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil {
			client.Title = name
		}
		if class, err := icccm.WmClassGet(c.XUtil, win); err == nil {
			client.Class = class.Class
		}
		clients = append(clients, client)
	}
	return clients, nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}
	return isNormalWindowType(types)
}

func isNormalWindowType(types []string) bool {
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}
