package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Desktop is an EWMH virtual desktop. EWMH desktops span every monitor.
type Desktop struct {
	Index uint32
	Name  string
}

// GetDesktops lists virtual desktops with their _NET_DESKTOP_NAMES.
func (c *Connection) GetDesktops() ([]Desktop, error) {
	count, err := ewmh.NumberOfDesktopsGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get desktop count: %w", err)
	}
	names, err := ewmh.DesktopNamesGet(c.XUtil)
	if err != nil {
		names = nil
	}
	return desktopsFromNames(count, names), nil
}

func desktopsFromNames(count uint, names []string) []Desktop {
	desktops := make([]Desktop, 0, count)
	for i := uint(0); i < count; i++ {
		d := Desktop{Index: uint32(i)}
		if int(i) < len(names) {
			d.Name = names[i]
		}
		desktops = append(desktops, d)
	}
	return desktops
}

// SetWindowDesktop moves a window to the specified virtual desktop.
// It sends a _NET_WM_DESKTOP client message to the root window.
// We build the message manually because the xgbutil ewmh.WmDesktopReq
// helper panics on this library version (uint vs int type assertion).
func (c *Connection) SetWindowDesktop(windowID uint32, desktop uint32) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_WM_DESKTOP")), "_NET_WM_DESKTOP").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_WM_DESKTOP: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(windowID),
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{desktop, sourceIndication, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
