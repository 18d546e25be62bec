package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const wakeAtomName = "_DRAGSHELL_WAKE"

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// wake is an unmapped window owned by this client. A client message sent
	// to it unblocks EventLoop so a pending Quit is noticed.
	wake     xproto.Window
	wakeAtom xproto.Atom
}

// NewConnection establishes a connection to the X11 server
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}
	if err := c.setupWake(); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	return c, nil
}

func (c *Connection) setupWake() error {
	win, err := xwindow.Create(c.XUtil, c.Root)
	if err != nil {
		return fmt.Errorf("failed to create wake window: %w", err)
	}
	atom, err := xprop.Atm(c.XUtil, wakeAtomName)
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", wakeAtomName, err)
	}
	c.wake = win.Id
	c.wakeAtom = atom

	// The quit flag is only written from the event loop goroutine.
	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if ev.Type == c.wakeAtom {
			xevent.Quit(xu)
		}
	}).Connect(c.XUtil, c.wake)
	return nil
}

// EventLoop runs the X11 event loop until Quit is called.
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit makes a running EventLoop return. It is safe to call from any
// goroutine.
func (c *Connection) Quit() error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.wake,
		Type:   c.wakeAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	// An empty event mask delivers the event to the window's creator.
	if err := xproto.SendEventChecked(c.XUtil.Conn(), false, c.wake, 0, string(ev.Bytes())).Check(); err != nil {
		return fmt.Errorf("failed to wake event loop: %w", err)
	}
	return nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
