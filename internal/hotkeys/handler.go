package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Canceller aborts the active drag session.
type Canceller interface {
	Cancel() bool
}

// X11Accessor is implemented by backends that expose X11 internals.
type X11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var initOnce sync.Once

// NewHandler creates a hotkey handler on the backend's X connection.
func NewHandler(backend X11Accessor, logger *slog.Logger) (*Handler, error) {
	xu := backend.XUtil()
	if xu == nil {
		return nil, fmt.Errorf("backend has no X connection")
	}
	if logger == nil {
		logger = slog.Default()
	}

	initOnce.Do(func() {
		keybind.Initialize(xu)
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:     xu,
		root:   backend.RootWindow(),
		logger: logger,
	}, nil
}

// RegisterCancel binds keySequence to cancelling the active drag.
func (h *Handler) RegisterCancel(keySequence string, c Canceller) error {
	return h.RegisterFunc(keySequence, func() {
		if c.Cancel() {
			h.logger.Info("drag cancelled by hotkey", "key", keySequence)
		} else {
			h.logger.Debug("cancel hotkey pressed with no active drag", "key", keySequence)
		}
	})
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
	if err != nil {
		return fmt.Errorf("failed to bind %q: %w", keySequence, err)
	}
	return nil
}

// configureIgnoreMods makes bindings fire regardless of lock modifiers.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	base := []uint16{uint16(xproto.ModMaskLock)}
	for _, keysym := range []string{"Num_Lock", "Scroll_Lock"} {
		if mask := modMaskForKeysym(xu, keysym); mask != 0 {
			base = append(base, mask)
		}
	}
	xevent.IgnoreMods = ignoreMasks(base)
}

// ignoreMasks returns every OR-combination of the distinct masks in base,
// including zero.
func ignoreMasks(base []uint16) []uint16 {
	var distinct []uint16
	seen := make(map[uint16]bool)
	for _, m := range base {
		if m != 0 && !seen[m] {
			seen[m] = true
			distinct = append(distinct, m)
		}
	}

	out := make([]uint16, 0, 1<<len(distinct))
	for subset := 0; subset < (1 << len(distinct)); subset++ {
		var mask uint16
		for bit := range distinct {
			if subset&(1<<bit) != 0 {
				mask |= distinct[bit]
			}
		}
		out = append(out, mask)
	}
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
