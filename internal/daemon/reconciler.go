package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/dragshell/internal/dnd"
	"github.com/1broseidon/dragshell/internal/platform"
	"github.com/1broseidon/dragshell/internal/session"
)

// Inventory lists the objects sidebar targets are built from.
type Inventory interface {
	Outputs() ([]platform.Output, error)
	Workspaces() ([]platform.WorkspaceHandle, error)
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	// Outputs restricts sidebar entries to the named outputs. Empty means all.
	Outputs []string
	Logger  *slog.Logger
}

// Reconciler periodically rebuilds the drop target registry from the
// backend so that keys track live workspaces.
type Reconciler struct {
	mu       sync.Mutex
	interval time.Duration
	outputs  map[string]bool
	changed  chan struct{}

	inventory Inventory
	targets   *session.Targets
	logger    *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, inventory Inventory, targets *session.Targets) *Reconciler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval:  intervalOrDefault(cfg.Interval),
		outputs:   outputSet(cfg.Outputs),
		changed:   make(chan struct{}, 1),
		inventory: inventory,
		targets:   targets,
		logger:    logger,
	}
}

func intervalOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 5 * time.Second
	}
	return d
}

func outputSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Update replaces the interval and output filter. A running Run resets its
// ticker and rebuilds the targets right away. The logger is not changed.
func (r *Reconciler) Update(cfg ReconcilerConfig) {
	r.mu.Lock()
	r.interval = intervalOrDefault(cfg.Interval)
	r.outputs = outputSet(cfg.Outputs)
	r.mu.Unlock()

	select {
	case r.changed <- struct{}{}:
	default:
	}
}

func (r *Reconciler) settings() (time.Duration, map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval, r.outputs
}

// Run reconciles once, then on every tick until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) error {
	interval, _ := r.settings()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", interval)
	r.reconcile()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return nil
		case <-ticker.C:
			r.reconcile()
		case <-r.changed:
			interval, _ := r.settings()
			ticker.Reset(interval)
			r.logger.Info("reconciler settings updated", "interval", interval)
			r.reconcile()
		}
	}
}

// ReconcileNow performs a single pass and returns its error.
func (r *Reconciler) ReconcileNow() error {
	outputs, err := r.inventory.Outputs()
	if err != nil {
		return fmt.Errorf("list outputs: %w", err)
	}
	workspaces, err := r.inventory.Workspaces()
	if err != nil {
		return fmt.Errorf("list workspaces: %w", err)
	}

	_, allow := r.settings()
	targets := SidebarTargets(outputs, workspaces, allow)
	keys := r.targets.Replace(targets)
	r.logger.Debug("drop targets rebuilt", "entries", len(targets), "keys", keys)
	return nil
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	if err := r.ReconcileNow(); err != nil {
		r.logger.Error("reconciler: failed to rebuild targets", "error", err)
	}
}

// SidebarTargets builds one WorkspaceSidebarEntry per (output, workspace),
// outputs first. A nil allow set admits every output.
func SidebarTargets(outputs []platform.Output, workspaces []platform.WorkspaceHandle, allow map[string]bool) []dnd.DropTarget {
	var targets []dnd.DropTarget
	for _, out := range outputs {
		if allow != nil && !allow[out.Name] {
			continue
		}
		for _, ws := range workspaces {
			targets = append(targets, dnd.WorkspaceSidebarEntry{Workspace: ws, Output: out})
		}
	}
	return targets
}
