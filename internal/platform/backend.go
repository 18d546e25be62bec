package platform

import "fmt"

// Output is a non-owning reference to a compositor output (monitor).
type Output struct {
	ID   uint32
	Name string
}

// ProtocolID returns the numeric protocol object id of the output.
func (o Output) ProtocolID() uint32 { return o.ID }

func (o Output) String() string {
	if o.Name == "" {
		return fmt.Sprintf("output#%d", o.ID)
	}
	return o.Name
}

// WorkspaceHandle is a non-owning reference to a live workspace object.
type WorkspaceHandle struct {
	ID   uint32
	Name string
}

// ProtocolID returns the numeric protocol object id of the workspace.
func (w WorkspaceHandle) ProtocolID() uint32 { return w.ID }

func (w WorkspaceHandle) String() string {
	if w.Name == "" {
		return fmt.Sprintf("workspace#%d", w.ID)
	}
	return w.Name
}

// ToplevelHandle is a non-owning reference to a live application window.
type ToplevelHandle struct {
	ID    uint32
	Title string
	AppID string
}

// ProtocolID returns the numeric protocol object id of the toplevel.
func (t ToplevelHandle) ProtocolID() uint32 { return t.ID }

func (t ToplevelHandle) String() string {
	return fmt.Sprintf("toplevel#%#x", t.ID)
}

// Backend abstracts the compositor protocol binding.
//
// Protocol ids are scoped to the backend's connection and are only unique
// among currently live objects of the same type.
type Backend interface {
	Outputs() ([]Output, error)
	Workspaces() ([]WorkspaceHandle, error)
	Toplevels() ([]ToplevelHandle, error)
	MoveToplevel(toplevel ToplevelHandle, workspace WorkspaceHandle) error
}

// FindOutput returns the output with the given protocol id.
func FindOutput(b Backend, id uint32) (Output, error) {
	outputs, err := b.Outputs()
	if err != nil {
		return Output{}, err
	}
	for _, o := range outputs {
		if o.ID == id {
			return o, nil
		}
	}
	return Output{}, fmt.Errorf("output %d not found", id)
}

// FindWorkspace returns the workspace with the given protocol id.
func FindWorkspace(b Backend, id uint32) (WorkspaceHandle, error) {
	workspaces, err := b.Workspaces()
	if err != nil {
		return WorkspaceHandle{}, err
	}
	for _, w := range workspaces {
		if w.ID == id {
			return w, nil
		}
	}
	return WorkspaceHandle{}, fmt.Errorf("workspace %d not found", id)
}

// FindToplevel returns the toplevel with the given protocol id.
func FindToplevel(b Backend, id uint32) (ToplevelHandle, error) {
	toplevels, err := b.Toplevels()
	if err != nil {
		return ToplevelHandle{}, err
	}
	for _, t := range toplevels {
		if t.ID == id {
			return t, nil
		}
	}
	return ToplevelHandle{}, fmt.Errorf("toplevel %#x not found", id)
}
