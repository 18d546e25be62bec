package mcp

import (
	"context"
	"fmt"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dragshell/internal/dnd"
	"github.com/1broseidon/dragshell/internal/ipc"
	"github.com/1broseidon/dragshell/internal/platform"
)

func (s *Server) handleMimeTypes(_ context.Context, _ *mcpsdk.CallToolRequest, _ MimeTypesInput) (*mcpsdk.CallToolResult, MimeTypesOutput, error) {
	out := MimeTypesOutput{
		LocalPID:           os.Getpid(),
		LocalWorkspaceMime: dnd.WorkspaceMime(),
		LocalToplevelMime:  dnd.ToplevelMime(),
	}

	status, err := s.daemon.GetStatus()
	if err != nil {
		out.DaemonError = err.Error()
		return nil, out, nil
	}
	out.DaemonPID = status.PID
	out.DaemonWorkspaceMime = status.WorkspaceMime
	out.DaemonToplevelMime = status.ToplevelMime
	return nil, out, nil
}

func (s *Server) handleDropTargetKey(_ context.Context, _ *mcpsdk.CallToolRequest, args DropTargetKeyInput) (*mcpsdk.CallToolResult, DropTargetKeyOutput, error) {
	key := dnd.KeyOf(dnd.WorkspaceSidebarEntry{
		Workspace: platform.WorkspaceHandle{ID: args.WorkspaceID},
		Output:    platform.Output{ID: args.OutputID},
	})
	return nil, DropTargetKeyOutput{
		Key:          uint64(key),
		Discriminant: uint8(key.Discriminant()),
		ObjectID:     key.ObjectID(),
	}, nil
}

func (s *Server) handleListDropTargets(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDropTargetsInput) (*mcpsdk.CallToolResult, ListDropTargetsOutput, error) {
	data, err := s.daemon.ListTargets()
	if err != nil {
		return nil, ListDropTargetsOutput{}, err
	}

	out := ListDropTargetsOutput{Targets: make([]DropTargetInfo, 0, len(data.Targets))}
	for _, t := range data.Targets {
		out.Targets = append(out.Targets, DropTargetInfo{
			Key:       t.Key,
			Kind:      t.Kind,
			Workspace: platform.WorkspaceHandle{ID: t.WorkspaceID, Name: t.WorkspaceName}.String(),
			Output:    platform.Output{ID: t.OutputID, Name: t.OutputName}.String(),
		})
	}
	return nil, out, nil
}

func (s *Server) handleListToplevels(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListToplevelsInput) (*mcpsdk.CallToolResult, ListToplevelsOutput, error) {
	data, err := s.daemon.ListToplevels()
	if err != nil {
		return nil, ListToplevelsOutput{}, err
	}

	out := ListToplevelsOutput{Toplevels: make([]ToplevelInfo, 0, len(data.Toplevels))}
	for _, t := range data.Toplevels {
		out.Toplevels = append(out.Toplevels, ToplevelInfo{ID: t.ID, Title: t.Title, AppID: t.AppID})
	}
	return nil, out, nil
}

func (s *Server) handleMoveToplevel(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveToplevelInput) (*mcpsdk.CallToolResult, MoveToplevelOutput, error) {
	drop, err := ipc.DragToplevel(s.daemon, args.ToplevelID, args.Key)
	if err != nil {
		return nil, MoveToplevelOutput{}, err
	}

	s.logger.Info("move_toplevel",
		"toplevel", fmt.Sprintf("%#x", args.ToplevelID),
		"key", dnd.DragKey(args.Key),
		"outcome", drop.Outcome)
	return nil, MoveToplevelOutput{
		SessionID: drop.SessionID,
		Outcome:   drop.Outcome,
		Reason:    drop.Reason,
	}, nil
}
