package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/dragshell/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client. socketOverride replaces the default
// socket path when non-empty.
func NewClient(socketOverride string) *Client {
	socketPath, err := runtimepath.SocketPath(socketOverride)
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// call sends command with an optional payload and decodes the response data
// into out when out is non-nil.
func (c *Client) call(command CommandType, payload any, out any) error {
	req := &Request{Command: command}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", command, err)
	}
	return nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListTargets retrieves the daemon's registered drop targets.
func (c *Client) ListTargets() (*TargetsData, error) {
	var targets TargetsData
	if err := c.call(CommandListTargets, nil, &targets); err != nil {
		return nil, err
	}
	return &targets, nil
}

// ListToplevels retrieves the toplevel windows the daemon can drag.
func (c *Client) ListToplevels() (*ToplevelsData, error) {
	var data ToplevelsData
	if err := c.call(CommandListToplevels, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// BeginDrag starts a drag in the daemon.
func (c *Client) BeginDrag(payload BeginDragPayload) (*BeginDragData, error) {
	var data BeginDragData
	if err := c.call(CommandBeginDrag, payload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Drop completes the daemon's active drag.
func (c *Client) Drop(payload DropPayload) (*DropData, error) {
	var data DropData
	if err := c.call(CommandDrop, payload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// CancelDrag cancels the daemon's active drag.
func (c *Client) CancelDrag() (bool, error) {
	var data CancelDragData
	if err := c.call(CommandCancelDrag, nil, &data); err != nil {
		return false, err
	}
	return data.Cancelled, nil
}
