package yabai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/gridcycle/internal/logging"
	"github.com/yourusername/gridcycle/internal/types"
)

const (
	DefaultBinary = "yabai"
	// DefaultTimeout of zero means calls may block as long as yabai does
	DefaultTimeout = time.Duration(0)
)

// Client drives yabai through its command line
type Client struct {
	binary  string
	timeout time.Duration
	runner  Runner
}

// NewClient creates a client running the given yabai binary
func NewClient(binary string, timeout time.Duration) *Client {
	return NewClientWithRunner(binary, timeout, ExecRunner{})
}

// NewClientWithRunner creates a client using r to start processes
func NewClientWithRunner(binary string, timeout time.Duration, r Runner) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout < 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		binary:  binary,
		timeout: timeout,
		runner:  r,
	}
}

// message is a helper to run one `yabai -m ...` command
func (c *Client) message(ctx context.Context, args ...string) (Result, error) {
	// Apply timeout if not already set
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	full := append([]string{"-m"}, args...)
	start := time.Now()
	res, err := c.runner.Run(ctx, c.binary, full...)

	logging.Debug().
		Str("cmd", c.binary+" "+strings.Join(full, " ")).
		Int("exit", res.ExitCode).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("yabai call")

	return res, err
}

// QueryWindows lists all windows known to yabai
func (c *Client) QueryWindows(ctx context.Context) ([]Window, error) {
	res, err := c.message(ctx, "query", "--windows")
	if err != nil {
		return nil, err
	}

	if res.ExitCode != 0 {
		return nil, fmt.Errorf("yabai query exited with status %d: %s",
			res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}

	return ParseWindows(res.Stdout)
}

// FocusedWindow returns the window that currently has focus
func (c *Client) FocusedWindow(ctx context.Context) (Window, error) {
	windows, err := c.QueryWindows(ctx)
	if err != nil {
		return Window{}, err
	}
	return FindFocused(windows)
}

// MoveToGrid places the focused window into cell of grid.
// yabai refusing the move (non-zero exit) is logged, not returned: the
// caller re-reads the geometry afterwards and records whatever happened.
func (c *Client) MoveToGrid(ctx context.Context, grid types.GridConfig, cell types.Cell) error {
	res, err := c.message(ctx, "window", "--grid", GridArg(grid, cell))
	if err != nil {
		return err
	}

	if res.ExitCode != 0 {
		logging.Warn().
			Int("exit", res.ExitCode).
			Str("stderr", strings.TrimSpace(string(res.Stderr))).
			Str("grid", GridArg(grid, cell)).
			Msg("yabai rejected grid move")
	}
	return nil
}
