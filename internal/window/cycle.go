package window

import (
	"context"
	"fmt"

	"github.com/yourusername/gridcycle/internal/cycle"
	"github.com/yourusername/gridcycle/internal/logging"
	"github.com/yourusername/gridcycle/internal/state"
	"github.com/yourusername/gridcycle/internal/types"
	"github.com/yourusername/gridcycle/internal/yabai"
)

// Manager is the part of the window manager a cycle needs
type Manager interface {
	FocusedWindow(ctx context.Context) (yabai.Window, error)
	MoveToGrid(ctx context.Context, grid types.GridConfig, cell types.Cell) error
}

// CycleOpts configures one cycle invocation
type CycleOpts struct {
	Grid      types.GridConfig // Requested grid shape
	StatePath string           // State file to read and write
	DryRun    bool             // Decide only: no move, no state write
}

// CycleResult contains the outcome of a cycle
type CycleResult struct {
	WindowID uint32          `json:"windowId"`
	Grid     string          `json:"grid"`
	Cell     types.Cell      `json:"cell"`
	Reason   cycle.Reason    `json:"reason"`
	Before   types.Geometry  `json:"before"`
	After    *types.Geometry `json:"after,omitempty"` // nil on dry run
	Prior    *state.Record   `json:"prior,omitempty"`
	DryRun   bool            `json:"dryRun"`
}

// CycleWindow moves the focused window to its next grid cell and records
// where it ended up.
//
// The state file is read first; a missing or broken file just means every
// window starts at (0, 0). Any window manager failure aborts before the
// state file is written.
func CycleWindow(ctx context.Context, wm Manager, opts CycleOpts) (*CycleResult, error) {
	store := state.LoadFrom(opts.StatePath)

	focused, err := wm.FocusedWindow(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query focused window: %w", err)
	}
	before := focused.Geometry()

	var prior *state.Record
	if r, ok := store.Get(before.ID); ok {
		prior = &r
	}

	decision := cycle.Decide(prior, before, opts.Grid)

	logging.Info().
		Uint32("windowId", before.ID).
		Str("grid", opts.Grid.String()).
		Uint32("gridX", decision.Cell.X).
		Uint32("gridY", decision.Cell.Y).
		Str("reason", string(decision.Reason)).
		Bool("dryRun", opts.DryRun).
		Msg("cycling window")

	result := &CycleResult{
		WindowID: before.ID,
		Grid:     opts.Grid.String(),
		Cell:     decision.Cell,
		Reason:   decision.Reason,
		Before:   before,
		Prior:    prior,
		DryRun:   opts.DryRun,
	}

	if opts.DryRun {
		return result, nil
	}

	if err := wm.MoveToGrid(ctx, opts.Grid, decision.Cell); err != nil {
		return nil, fmt.Errorf("failed to move window: %w", err)
	}

	// Re-read: the recorded geometry must be what yabai actually produced
	moved, err := wm.FocusedWindow(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query window after move: %w", err)
	}
	after := moved.Geometry()
	result.After = &after

	if after.ID != before.ID {
		logging.Warn().
			Uint32("before", before.ID).
			Uint32("after", after.ID).
			Msg("focus changed during move")
	}

	store.Insert(state.NewRecord(after, opts.Grid, decision.Cell))
	if err := state.SaveTo(opts.StatePath, store); err != nil {
		return nil, fmt.Errorf("failed to save state: %w", err)
	}

	logging.Debug().
		Uint32("windowId", after.ID).
		Str("geometry", after.String()).
		Int("tracked", store.Len()).
		Msg("state saved")

	return result, nil
}
