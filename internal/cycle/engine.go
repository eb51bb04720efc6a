// Package cycle decides which grid cell the focused window moves to next.
//
// A window keeps cycling only while nothing else has touched it: same
// position, same size and same grid shape as when it was last placed.
// Any difference sends it back to the first cell.
package cycle

import (
	"github.com/yourusername/gridcycle/internal/state"
	"github.com/yourusername/gridcycle/internal/types"
)

// Reason explains why a decision continued or restarted the cycle
type Reason string

const (
	ReasonNoRecord    Reason = "no-record"    // Window never placed before
	ReasonMoved       Reason = "moved"        // Position differs from the record
	ReasonGridChanged Reason = "grid-changed" // Requested grid differs from the record
	ReasonResized     Reason = "resized"      // Size differs from the record
	ReasonContinue    Reason = "continue"     // Advance from the recorded cell
)

// Decision is the outcome of Decide
type Decision struct {
	Cell   types.Cell `json:"cell"`
	Reason Reason     `json:"reason"`
}

// Continues reports whether the window advanced rather than restarted
func (d Decision) Continues() bool {
	return d.Reason == ReasonContinue
}

// Decide picks the next cell for a window.
// prior is the stored record for the window, nil if there is none.
// Position and size are compared exactly.
func Decide(prior *state.Record, current types.Geometry, grid types.GridConfig) Decision {
	start := Decision{Cell: types.Cell{X: 0, Y: 0}}

	switch {
	case prior == nil:
		start.Reason = ReasonNoRecord
	case prior.X != current.X || prior.Y != current.Y:
		start.Reason = ReasonMoved
	case prior.Rows != grid.Rows || prior.Columns != grid.Columns:
		start.Reason = ReasonGridChanged
	case prior.Width != current.Width || prior.Height != current.Height:
		start.Reason = ReasonResized
	default:
		return Decision{Cell: Advance(prior.Cell(), grid), Reason: ReasonContinue}
	}

	return start
}

// DecideNextCell is Decide without the reason
func DecideNextCell(prior *state.Record, current types.Geometry, grid types.GridConfig) types.Cell {
	return Decide(prior, current, grid).Cell
}

// Advance steps one cell forward in row-major order, wrapping from the last
// cell back to (0, 0). A 1x1 grid always yields (0, 0).
func Advance(cell types.Cell, grid types.GridConfig) types.Cell {
	switch {
	case cell.X+1 < grid.Columns:
		return types.Cell{X: cell.X + 1, Y: cell.Y}
	case cell.Y+1 < grid.Rows:
		return types.Cell{X: 0, Y: cell.Y + 1}
	default:
		return types.Cell{X: 0, Y: 0}
	}
}
