package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/gridcycle/internal/state"
	"github.com/yourusername/gridcycle/internal/yabai"
)

// PrintRecordsTable prints tracked windows in a table format
func PrintRecordsTable(w io.Writer, records []state.Record) {
	table := tablewriter.NewWriter(w)
	table.Header("Window", "Position", "Size", "Grid", "Cell")

	for _, r := range records {
		table.Append(
			fmt.Sprintf("%d", r.WindowID),
			fmt.Sprintf("(%g, %g)", r.X, r.Y),
			fmt.Sprintf("%gx%g", r.Width, r.Height),
			r.Grid().String(),
			r.Cell().String(),
		)
	}

	table.Render()
}

// PrintWindowsTable prints yabai windows, marking the focused one and showing
// the recorded cell of windows the store tracks.
func PrintWindowsTable(w io.Writer, windows []yabai.Window, store state.Store) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "App", "Title", "Space", "Frame", "Focus", "Cell")

	for _, win := range windows {
		focus := ""
		if win.HasFocus {
			focus = "*"
		}

		cell := "-"
		if r, ok := store.Get(win.ID); ok {
			cell = fmt.Sprintf("%s on %s", r.Cell(), r.Grid())
		}

		table.Append(
			fmt.Sprintf("%d", win.ID),
			truncate(win.App, 20),
			truncate(win.Title, 30),
			fmt.Sprintf("%d", win.Space),
			win.Geometry().String(),
			focus,
			cell,
		)
	}

	table.Render()
}

// Helper functions

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
