package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yourusername/gridcycle/internal/state"
	"github.com/yourusername/gridcycle/internal/types"
	"github.com/yourusername/gridcycle/internal/yabai"
)

func TestCanvasDrawBox(t *testing.T) {
	c := NewCanvas(5, 3, false)
	c.DrawBox(0, 0, 5, 3)

	want := "+---+\n|   |\n+---+"
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestCanvasOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2, false)
	c.SetCell(5, 5, 'x')
	c.SetCell(-1, 0, 'x')

	if got := c.GetCell(5, 5); got != ' ' {
		t.Errorf("GetCell(5, 5) = %q, want ' '", got)
	}
	if strings.ContainsRune(c.String(), 'x') {
		t.Error("out of range SetCell wrote to the canvas")
	}
}

func TestCanvasShadeInside(t *testing.T) {
	c := NewCanvas(4, 4, true)
	c.DrawBox(0, 0, 4, 4)
	c.ShadeInside(0, 0, 4, 4)

	if got := c.GetCell(1, 1); got != '░' {
		t.Errorf("GetCell(1, 1) = %q, want '░'", got)
	}
	if got := c.GetCell(0, 0); got != '┌' {
		t.Errorf("GetCell(0, 0) = %q, want '┌'", got)
	}
}

func TestCanvasDrawTextCentered(t *testing.T) {
	tests := []struct {
		name  string
		width int
		text  string
		want  string
	}{
		{"centered", 7, "abc", "  abc  "},
		{"exact", 3, "abc", "abc"},
		{"truncated", 2, "abc", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(tt.width, 1, false)
			c.DrawTextCentered(0, 0, tt.width, tt.text)
			if got := c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderGrid(t *testing.T) {
	grid := types.GridConfig{Rows: 2, Columns: 3}
	opts := GridOptions{UseUnicode: false, MaxWidth: 80, MaxHeight: 24}

	out := RenderGrid(grid, GridMarks{}, opts)

	for _, label := range []string{"0,0", "1,0", "2,0", "0,1", "1,1", "2,1"} {
		if !strings.Contains(out, label) {
			t.Errorf("RenderGrid() missing label %q:\n%s", label, out)
		}
	}
	if strings.ContainsRune(out, '.') {
		t.Errorf("RenderGrid() shaded a cell without marks:\n%s", out)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 9 {
		t.Errorf("RenderGrid() has %d lines, want 9", len(lines))
	}
	for i, line := range lines {
		if len(line) != 49 {
			t.Errorf("line %d has width %d, want 49", i, len(line))
		}
	}
}

func TestRenderGridMarks(t *testing.T) {
	grid := types.GridConfig{Rows: 2, Columns: 3}
	current := types.Cell{X: 1, Y: 0}
	next := types.Cell{X: 2, Y: 0}
	opts := GridOptions{UseUnicode: false, MaxWidth: 80, MaxHeight: 24}

	out := RenderGrid(grid, GridMarks{Current: &current, Next: &next}, opts)

	if !strings.Contains(out, "[1,0]") {
		t.Errorf("RenderGrid() does not mark current cell:\n%s", out)
	}
	if strings.Contains(out, "[2,0]") {
		t.Errorf("RenderGrid() marks next cell as current:\n%s", out)
	}

	// Shading only appears in the top row, right-most cell
	lines := strings.Split(out, "\n")
	shaded := lines[1]
	if !strings.HasSuffix(shaded, "...............|") {
		t.Errorf("next cell not shaded, got %q", shaded)
	}
	if strings.ContainsRune(lines[5], '.') {
		t.Errorf("bottom row shaded, got %q", lines[5])
	}
}

func TestRenderGridSmallTerminal(t *testing.T) {
	grid := types.GridConfig{Rows: 1, Columns: 1}
	out := RenderGrid(grid, GridMarks{}, GridOptions{MaxWidth: 1, MaxHeight: 1})

	// Minimum cell is 6 wide and 2 high
	want := "+-----+\n| 0,0 |\n+-----+\n"
	if out != want {
		t.Errorf("RenderGrid() =\n%q\nwant\n%q", out, want)
	}
}

func TestRenderGridEmpty(t *testing.T) {
	if out := RenderGrid(types.GridConfig{}, GridMarks{}, GridOptions{}); out != "" {
		t.Errorf("RenderGrid(0x0) = %q, want empty", out)
	}
}

func TestPrintRecordsTable(t *testing.T) {
	var buf bytes.Buffer
	records := []state.Record{
		{WindowID: 19457, X: 0, Y: 25, Width: 400, Height: 387.5, Rows: 2, Columns: 3, GridX: 1, GridY: 0},
	}

	PrintRecordsTable(&buf, records)

	out := buf.String()
	for _, want := range []string{"19457", "(0, 25)", "400x387.5", "2x3", "(1, 0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintRecordsTable() missing %q:\n%s", want, out)
		}
	}
}

func TestPrintWindowsTable(t *testing.T) {
	var buf bytes.Buffer
	windows := []yabai.Window{
		{ID: 1, App: "Terminal", Title: "zsh", Space: 1, HasFocus: true, Frame: yabai.Frame{W: 400, H: 400}},
		{ID: 2, App: "Safari", Title: strings.Repeat("t", 50), Space: 2},
	}
	store := state.NewStore()
	store.Insert(state.Record{WindowID: 1, Rows: 2, Columns: 3, GridX: 2, GridY: 1})

	PrintWindowsTable(&buf, windows, store)

	out := buf.String()
	for _, want := range []string{"Terminal", "Safari", "(2, 1) on 2x3", "..."} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintWindowsTable() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("t", 50)) {
		t.Errorf("PrintWindowsTable() did not truncate long title:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"日本語のタイトルです", 8, "日本語のタ..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
