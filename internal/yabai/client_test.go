package yabai

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/gridcycle/internal/types"
)

const windowsJSON = ` [{ "id":19457, "pid":36188, "app":"WezTerm", "title":"yabai", "frame":{ "x":20.0000, "y":60.0000, "w":833.0000, "h":1360.0000 }, "role":"AXWindow", "display":1, "space":1, "has-focus":true, "is-visible":true, "is-floating":false },
{ "id":16013, "pid":92349, "app":"Code", "title":"yabai.go", "frame":{ "x":873.0000, "y":60.0000, "w":1667.0000, "h":1360.0000 }, "display":1, "space":1, "has-focus":false, "is-visible":true, "is-floating":false },
{ "id":6068, "pid":64937, "app":"Music", "title":"", "frame":{ "x":1290.0000, "y":60.0000, "w":1250.0000, "h":1360.0000 }, "display":1, "space":2, "has-focus":false, "is-visible":false, "is-floating":true }] `

type call struct {
	name string
	args []string
}

// fakeRunner returns canned results in order and records every call
type fakeRunner struct {
	results []Result
	errs    []error
	calls   []call
	ctxs    []context.Context
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	i := len(f.calls)
	f.calls = append(f.calls, call{name: name, args: args})
	f.ctxs = append(f.ctxs, ctx)

	var res Result
	var err error
	if i < len(f.results) {
		res = f.results[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return res, err
}

func TestParseWindows(t *testing.T) {
	windows, err := ParseWindows([]byte(windowsJSON))
	if err != nil {
		t.Fatalf("ParseWindows() error: %v", err)
	}
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}

	w := windows[0]
	if w.ID != 19457 || w.App != "WezTerm" || w.Space != 1 || !w.HasFocus {
		t.Errorf("windows[0] = %+v", w)
	}
	if !windows[2].IsFloating || windows[2].IsVisible {
		t.Errorf("windows[2] flags = %+v", windows[2])
	}
}

func TestParseWindows_Invalid(t *testing.T) {
	for _, input := range []string{"", "not json", `{"id": 1}`, `[{"id": "x"}]`} {
		if _, err := ParseWindows([]byte(input)); err == nil {
			t.Errorf("ParseWindows(%q) expected error", input)
		}
	}
}

func TestFindFocused(t *testing.T) {
	windows, _ := ParseWindows([]byte(windowsJSON))

	w, err := FindFocused(windows)
	if err != nil {
		t.Fatalf("FindFocused() error: %v", err)
	}

	want := types.Geometry{ID: 19457, X: 20, Y: 60, Width: 833, Height: 1360}
	if got := w.Geometry(); got != want {
		t.Errorf("Geometry() = %+v, want %+v", got, want)
	}
}

func TestFindFocused_None(t *testing.T) {
	windows := []Window{{ID: 1}, {ID: 2}}

	if _, err := FindFocused(windows); !errors.Is(err, ErrNoFocusedWindow) {
		t.Errorf("FindFocused() error = %v, want ErrNoFocusedWindow", err)
	}
	if _, err := FindFocused(nil); !errors.Is(err, ErrNoFocusedWindow) {
		t.Errorf("FindFocused(nil) error = %v, want ErrNoFocusedWindow", err)
	}
}

func TestGridArg(t *testing.T) {
	tests := []struct {
		grid     types.GridConfig
		cell     types.Cell
		expected string
	}{
		{types.GridConfig{Rows: 2, Columns: 3}, types.Cell{X: 0, Y: 0}, "2:3:0:0:1:1"},
		{types.GridConfig{Rows: 3, Columns: 2}, types.Cell{X: 1, Y: 2}, "3:2:1:2:1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := GridArg(tt.grid, tt.cell); got != tt.expected {
				t.Errorf("GridArg() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClient_FocusedWindow(t *testing.T) {
	r := &fakeRunner{results: []Result{{Stdout: []byte(windowsJSON)}}}
	c := NewClientWithRunner("", 0, r)

	w, err := c.FocusedWindow(context.Background())
	if err != nil {
		t.Fatalf("FocusedWindow() error: %v", err)
	}
	if w.ID != 19457 {
		t.Errorf("ID = %d, want 19457", w.ID)
	}

	if len(r.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(r.calls))
	}
	want := call{name: "yabai", args: []string{"-m", "query", "--windows"}}
	if !reflect.DeepEqual(r.calls[0], want) {
		t.Errorf("call = %+v, want %+v", r.calls[0], want)
	}
}

func TestClient_QueryWindows_Errors(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		err    error
	}{
		{"launch failure", Result{}, errors.New("exec: \"yabai\": executable file not found in $PATH")},
		{"non-zero exit", Result{ExitCode: 1, Stderr: []byte("yabai-msg: failed to connect to socket")}, nil},
		{"unparsable output", Result{Stdout: []byte("garbage")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{results: []Result{tt.result}, errs: []error{tt.err}}
			c := NewClientWithRunner("yabai", 0, r)

			if _, err := c.QueryWindows(context.Background()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestClient_FocusedWindow_NoneFocused(t *testing.T) {
	r := &fakeRunner{results: []Result{{Stdout: []byte(`[{"id": 1, "has-focus": false}]`)}}}
	c := NewClientWithRunner("yabai", 0, r)

	if _, err := c.FocusedWindow(context.Background()); !errors.Is(err, ErrNoFocusedWindow) {
		t.Errorf("error = %v, want ErrNoFocusedWindow", err)
	}
}

func TestClient_MoveToGrid(t *testing.T) {
	r := &fakeRunner{}
	c := NewClientWithRunner("/opt/homebrew/bin/yabai", 0, r)

	err := c.MoveToGrid(context.Background(), types.GridConfig{Rows: 2, Columns: 3}, types.Cell{X: 2, Y: 1})
	if err != nil {
		t.Fatalf("MoveToGrid() error: %v", err)
	}

	want := call{name: "/opt/homebrew/bin/yabai", args: []string{"-m", "window", "--grid", "2:3:2:1:1:1"}}
	if len(r.calls) != 1 || !reflect.DeepEqual(r.calls[0], want) {
		t.Errorf("calls = %+v, want [%+v]", r.calls, want)
	}
}

func TestClient_MoveToGrid_RejectedIsNotFatal(t *testing.T) {
	r := &fakeRunner{results: []Result{{ExitCode: 1, Stderr: []byte("could not move window")}}}
	c := NewClientWithRunner("yabai", 0, r)

	if err := c.MoveToGrid(context.Background(), types.GridConfig{Rows: 1, Columns: 1}, types.Cell{}); err != nil {
		t.Errorf("MoveToGrid() error = %v, want nil", err)
	}
}

func TestClient_MoveToGrid_LaunchFailure(t *testing.T) {
	r := &fakeRunner{errs: []error{errors.New("no such file")}}
	c := NewClientWithRunner("yabai", 0, r)

	if err := c.MoveToGrid(context.Background(), types.GridConfig{Rows: 1, Columns: 1}, types.Cell{}); err == nil {
		t.Error("expected launch failure to be returned")
	}
}

func TestClient_Timeout(t *testing.T) {
	r := &fakeRunner{results: []Result{{Stdout: []byte("[]")}, {Stdout: []byte("[]")}}}

	c := NewClientWithRunner("yabai", time.Second, r)
	c.QueryWindows(context.Background())
	if _, ok := r.ctxs[0].Deadline(); !ok {
		t.Error("timeout should put a deadline on the call context")
	}

	c = NewClientWithRunner("yabai", 0, r)
	c.QueryWindows(context.Background())
	if _, ok := r.ctxs[1].Deadline(); ok {
		t.Error("zero timeout should not add a deadline")
	}
}

func TestExecRunner_ExitCode(t *testing.T) {
	res, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo out; echo err >&2; exit 3")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if strings.TrimSpace(string(res.Stdout)) != "out" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if strings.TrimSpace(string(res.Stderr)) != "err" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "gridcycle-no-such-binary")
	if err == nil {
		t.Error("expected error for missing binary")
	}
}
