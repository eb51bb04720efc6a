package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/gridcycle/internal/types"
)

// ErrInvalidGrid is wrapped by every ParseGrid failure
var ErrInvalidGrid = errors.New("invalid grid")

// ParseGrid parses a grid shape string into a GridConfig.
// Format is "RxC" with decimal rows and columns, both at least 1:
//   - "2x3"   -> 2 rows, 3 columns
//   - "32x12" -> 32 rows, 12 columns
//
// Anything else ("3x", "0x2", "0b11x0b10", "2x3x4") is rejected.
func ParseGrid(s string) (types.GridConfig, error) {
	s = strings.TrimSpace(s)

	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return types.GridConfig{}, fmt.Errorf("%w: %q (expected RxC, e.g. 2x3)", ErrInvalidGrid, s)
	}

	rows, err := parseDimension(parts[0])
	if err != nil {
		return types.GridConfig{}, fmt.Errorf("%w: rows in %q: %v", ErrInvalidGrid, s, err)
	}

	columns, err := parseDimension(parts[1])
	if err != nil {
		return types.GridConfig{}, fmt.Errorf("%w: columns in %q: %v", ErrInvalidGrid, s, err)
	}

	return types.GridConfig{Rows: rows, Columns: columns}, nil
}

// parseDimension parses one side of the grid. Zero is not a usable dimension.
func parseDimension(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not a number: %s", s)
	}
	if n == 0 {
		return 0, fmt.Errorf("must be at least 1")
	}
	return uint32(n), nil
}
