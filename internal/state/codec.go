package state

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// fieldCount is the number of space separated fields per line:
// window_id x y width height rows columns grid_x grid_y
const fieldCount = 9

// ErrEmpty is returned by Parse for input with no records
var ErrEmpty = errors.New("empty state")

// Parse decodes the line encoding. A single malformed line fails the whole
// parse; there is no partial recovery.
func Parse(text string) (Store, error) {
	store := NewStore()

	n := 0
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := parseLine(line)
		if err != nil {
			return NewStore(), fmt.Errorf("line %d: %w", i+1, err)
		}
		store.Insert(r)
		n++
	}

	if n == 0 {
		return NewStore(), ErrEmpty
	}
	return store, nil
}

// Load decodes the line encoding, returning an empty store if text is empty
// or any line is malformed.
func Load(text string) Store {
	store, err := Parse(text)
	if err != nil {
		return NewStore()
	}
	return store
}

// Serialize encodes every record as one newline-terminated line, ordered by
// window ID.
func Serialize(s Store) string {
	var sb strings.Builder
	for _, r := range s.Records() {
		sb.WriteString(formatLine(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func parseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != fieldCount {
		return Record{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}

	var r Record
	var err error

	if r.WindowID, err = parseUint(fields[0], "window_id"); err != nil {
		return Record{}, err
	}
	if r.X, err = parseFloat(fields[1], "x"); err != nil {
		return Record{}, err
	}
	if r.Y, err = parseFloat(fields[2], "y"); err != nil {
		return Record{}, err
	}
	if r.Width, err = parseFloat(fields[3], "width"); err != nil {
		return Record{}, err
	}
	if r.Height, err = parseFloat(fields[4], "height"); err != nil {
		return Record{}, err
	}
	if r.Rows, err = parseUint(fields[5], "rows"); err != nil {
		return Record{}, err
	}
	if r.Columns, err = parseUint(fields[6], "columns"); err != nil {
		return Record{}, err
	}
	if r.GridX, err = parseUint(fields[7], "grid_x"); err != nil {
		return Record{}, err
	}
	if r.GridY, err = parseUint(fields[8], "grid_y"); err != nil {
		return Record{}, err
	}

	return r, nil
}

func formatLine(r Record) string {
	return strings.Join([]string{
		strconv.FormatUint(uint64(r.WindowID), 10),
		formatFloat(r.X),
		formatFloat(r.Y),
		formatFloat(r.Width),
		formatFloat(r.Height),
		strconv.FormatUint(uint64(r.Rows), 10),
		strconv.FormatUint(uint64(r.Columns), 10),
		strconv.FormatUint(uint64(r.GridX), 10),
		strconv.FormatUint(uint64(r.GridY), 10),
	}, " ")
}

func parseUint(s, name string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return uint32(n), nil
}

func parseFloat(s, name string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return float32(f), nil
}

// formatFloat writes the shortest text that parses back to the same float32
func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
