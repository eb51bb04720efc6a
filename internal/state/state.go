package state

import (
	"sort"

	"github.com/yourusername/gridcycle/internal/types"
)

// Record is where a window was, and which cell it was last placed into,
// as of the last invocation that touched it.
type Record struct {
	WindowID uint32  `json:"windowId"`
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	Width    float32 `json:"width"`
	Height   float32 `json:"height"`
	Rows     uint32  `json:"rows"`
	Columns  uint32  `json:"columns"`
	GridX    uint32  `json:"gridX"`
	GridY    uint32  `json:"gridY"`
}

// NewRecord builds the record written after a window was moved into cell on grid.
// geom is the post-move geometry.
func NewRecord(geom types.Geometry, grid types.GridConfig, cell types.Cell) Record {
	return Record{
		WindowID: geom.ID,
		X:        geom.X,
		Y:        geom.Y,
		Width:    geom.Width,
		Height:   geom.Height,
		Rows:     grid.Rows,
		Columns:  grid.Columns,
		GridX:    cell.X,
		GridY:    cell.Y,
	}
}

// Grid returns the grid shape the record was placed on
func (r Record) Grid() types.GridConfig {
	return types.GridConfig{Rows: r.Rows, Columns: r.Columns}
}

// Cell returns the cell the window was last placed into
func (r Record) Cell() types.Cell {
	return types.Cell{X: r.GridX, Y: r.GridY}
}

// Store maps window IDs to their last record. It is rebuilt from the state
// file on every invocation and written back at the end; nothing else holds it.
type Store struct {
	records map[uint32]Record
}

// NewStore creates an empty store
func NewStore() Store {
	return Store{records: make(map[uint32]Record)}
}

// Get returns the record for a window, if any
func (s Store) Get(windowID uint32) (Record, bool) {
	r, ok := s.records[windowID]
	return r, ok
}

// Insert stores r under r.WindowID, replacing any previous record
func (s *Store) Insert(r Record) {
	if s.records == nil {
		s.records = make(map[uint32]Record)
	}
	s.records[r.WindowID] = r
}

// Delete removes the record for a window. Returns false if there was none.
func (s *Store) Delete(windowID uint32) bool {
	if _, ok := s.records[windowID]; !ok {
		return false
	}
	delete(s.records, windowID)
	return true
}

// Len returns the number of tracked windows
func (s Store) Len() int {
	return len(s.records)
}

// Records returns all records sorted by window ID
func (s Store) Records() []Record {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WindowID < out[j].WindowID
	})
	return out
}
