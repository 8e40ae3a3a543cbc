package server

import (
	"fmt"

	"github.com/google/uuid"
)

// Room is a bounded tile grid plus its members and blueprint catalog. Version
// is an opaque token incremented on every structural change, used by clients
// for optimistic reconciliation.
//
// Invariant: every id in TileIDs resolves in Blueprints.
type Room struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Version     uint64             `json:"version"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	TileIDs     []string           `json:"tile_ids"`
	Blueprints  map[string]*Tile   `json:"blueprints"`
	Members     map[string]*Member `json:"members"`
}

// NewRoom creates an all-void room of the default dimensions, seeded with the
// default blueprint catalog.
func NewRoom(title string) *Room {
	blueprints := make(map[string]*Tile, len(DefaultBlueprints))
	for id, tile := range DefaultBlueprints {
		blueprints[id] = tile.Clone()
	}
	tileIDs := make([]string, RoomWidth*RoomHeight)
	for i := range tileIDs {
		tileIDs[i] = "void"
	}
	return &Room{
		ID:         uuid.NewString(),
		Title:      title,
		Width:      RoomWidth,
		Height:     RoomHeight,
		TileIDs:    tileIDs,
		Blueprints: blueprints,
		Members:    make(map[string]*Member),
	}
}

// Grid returns the room's cell grid.
func (r *Room) Grid() Grid { return Grid{Width: r.Width, Height: r.Height} }

// Blueprint looks up a blueprint by id.
func (r *Room) Blueprint(id string) (*Tile, bool) {
	tile, ok := r.Blueprints[id]
	return tile, ok
}

// PutBlueprint inserts or replaces a blueprint. Every cell referencing the id
// resolves to the new value afterwards; TileIDs itself is untouched.
func (r *Room) PutBlueprint(tile *Tile) {
	r.Blueprints[tile.ID] = tile
}

// TileAt resolves the blueprint occupying the cell at index. A cell whose id
// is missing from the store is a consistency error.
func (r *Room) TileAt(index int) (*Tile, error) {
	if !r.Grid().ValidIndex(index) {
		return nil, fmt.Errorf("%w: %d", ErrBadIndex, index)
	}
	tile, ok := r.Blueprints[r.TileIDs[index]]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlueprint, r.TileIDs[index])
	}
	return tile, nil
}

// WallAt reports whether the cell at index blocks movement. Out-of-range
// cells count as walls.
func (r *Room) WallAt(index int) bool {
	tile, err := r.TileAt(index)
	return err != nil || tile.Wall
}

// CheckTiles verifies the grid invariant: every cell references a known
// blueprint.
func (r *Room) CheckTiles() error {
	for i, id := range r.TileIDs {
		if _, ok := r.Blueprints[id]; !ok {
			return fmt.Errorf("%w: %s at cell %d", ErrUnknownBlueprint, id, i)
		}
	}
	return nil
}

// Snapshot returns a deep copy safe to hand out beyond the session lock.
func (r *Room) Snapshot() *Room {
	clone := *r
	clone.TileIDs = append([]string(nil), r.TileIDs...)
	clone.Blueprints = make(map[string]*Tile, len(r.Blueprints))
	for id, tile := range r.Blueprints {
		clone.Blueprints[id] = tile.Clone()
	}
	clone.Members = make(map[string]*Member, len(r.Members))
	for id, member := range r.Members {
		memberCopy := *member
		clone.Members[id] = &memberCopy
	}
	return &clone
}
