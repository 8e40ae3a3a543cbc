package server

// WallTest reports whether the cell at index blocks movement.
type WallTest func(index int) bool

// Mover integrates a position toward an optional move target at constant
// walking speed, with axis-separated wall collision. The same integration
// runs on the authoritative session's mirror and in each client's prediction,
// so it must stay deterministic for identical inputs.
type Mover struct {
	grid     Grid
	position Point
	target   *Point
}

func NewMover(grid Grid, position Point) *Mover {
	return &Mover{grid: grid, position: position}
}

// Position returns the current continuous position.
func (m *Mover) Position() Point { return m.position }

// SetPosition adopts an authoritative position, cancelling any pending move.
func (m *Mover) SetPosition(p Point) {
	m.position = p
	m.target = nil
}

// SetTarget starts moving toward p.
func (m *Mover) SetTarget(p Point) {
	target := p
	m.target = &target
}

// ClearTarget cancels the pending move, e.g. when the pointer is released.
func (m *Mover) ClearTarget() { m.target = nil }

// Moving reports whether a move target is pending.
func (m *Mover) Moving() bool { return m.target != nil }

// maxStepSeconds bounds a single integration slice to one cell of travel, so
// a long tick cannot step across a wall it would have collided with at the
// normal rate.
const maxStepSeconds = TileSize / MoveSpeed

// Step advances the mover by dt seconds and reports whether the position
// changed. Ticks longer than one cell of travel are integrated in slices, so
// a stalled caller catches up without tunneling.
func (m *Mover) Step(dt float64, wall WallTest) bool {
	moved := false
	for dt > 0 && m.target != nil {
		slice := dt
		if slice > maxStepSeconds {
			slice = maxStepSeconds
		}
		if m.stepOnce(slice, wall) {
			moved = true
		}
		dt -= slice
	}
	return moved
}

// stepOnce integrates a single slice. Each axis is applied independently: the
// destination cell for that axis must not be a wall, unless it is the cell
// the mover already occupies. The exception lets a mover stand inside a wall
// (after a tile transform underneath it) and still walk out, and makes
// sliding along walls work.
func (m *Mover) stepOnce(dt float64, wall WallTest) bool {
	if m.target == nil {
		return false
	}
	direction := m.target.Sub(m.position)
	distance := direction.Length()
	if distance <= MoveDelta {
		m.target = nil
		return false
	}
	f := MoveSpeed * dt / distance
	if f > 1 {
		f = 1
	}
	step := direction.Scale(f)

	current := -1
	if index, ok := m.grid.Index(m.position); ok {
		current = index
	}

	next := m.position
	if x := (Point{m.position.X + step.X, m.position.Y}); m.axisClear(x, current, wall) {
		next.X = x.X
	}
	if y := (Point{m.position.X, m.position.Y + step.Y}); m.axisClear(y, current, wall) {
		next.Y = y.Y
	}
	moved := next != m.position
	m.position = next
	return moved
}

func (m *Mover) axisClear(p Point, current int, wall WallTest) bool {
	index, ok := m.grid.Index(p)
	if !ok {
		return false
	}
	return index == current || wall == nil || !wall(index)
}
