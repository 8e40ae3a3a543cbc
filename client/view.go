package client

import (
	"context"
	"log"
	"sync"
	"time"

	server "tilerooms/server"
)

// RoomView mirrors one room on behalf of one member. It applies the session's
// broadcast actions in order and runs the same movement integration as the
// session, so the local position stays smooth between authoritative reports.
type RoomView struct {
	mu       sync.Mutex
	logger   *log.Logger
	memberID string
	room     *server.Room
	mover    *server.Mover
	reach    *server.ReachTracker
	dialogs  []*server.Dialog
	lastFail string
	updates  chan struct{}
}

func NewRoomView(logger *log.Logger) *RoomView {
	if logger == nil {
		logger = log.Default()
	}
	return &RoomView{
		logger:  logger,
		updates: make(chan struct{}, 1),
	}
}

// Updates signals that the view changed. Signals are coalesced; consumers
// re-read whatever state they render.
func (v *RoomView) Updates() <-chan struct{} { return v.updates }

func (v *RoomView) notify() {
	select {
	case v.updates <- struct{}{}:
	default:
	}
}

// MemberID returns the id this view acts as, or "" before the welcome.
func (v *RoomView) MemberID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.memberID
}

// Room returns a snapshot of the mirrored room, or nil before the welcome.
func (v *RoomView) Room() *server.Room {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.room == nil {
		return nil
	}
	return v.room.Snapshot()
}

// Position returns the member's predicted position.
func (v *RoomView) Position() (server.Point, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mover == nil {
		return server.Point{}, false
	}
	return v.mover.Position(), true
}

// Moving reports whether a local move target is pending.
func (v *RoomView) Moving() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mover != nil && v.mover.Moving()
}

// MoveTo starts walking toward p.
func (v *RoomView) MoveTo(p server.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mover != nil {
		v.mover.SetTarget(p)
	}
}

// StopMoving cancels the pending move target.
func (v *RoomView) StopMoving() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mover != nil {
		v.mover.ClearTarget()
	}
}

// Reachable reports whether the cell at index is within the member's reach.
func (v *RoomView) Reachable(index int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reach != nil && v.reach.Contains(index)
}

// ReachableCells returns the member's current reachable set, sorted.
func (v *RoomView) ReachableCells() []int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.reach == nil {
		return nil
	}
	return v.reach.Cells()
}

// NextDialogLine returns the next pending dialog line, draining finished
// dialogs. The second return is false when no dialog is open.
func (v *RoomView) NextDialogLine() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for len(v.dialogs) > 0 {
		line, ok := v.dialogs[0].Next()
		if ok {
			return line, true
		}
		v.dialogs = v.dialogs[1:]
	}
	return "", false
}

// LastFailure returns the most recent rejection message from the session.
func (v *RoomView) LastFailure() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastFail
}

// Apply folds one broadcast action into the mirror.
func (v *RoomView) Apply(action server.Action) {
	v.mu.Lock()
	defer v.mu.Unlock()
	defer v.notify()

	if welcome, ok := action.(server.WelcomeAction); ok {
		v.applyWelcome(welcome)
		return
	}
	if v.room == nil {
		v.logger.Printf("dropping %s action before the welcome", action.ActionType())
		return
	}

	switch a := action.(type) {
	case server.MoveMemberAction:
		v.applyMove(a)
	case server.PlaceTileAction:
		if v.room.Grid().ValidIndex(a.TileIndex) {
			v.room.TileIDs[a.TileIndex] = a.BlueprintID
			v.room.Version++
		}
	case server.UseAction:
		v.applyUse(a)
	case server.UpdateBlueprintAction:
		if a.Blueprint != nil {
			v.room.PutBlueprint(a.Blueprint.Clone())
			v.room.Version++
		}
	case server.UpdateRoomAction:
		v.room.Title = a.Title
		v.room.Description = a.Description
		v.room.Version++
	case server.FailedAction:
		v.lastFail = a.Message
		v.logger.Printf("session rejected an action: %s", a.Message)
	default:
		v.logger.Printf("ignoring unhandled %s action", action.ActionType())
	}
}

func (v *RoomView) applyWelcome(welcome server.WelcomeAction) {
	v.memberID = welcome.MemberID
	v.room = welcome.Room.Snapshot()
	grid := v.room.Grid()
	position := grid.Center()
	if member, ok := v.room.Members[v.memberID]; ok {
		position = member.Position
	}
	v.mover = server.NewMover(grid, position)
	v.reach = server.NewReachTracker(grid, server.ReachRadius)
	if index, ok := grid.Index(position); ok {
		v.reach.Update(index)
	}
}

func (v *RoomView) applyMove(a server.MoveMemberAction) {
	if a.Position == server.LeftPosition {
		delete(v.room.Members, a.MemberID)
		return
	}
	if a.MemberID == v.memberID {
		// The session echoes our own reports back only on rejoin paths. A
		// pending local move wins; otherwise adopt the authoritative position.
		if !v.mover.Moving() {
			v.mover.SetPosition(a.Position)
			v.syncSelfLocked()
		}
		return
	}
	member, ok := v.room.Members[a.MemberID]
	if !ok {
		member = &server.Member{ID: a.MemberID}
		v.room.Members[a.MemberID] = member
	}
	member.Position = a.Position
}

func (v *RoomView) applyUse(a server.UseAction) {
	for _, effect := range a.Effects {
		switch e := effect.(type) {
		case server.TransformTileEffect:
			if v.room.Grid().ValidIndex(a.TileIndex) {
				v.room.TileIDs[a.TileIndex] = e.BlueprintID
				v.room.Version++
			}
		case server.OpenDialogEffect:
			// Dialogs open only for the member who used the tile.
			if a.MemberID == v.memberID {
				v.dialogs = append(v.dialogs, server.NewDialog(e.Message))
			}
		default:
			v.logger.Printf("ignoring unknown effect on cell %d", a.TileIndex)
		}
	}
}

// Step advances the local prediction by dt seconds and reports whether the
// position changed. Walls resolve against the mirrored grid, so a transform
// broadcast lands before the next step sees it.
func (v *RoomView) Step(dt float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mover == nil {
		return false
	}
	moved := v.mover.Step(dt, v.room.WallAt)
	if moved {
		v.syncSelfLocked()
		v.notify()
	}
	return moved
}

func (v *RoomView) syncSelfLocked() {
	position := v.mover.Position()
	if member, ok := v.room.Members[v.memberID]; ok {
		member.Position = position
	}
	if index, ok := v.room.Grid().Index(position); ok {
		v.reach.Update(index)
	}
}

// TickRate is the prediction frequency shared with the session mirror.
const TickRate = 15

// Simulator drives a view's prediction at a fixed tick rate and reports the
// resulting positions to the session. dt is measured, not assumed, so a
// stalled goroutine catches up instead of slowing down.
type Simulator struct {
	view *RoomView
	conn *Conn
}

func NewSimulator(view *RoomView, conn *Conn) *Simulator {
	return &Simulator{view: view, conn: conn}
}

// Run ticks until ctx is cancelled or the connection closes.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.conn.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if s.view.Step(dt) {
				position, _ := s.view.Position()
				if err := s.conn.Send(server.NewMoveMemberAction(s.view.MemberID(), position)); err != nil {
					return
				}
			}
		}
	}
}

// Pump feeds a connection's action stream into a view until the stream ends.
func Pump(conn *Conn, view *RoomView) {
	for action := range conn.Actions() {
		view.Apply(action)
	}
}
