package client

import (
	"testing"

	server "tilerooms/server"
)

func newWelcomedView(t *testing.T) (*RoomView, *server.Room) {
	t.Helper()
	room := server.NewRoom("Test room")
	for i := range room.TileIDs {
		room.TileIDs[i] = "floor"
	}
	room.Members["me"] = &server.Member{ID: "me", Position: room.Grid().CellCenter(0)}
	view := NewRoomView(nil)
	view.Apply(server.NewWelcomeAction("me", room))
	return view, room
}

func TestViewAdoptsWelcome(t *testing.T) {
	view, _ := newWelcomedView(t)

	if view.MemberID() != "me" {
		t.Fatalf("member id not adopted")
	}
	mirror := view.Room()
	if mirror == nil || mirror.Title != "Test room" {
		t.Fatalf("room not mirrored: %+v", mirror)
	}
	position, ok := view.Position()
	if !ok || position != mirror.Grid().CellCenter(0) {
		t.Fatalf("position not adopted from the snapshot: %v", position)
	}
	if !view.Reachable(0) {
		t.Fatalf("own cell must be reachable after the welcome")
	}
}

func TestViewTracksOtherMembers(t *testing.T) {
	view, _ := newWelcomedView(t)

	view.Apply(server.NewMoveMemberAction("peer", server.Point{X: 20, Y: 20}))
	mirror := view.Room()
	peer, ok := mirror.Members["peer"]
	if !ok || (peer.Position != server.Point{X: 20, Y: 20}) {
		t.Fatalf("peer move not mirrored: %+v", mirror.Members)
	}

	view.Apply(server.NewMoveMemberAction("peer", server.LeftPosition))
	if _, ok := view.Room().Members["peer"]; ok {
		t.Fatalf("leave signal must remove the member")
	}
}

func TestViewAppliesPlaceAndBlueprintUpdate(t *testing.T) {
	view, _ := newWelcomedView(t)
	before := view.Room().Version

	view.Apply(server.NewPlaceTileAction("peer", 5, "grass"))
	mirror := view.Room()
	if mirror.TileIDs[5] != "grass" {
		t.Fatalf("place not mirrored, cell 5 is %s", mirror.TileIDs[5])
	}
	if mirror.Version <= before {
		t.Fatalf("version must advance on a place")
	}

	view.Apply(server.NewUpdateBlueprintAction("peer", &server.Tile{ID: "grass", Image: "x", Wall: true}))
	mirror = view.Room()
	if tile, _ := mirror.Blueprint("grass"); !tile.Wall {
		t.Fatalf("blueprint update not mirrored")
	}
	if !mirror.WallAt(5) {
		t.Fatalf("cells referencing the blueprint must resolve to the new value")
	}
}

func TestViewUseTransformsAndOpensOwnDialogs(t *testing.T) {
	view, _ := newWelcomedView(t)

	view.Apply(server.NewUseAction("peer", 3, server.Effects{
		server.NewTransformTileEffect("grass"),
		server.NewOpenDialogEffect("hello\nthere"),
	}))
	if view.Room().TileIDs[3] != "grass" {
		t.Fatalf("transform effect not applied")
	}
	if _, open := view.NextDialogLine(); open {
		t.Fatalf("a peer's dialog must not open locally")
	}

	view.Apply(server.NewUseAction("me", 3, server.Effects{
		server.NewOpenDialogEffect(" hello \n\nthere"),
	}))
	if line, ok := view.NextDialogLine(); !ok || line != "hello" {
		t.Fatalf("expected the first dialog line, got %q ok=%v", line, ok)
	}
	if line, ok := view.NextDialogLine(); !ok || line != "there" {
		t.Fatalf("expected the second dialog line, got %q ok=%v", line, ok)
	}
	if _, ok := view.NextDialogLine(); ok {
		t.Fatalf("dialog must be exhausted")
	}
}

func TestViewStepMovesTowardTarget(t *testing.T) {
	view, room := newWelcomedView(t)
	start, _ := view.Position()
	target := room.Grid().CellCenter(2)
	view.MoveTo(target)
	if !view.Moving() {
		t.Fatalf("target not adopted")
	}

	const dt = 1.0 / TickRate
	moved := false
	for i := 0; i < 200 && view.Moving(); i++ {
		moved = view.Step(dt) || moved
	}
	if !moved {
		t.Fatalf("step never moved")
	}
	position, _ := view.Position()
	if position == start {
		t.Fatalf("position did not advance")
	}
	if view.Moving() {
		t.Fatalf("mover never arrived at %v, stuck at %v", target, position)
	}
	if !view.Reachable(2) {
		t.Fatalf("reach set not updated along the move")
	}
	if member := view.Room().Members["me"]; member.Position != position {
		t.Fatalf("mirrored member not kept in sync with the prediction")
	}
}

func TestViewAuthoritativeSelfMove(t *testing.T) {
	view, room := newWelcomedView(t)
	authoritative := room.Grid().CellCenter(7)

	// Without a pending local move the session's report wins.
	view.Apply(server.NewMoveMemberAction("me", authoritative))
	if position, _ := view.Position(); position != authoritative {
		t.Fatalf("authoritative position not adopted: %v", position)
	}

	// With a pending local move the prediction wins.
	view.MoveTo(room.Grid().CellCenter(8))
	view.Apply(server.NewMoveMemberAction("me", room.Grid().CellCenter(0)))
	if position, _ := view.Position(); position != authoritative {
		t.Fatalf("echo overrode an in-flight prediction: %v", position)
	}
	if !view.Moving() {
		t.Fatalf("echo cancelled the pending move")
	}
}

func TestViewRecordsFailures(t *testing.T) {
	view, _ := newWelcomedView(t)
	view.Apply(server.NewFailedAction("me", "out of reach"))
	if view.LastFailure() != "out of reach" {
		t.Fatalf("failure not recorded: %q", view.LastFailure())
	}
}

func TestViewUpdatesCoalesce(t *testing.T) {
	view, _ := newWelcomedView(t)
	view.Apply(server.NewPlaceTileAction("peer", 1, "grass"))
	view.Apply(server.NewPlaceTileAction("peer", 2, "grass"))

	select {
	case <-view.Updates():
	default:
		t.Fatalf("no update signal pending")
	}
	select {
	case <-view.Updates():
		t.Fatalf("signals must coalesce")
	default:
	}
}
