package server

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDecodeActionDispatch(t *testing.T) {
	data := []byte(`{"type":"MoveMember","member_id":"m1","position":[12.5,34]}`)
	action, err := DecodeAction(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	move, ok := action.(MoveMemberAction)
	if !ok {
		t.Fatalf("expected MoveMemberAction, got %T", action)
	}
	if move.ActingMember() != "m1" || move.Position != (Point{12.5, 34}) {
		t.Fatalf("unexpected action %+v", move)
	}
}

func TestDecodeActionUse(t *testing.T) {
	data := []byte(`{"type":"Use","member_id":"m1","tile_index":5,` +
		`"effects":[{"type":"TransformTile","blueprint_id":"b1"},{"type":"Sparkle"}]}`)
	action, err := DecodeAction(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	use := action.(UseAction)
	if use.TileIndex != 5 || len(use.Effects) != 2 {
		t.Fatalf("unexpected action %+v", use)
	}
	if _, ok := use.Effects[0].(TransformTileEffect); !ok {
		t.Fatalf("expected transform, got %#v", use.Effects[0])
	}
	if unknown, ok := use.Effects[1].(UnknownEffect); !ok || unknown.Type != "Sparkle" {
		t.Fatalf("expected wildcard effect, got %#v", use.Effects[1])
	}
}

func TestDecodeActionUnknownType(t *testing.T) {
	_, err := DecodeAction([]byte(`{"type":"Teleport","member_id":"m1"}`))
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if _, err := DecodeAction([]byte(`not json`)); err == nil {
		t.Fatalf("expected decode failure")
	}
}

func TestEncodeActionCarriesDiscriminant(t *testing.T) {
	data, err := EncodeAction(NewPlaceTileAction("m1", 5, "wall-tile"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"type":"PlaceTile"`) {
		t.Fatalf("missing discriminant: %s", data)
	}

	action, err := DecodeAction(data)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	place := action.(PlaceTileAction)
	if place.TileIndex != 5 || place.BlueprintID != "wall-tile" {
		t.Fatalf("unexpected round trip %+v", place)
	}
}

func TestWelcomeActionCarriesSnapshot(t *testing.T) {
	room := NewRoom("Wire room")
	data, err := EncodeAction(NewWelcomeAction("m1", room))
	if err != nil {
		t.Fatalf("encode welcome: %v", err)
	}
	action, err := DecodeAction(data)
	if err != nil {
		t.Fatalf("decode welcome: %v", err)
	}
	welcome := action.(WelcomeAction)
	if welcome.Room == nil || welcome.Room.ID != room.ID {
		t.Fatalf("snapshot lost on the wire: %+v", welcome.Room)
	}
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("welcome is not an object: %v", err)
	}
	if _, ok := generic["member_id"]; !ok {
		t.Fatalf("welcome must carry the member id")
	}
}
