package net

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	server "tilerooms/server"
)

func newTestHandler() *httptest.Server {
	hub := server.NewHub(nil)
	players := server.NewPlayerStore()
	return httptest.NewServer(NewHTTPHandler(hub, players, HTTPHandlerConfig{}))
}

func TestCreateAndFetchRoom(t *testing.T) {
	ts := newTestHandler()
	defer ts.Close()

	resp, err := ts.Client().Post(ts.URL+"/api/rooms", "application/json",
		strings.NewReader(`{"title":"My room"}`))
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var room server.Room
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	if room.ID == "" || room.Title != "My room" {
		t.Fatalf("unexpected room %+v", room)
	}
	if err := room.CheckTiles(); err != nil {
		t.Fatalf("created room violates the grid invariant: %v", err)
	}

	resp, err = ts.Client().Get(ts.URL + "/api/rooms/" + room.ID)
	if err != nil {
		t.Fatalf("fetch room: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, err = ts.Client().Get(ts.URL + "/api/rooms/nope")
	if err != nil {
		t.Fatalf("fetch unknown room: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 for an unknown room, got %d", resp.StatusCode)
	}
}

func TestPlayerIdentity(t *testing.T) {
	ts := newTestHandler()
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/player")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	var player server.PrivatePlayer
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		t.Fatalf("decode player: %v", err)
	}
	resp.Body.Close()
	if player.ID == "" || player.Token == "" || player.Name != "Guest" {
		t.Fatalf("unexpected guest identity %+v", player)
	}

	req, err := nethttp.NewRequest(nethttp.MethodPut, ts.URL+"/api/player?token="+player.Token,
		strings.NewReader(`{"name":"Ada","tutorial":true}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	putResp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("put player: %v", err)
	}
	var updated server.PrivatePlayer
	if err := json.NewDecoder(putResp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated player: %v", err)
	}
	putResp.Body.Close()
	if updated.Name != "Ada" || !updated.Tutorial {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.ID != player.ID {
		t.Fatalf("player id must be immutable")
	}

	// Unknown tokens cannot be patched.
	req, err = nethttp.NewRequest(nethttp.MethodPut, ts.URL+"/api/player?token=missing",
		strings.NewReader(`{"name":"X"}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	badResp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("put unknown player: %v", err)
	}
	badResp.Body.Close()
	if badResp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", badResp.StatusCode)
	}
}
