package net

import (
	"encoding/json"
	"log"
	nethttp "net/http"

	server "tilerooms/server"
	"tilerooms/server/internal/net/ws"
)

type HTTPHandlerConfig struct {
	Logger *log.Logger
}

type createRoomRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewHTTPHandler builds the full route table: the REST companion endpoints
// plus the websocket session endpoint.
func NewHTTPHandler(hub *server.Hub, players *server.PlayerStore, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	wsHandler := ws.NewHandler(hub, players, ws.HandlerConfig{Logger: logger})

	mux := nethttp.NewServeMux()

	mux.HandleFunc("POST /api/rooms", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req createRoomRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				nethttp.Error(w, "bad request body", nethttp.StatusBadRequest)
				return
			}
		}
		if req.Title == "" {
			req.Title = "New room"
		}
		session := hub.CreateRoom(req.Title)
		writeJSON(w, logger, nethttp.StatusCreated, session.Snapshot())
	})

	mux.HandleFunc("GET /api/rooms/{id}", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		session, ok := hub.Room(r.PathValue("id"))
		if !ok {
			nethttp.Error(w, server.ErrUnknownRoom.Error(), nethttp.StatusNotFound)
			return
		}
		writeJSON(w, logger, nethttp.StatusOK, session.Snapshot())
	})

	mux.HandleFunc("GET /api/player", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		player := players.Authenticate(r.URL.Query().Get("token"))
		writeJSON(w, logger, nethttp.StatusOK, player)
	})

	mux.HandleFunc("PUT /api/player", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var patch server.PlayerPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			nethttp.Error(w, "bad request body", nethttp.StatusBadRequest)
			return
		}
		player, ok := players.Update(r.URL.Query().Get("token"), patch)
		if !ok {
			nethttp.Error(w, "unknown player", nethttp.StatusNotFound)
			return
		}
		writeJSON(w, logger, nethttp.StatusOK, player)
	})

	mux.HandleFunc("GET /ws/rooms/{id}", wsHandler.Handle)

	return mux
}

func writeJSON(w nethttp.ResponseWriter, logger *log.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Printf("failed to write response: %v", err)
	}
}
