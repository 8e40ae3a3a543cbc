package ws

import (
	"log"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	server "tilerooms/server"
)

const writeWait = 10 * time.Second

type HandlerConfig struct {
	Logger *log.Logger
}

// Handler upgrades room connections and bridges them onto a room session:
// inbound frames become applied actions, the session's feed becomes outbound
// frames.
type Handler struct {
	hub      *server.Hub
	players  *server.PlayerStore
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *server.Hub, players *server.PlayerStore, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		hub:     hub,
		players: players,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
	}
}

func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	roomID := r.PathValue("id")
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for room %s: %v", roomID, err)
		return
	}

	session, ok := h.hub.Room(roomID)
	if !ok {
		// Terminal: clients must not retry an unknown room.
		message := websocket.FormatCloseMessage(server.CloseUnknownRoom, server.ErrUnknownRoom.Error())
		conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
		conn.Close()
		return
	}

	player := h.players.Authenticate(r.URL.Query().Get("token"))
	member, feed := session.Join(player.Player)
	h.logger.Printf("%s %s joined room %s", r.RemoteAddr, member.ID, roomID)

	go h.writeLoop(conn, feed)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			session.Leave(member.ID)
			conn.Close()
			h.logger.Printf("%s %s left room %s (%v)", r.RemoteAddr, member.ID, roomID, err)
			return
		}
		h.dispatch(session, member.ID, roomID, r.RemoteAddr, payload)
	}
}

// dispatch decodes and applies one inbound frame. All failures stay local to
// the issuing member: it gets a Failed action and the connection stays open.
func (h *Handler) dispatch(session *server.RoomSession, memberID, roomID, remote string, payload []byte) {
	start := time.Now()
	action, err := server.DecodeAction(payload)
	if err == nil && action.ActingMember() != memberID {
		err = server.ErrForbidden
	}
	if err == nil {
		err = session.Apply(action)
	}
	if err != nil {
		session.Fail(memberID, err.Error())
	}

	// Moves are far too chatty to log.
	name := "Action"
	if action != nil {
		name = action.ActionType()
	}
	if name != server.TypeMoveMember || err != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		h.logger.Printf("%s %s %s @%s %s (%.1fms)",
			remote, memberID, name, roomID, status,
			float64(time.Since(start).Microseconds())/1000)
	}
}

// writeLoop drains a member's action feed onto the connection. The session
// closes the feed when the member leaves or falls behind; either way the
// connection is torn down, which also stops the read loop.
func (h *Handler) writeLoop(conn *websocket.Conn, feed <-chan server.Action) {
	for action := range feed {
		data, err := server.EncodeAction(action)
		if err != nil {
			h.logger.Printf("dropping unencodable %s action: %v", action.ActionType(), err)
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			break
		}
	}
	conn.Close()
}
