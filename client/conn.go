// Package client implements the member-side half of the room protocol: the
// connection lifecycle with reconnect and heartbeat, a read-only room mirror
// fed by broadcast actions, and the local movement prediction that runs the
// same simulation as the authoritative session.
package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	server "tilerooms/server"
)

// Connection states.
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

var (
	// ErrRoomNotFound is terminal: the server closed with code 4004 and a
	// reconnect would be pointless.
	ErrRoomNotFound = errors.New("room does not exist")
	// ErrUnexpectedClose is terminal: the server closed with a code outside
	// the retryable allow-list.
	ErrUnexpectedClose = errors.New("unexpected close")
	// ErrConnClosed is returned by Send once the connection is gone.
	ErrConnClosed = errors.New("connection closed")
)

// errRetry marks abnormal closures worth a reconnect attempt.
var errRetry = errors.New("retryable disconnect")

// DefaultReconnectDelays retries immediately once, then every second.
var DefaultReconnectDelays = []time.Duration{0, time.Second}

const DefaultHeartbeatInterval = 30 * time.Second

type Config struct {
	// URL of the room channel, e.g. ws://host/ws/rooms/{id}?token=t.
	URL    string
	Logger *log.Logger
	// HeartbeatInterval is the idle period after which a position report is
	// sent to keep intermediaries from dropping the connection.
	HeartbeatInterval time.Duration
	// ReconnectDelays is the backoff sequence; the last entry repeats.
	ReconnectDelays []time.Duration
	// Position supplies the current position for idle heartbeats.
	Position func() (server.Point, bool)
	Dialer   *websocket.Dialer
}

// Conn maintains a member's channel to one room across reconnects. Received
// actions are delivered in order on Actions; Done closes once the connection
// is terminally gone, with Err explaining why.
type Conn struct {
	cfg      Config
	actions  chan server.Action
	outbound chan server.Action
	cancel   context.CancelFunc
	done     chan struct{}
	state    atomic.Int32

	mu       sync.Mutex
	memberID string
	err      error
}

// Dial starts maintaining a connection to the configured room. The returned
// Conn is usable immediately; the first Welcome arrives on Actions.
func Dial(ctx context.Context, cfg Config) *Conn {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if len(cfg.ReconnectDelays) == 0 {
		cfg.ReconnectDelays = DefaultReconnectDelays
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}
	ctx, cancel := context.WithCancel(ctx)
	c := &Conn{
		cfg:      cfg,
		actions:  make(chan server.Action, subscriberBuffer),
		outbound: make(chan server.Action, subscriberBuffer),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go c.run(ctx)
	return c
}

const subscriberBuffer = 64

// Actions is the ordered stream of actions received from the session. It is
// closed when the connection terminates.
func (c *Conn) Actions() <-chan server.Action { return c.actions }

// Done closes once the connection is terminally closed.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Err reports why the connection terminated; nil for a normal closure.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// State returns the current connection state.
func (c *Conn) State() State { return State(c.state.Load()) }

// MemberID returns the member id assigned by the most recent Welcome, or ""
// before the handshake.
func (c *Conn) MemberID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memberID
}

// Send queues an action for the session.
func (c *Conn) Send(action server.Action) error {
	select {
	case <-c.done:
		return ErrConnClosed
	case c.outbound <- action:
		return nil
	}
}

// Close tears the connection down and waits for the run loop to finish.
func (c *Conn) Close() error {
	c.cancel()
	<-c.done
	return nil
}

func (c *Conn) run(ctx context.Context) {
	defer close(c.done)
	defer close(c.actions)
	attempt := 0
	for {
		c.state.Store(int32(StateConnecting))
		ws, _, err := c.cfg.Dialer.DialContext(ctx, c.cfg.URL, nil)
		if err != nil {
			if ctx.Err() != nil {
				c.finish(nil)
				return
			}
			c.cfg.Logger.Printf("connect failed: %v", err)
		} else {
			c.state.Store(int32(StateOpen))
			attempt = 0
			err = c.serve(ctx, ws)
			if ctx.Err() != nil || err == nil {
				c.finish(nil)
				return
			}
			if !errors.Is(err, errRetry) {
				c.cfg.Logger.Printf("connection closed: %v", err)
				c.finish(err)
				return
			}
			c.cfg.Logger.Printf("connection lost, reconnecting")
		}

		delay := reconnectDelay(c.cfg.ReconnectDelays, attempt)
		attempt++
		select {
		case <-ctx.Done():
			c.finish(nil)
			return
		case <-time.After(delay):
		}
	}
}

func (c *Conn) finish(err error) {
	c.state.Store(int32(StateClosed))
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

func reconnectDelay(delays []time.Duration, attempt int) time.Duration {
	if attempt >= len(delays) {
		return delays[len(delays)-1]
	}
	return delays[attempt]
}

// serve runs one connection until it drops. A nil return means a clean
// shutdown; errRetry asks the run loop for another attempt; anything else is
// terminal.
func (c *Conn) serve(ctx context.Context, ws *websocket.Conn) error {
	defer ws.Close()

	stop := make(chan struct{})
	defer close(stop)
	go c.writeLoop(ctx, ws, stop)

	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			return classifyClose(err)
		}
		action, err := server.DecodeAction(payload)
		if err != nil {
			c.cfg.Logger.Printf("discarding malformed action: %v", err)
			continue
		}
		if welcome, ok := action.(server.WelcomeAction); ok {
			c.mu.Lock()
			c.memberID = welcome.MemberID
			c.mu.Unlock()
		}
		select {
		case c.actions <- action:
		case <-ctx.Done():
			return nil
		}
	}
}

// writeLoop drains outbound actions and fills idle gaps with heartbeat
// position reports, which carry no semantic payload.
func (c *Conn) writeLoop(ctx context.Context, ws *websocket.Conn, stop <-chan struct{}) {
	heartbeat := time.NewTimer(c.cfg.HeartbeatInterval)
	defer heartbeat.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			ws.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
			ws.Close()
			return
		case action := <-c.outbound:
			if err := c.write(ws, action); err != nil {
				return
			}
			// The timer may have fired concurrently; drain before Reset so
			// the stale value cannot trigger an early heartbeat.
			if !heartbeat.Stop() {
				select {
				case <-heartbeat.C:
				default:
				}
			}
			heartbeat.Reset(c.cfg.HeartbeatInterval)
		case <-heartbeat.C:
			if action, ok := c.heartbeatAction(); ok {
				if err := c.write(ws, action); err != nil {
					return
				}
			}
			heartbeat.Reset(c.cfg.HeartbeatInterval)
		}
	}
}

func (c *Conn) heartbeatAction() (server.Action, bool) {
	if c.cfg.Position == nil {
		return nil, false
	}
	memberID := c.MemberID()
	if memberID == "" {
		return nil, false
	}
	position, ok := c.cfg.Position()
	if !ok {
		return nil, false
	}
	return server.NewMoveMemberAction(memberID, position), true
}

func (c *Conn) write(ws *websocket.Conn, action server.Action) error {
	data, err := server.EncodeAction(action)
	if err != nil {
		c.cfg.Logger.Printf("dropping unencodable %s action: %v", action.ActionType(), err)
		return nil
	}
	ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	return nil
}

// classifyClose sorts a read error into clean, retryable or terminal.
// Closures without a close frame (dropped peers, idle timeouts) count as
// abnormal and are retried.
func classifyClose(err error) error {
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) {
		return errRetry
	}
	switch closeErr.Code {
	case websocket.CloseNormalClosure:
		return nil
	case websocket.CloseGoingAway, websocket.CloseAbnormalClosure:
		return errRetry
	case server.CloseUnknownRoom:
		return ErrRoomNotFound
	default:
		return fmt.Errorf("%w: code %d", ErrUnexpectedClose, closeErr.Code)
	}
}
