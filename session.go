package server

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// subscriber is one member's outbound action feed. The session appends under
// its lock; the transport drains the channel from its own goroutine.
type subscriber struct {
	member  *Member
	actions chan Action
}

// RoomSession owns a room's state and is its single writer: every mutating
// operation serializes through the session mutex, and all members observe the
// applied actions in the same order.
type RoomSession struct {
	mu          sync.Mutex
	room        *Room
	subscribers map[string]*subscriber
	logger      *log.Logger
}

func NewRoomSession(room *Room, logger *log.Logger) *RoomSession {
	if logger == nil {
		logger = log.Default()
	}
	return &RoomSession{
		room:        room,
		subscribers: make(map[string]*subscriber),
		logger:      logger,
	}
}

// ID returns the room id.
func (s *RoomSession) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.ID
}

// Snapshot returns a deep copy of the current room state.
func (s *RoomSession) Snapshot() *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.Snapshot()
}

// MemberCount returns the number of joined members.
func (s *RoomSession) MemberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.room.Members)
}

// Join creates a member for the player at the room center, announces it to
// the members already present and returns the member together with its
// action feed. The first action delivered on the feed is the Welcome
// snapshot; the announcement is published before the joiner is inserted, so
// the joiner never sees its own.
func (s *RoomSession) Join(player Player) (Member, <-chan Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	member := &Member{
		ID:       uuid.NewString(),
		PlayerID: player.ID,
		Name:     player.Name,
		Position: s.room.Grid().Center(),
	}
	s.publishLocked(NewMoveMemberAction(member.ID, member.Position))

	sub := &subscriber{member: member, actions: make(chan Action, subscriberBuffer)}
	s.room.Members[member.ID] = member
	s.subscribers[member.ID] = sub
	sub.actions <- NewWelcomeAction(member.ID, s.room.Snapshot())
	return *member, sub.actions
}

// Leave removes the member, closes its feed and announces the departure with
// the leave sentinel position.
func (s *RoomSession) Leave(memberID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subscribers[memberID]; ok {
		delete(s.subscribers, memberID)
		close(sub.actions)
	}
	if _, ok := s.room.Members[memberID]; !ok {
		return
	}
	delete(s.room.Members, memberID)
	s.publishLocked(NewMoveMemberAction(memberID, LeftPosition))
}

// Fail reports a validation failure to a single member. Nothing is broadcast.
func (s *RoomSession) Fail(memberID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscribers[memberID]
	if !ok {
		return
	}
	s.deliverLocked(sub, NewFailedAction(memberID, message))
}

// Apply validates and applies an action issued by a joined member and
// broadcasts the result. A returned error means nothing was applied; the
// caller reports it to the issuer only.
func (s *RoomSession) Apply(action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	member, ok := s.room.Members[action.ActingMember()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMember, action.ActingMember())
	}
	switch a := action.(type) {
	case MoveMemberAction:
		return s.moveLocked(member, a)
	case PlaceTileAction:
		return s.placeLocked(member, a)
	case UseAction:
		return s.useLocked(member, a)
	case UpdateBlueprintAction:
		return s.updateBlueprintLocked(member, a)
	case UpdateRoomAction:
		return s.updateRoomLocked(a)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action.ActionType())
	}
}

// moveLocked updates the member position and propagates it to the other
// members. The sender already advanced locally via its movement simulator, so
// it gets no echo.
func (s *RoomSession) moveLocked(member *Member, action MoveMemberAction) error {
	if !s.room.Grid().Contains(action.Position) {
		return fmt.Errorf("%w: (%g, %g)", ErrOutOfBounds, action.Position.X, action.Position.Y)
	}
	member.Position = action.Position
	s.publishExceptLocked(member.ID, action)
	return nil
}

func (s *RoomSession) placeLocked(member *Member, action PlaceTileAction) error {
	if err := s.checkReachLocked(member, action.TileIndex); err != nil {
		return err
	}
	blueprint, ok := s.room.Blueprint(action.BlueprintID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBlueprint, action.BlueprintID)
	}
	s.room.TileIDs[action.TileIndex] = blueprint.ID
	s.room.Version++
	s.publishLocked(action)
	return nil
}

func (s *RoomSession) useLocked(member *Member, action UseAction) error {
	if err := s.checkReachLocked(member, action.TileIndex); err != nil {
		return err
	}
	tile, err := s.room.TileAt(action.TileIndex)
	if err != nil {
		// Grid invariant violated; not the issuer's fault.
		s.logger.Printf("room %s: consistency error at cell %d: %v", s.room.ID, action.TileIndex, err)
		return err
	}
	effects := tile.Resolve(CauseUse)
	for _, effect := range effects {
		switch e := effect.(type) {
		case TransformTileEffect:
			blueprint, ok := s.room.Blueprint(e.BlueprintID)
			if !ok {
				s.logger.Printf("room %s: consistency error: transform target %s missing", s.room.ID, e.BlueprintID)
				return fmt.Errorf("%w: %s", ErrUnknownBlueprint, e.BlueprintID)
			}
			s.room.TileIDs[action.TileIndex] = blueprint.ID
			s.room.Version++
		case OpenDialogEffect:
			// Presentation only, on the acting member's side.
		default:
			s.logger.Printf("room %s: ignoring unknown effect %q", s.room.ID, effect.EffectType())
		}
	}
	// The session resolved the effects; broadcast them so clients need the
	// rule table only for display.
	s.publishLocked(NewUseAction(member.ID, action.TileIndex, effects))
	return nil
}

func (s *RoomSession) updateBlueprintLocked(member *Member, action UpdateBlueprintAction) error {
	if action.Blueprint == nil {
		return fmt.Errorf("%w: missing blueprint", ErrUnknownBlueprint)
	}
	blueprint := action.Blueprint.Clone()
	if err := blueprint.Validate(); err != nil {
		return err
	}
	for _, rule := range blueprint.Effects {
		for _, effect := range rule.Effects {
			if transform, ok := effect.(TransformTileEffect); ok {
				if _, ok := s.room.Blueprint(transform.BlueprintID); !ok {
					return fmt.Errorf("%w: %s", ErrUnknownBlueprint, transform.BlueprintID)
				}
			}
		}
	}
	if blueprint.ID == "" {
		blueprint.ID = uuid.NewString()
	} else if _, ok := s.room.Blueprint(blueprint.ID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBlueprint, blueprint.ID)
	}
	s.room.PutBlueprint(blueprint)
	s.room.Version++
	s.publishLocked(NewUpdateBlueprintAction(member.ID, blueprint))
	return nil
}

func (s *RoomSession) updateRoomLocked(action UpdateRoomAction) error {
	title := strings.TrimSpace(action.Title)
	if title == "" {
		return ErrBlankTitle
	}
	s.room.Title = title
	s.room.Description = strings.TrimSpace(action.Description)
	s.room.Version++
	s.publishLocked(action)
	return nil
}

// checkReachLocked validates that the cell at index exists and is within the
// member's current reach.
func (s *RoomSession) checkReachLocked(member *Member, index int) error {
	grid := s.room.Grid()
	if !grid.ValidIndex(index) {
		return fmt.Errorf("%w: %d", ErrBadIndex, index)
	}
	center, ok := grid.Index(member.Position)
	if !ok {
		return fmt.Errorf("%w: (%g, %g)", ErrOutOfBounds, member.Position.X, member.Position.Y)
	}
	for _, cell := range grid.Reach(center, ReachRadius) {
		if cell == index {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrOutOfReach, index)
}

func (s *RoomSession) publishLocked(action Action) {
	for _, sub := range s.subscribers {
		s.deliverLocked(sub, action)
	}
}

func (s *RoomSession) publishExceptLocked(memberID string, action Action) {
	for id, sub := range s.subscribers {
		if id == memberID {
			continue
		}
		s.deliverLocked(sub, action)
	}
}

// deliverLocked enqueues an action for one subscriber. A member whose queue
// is full has fallen too far behind the session log; its feed is closed and
// the transport finishes the disconnect.
func (s *RoomSession) deliverLocked(sub *subscriber, action Action) {
	select {
	case sub.actions <- action:
	default:
		delete(s.subscribers, sub.member.ID)
		close(sub.actions)
		s.logger.Printf("room %s: dropping slow member %s", s.room.ID, sub.member.ID)
	}
}
