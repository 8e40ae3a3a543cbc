package server

import (
	"encoding/json"
	"fmt"
)

// Action type identifiers.
const (
	TypeWelcome         = "Welcome"
	TypeUpdateRoom      = "UpdateRoom"
	TypePlaceTile       = "PlaceTile"
	TypeUse             = "Use"
	TypeUpdateBlueprint = "UpdateBlueprint"
	TypeMoveMember      = "MoveMember"
	TypeFailed          = "Failed"
)

// Action is a discriminated protocol message exchanged to mutate or observe
// room state. Every action names the acting or affected member.
type Action interface {
	ActionType() string
	ActingMember() string
}

// WelcomeAction is the join handshake, carrying the member's id and the full
// room snapshot. Sent only to the joining member.
type WelcomeAction struct {
	Type     string `json:"type"`
	MemberID string `json:"member_id"`
	Room     *Room  `json:"room"`
}

func NewWelcomeAction(memberID string, room *Room) WelcomeAction {
	return WelcomeAction{Type: TypeWelcome, MemberID: memberID, Room: room}
}

func (a WelcomeAction) ActionType() string   { return TypeWelcome }
func (a WelcomeAction) ActingMember() string { return a.MemberID }

// UpdateRoomAction patches the room's title and description.
type UpdateRoomAction struct {
	Type        string `json:"type"`
	MemberID    string `json:"member_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewUpdateRoomAction(memberID, title, description string) UpdateRoomAction {
	return UpdateRoomAction{
		Type: TypeUpdateRoom, MemberID: memberID, Title: title, Description: description,
	}
}

func (a UpdateRoomAction) ActionType() string   { return TypeUpdateRoom }
func (a UpdateRoomAction) ActingMember() string { return a.MemberID }

// PlaceTileAction places a blueprint onto the cell at TileIndex.
type PlaceTileAction struct {
	Type        string `json:"type"`
	MemberID    string `json:"member_id"`
	TileIndex   int    `json:"tile_index"`
	BlueprintID string `json:"blueprint_id"`
}

func NewPlaceTileAction(memberID string, tileIndex int, blueprintID string) PlaceTileAction {
	return PlaceTileAction{
		Type: TypePlaceTile, MemberID: memberID, TileIndex: tileIndex, BlueprintID: blueprintID,
	}
}

func (a PlaceTileAction) ActionType() string   { return TypePlaceTile }
func (a PlaceTileAction) ActingMember() string { return a.MemberID }

// UseAction uses the tile at TileIndex. The broadcast variant carries the
// effect sequence the session resolved, so clients can react without the
// blueprint rule table.
type UseAction struct {
	Type      string  `json:"type"`
	MemberID  string  `json:"member_id"`
	TileIndex int     `json:"tile_index"`
	Effects   Effects `json:"effects"`
}

func NewUseAction(memberID string, tileIndex int, effects Effects) UseAction {
	return UseAction{Type: TypeUse, MemberID: memberID, TileIndex: tileIndex, Effects: effects}
}

func (a UseAction) ActionType() string   { return TypeUse }
func (a UseAction) ActingMember() string { return a.MemberID }

// UpdateBlueprintAction inserts or replaces a blueprint. A blank blueprint id
// asks the session to mint one; the broadcast carries the minted id.
type UpdateBlueprintAction struct {
	Type      string `json:"type"`
	MemberID  string `json:"member_id"`
	Blueprint *Tile  `json:"blueprint"`
}

func NewUpdateBlueprintAction(memberID string, blueprint *Tile) UpdateBlueprintAction {
	return UpdateBlueprintAction{Type: TypeUpdateBlueprint, MemberID: memberID, Blueprint: blueprint}
}

func (a UpdateBlueprintAction) ActionType() string   { return TypeUpdateBlueprint }
func (a UpdateBlueprintAction) ActingMember() string { return a.MemberID }

// MoveMemberAction reports a member's position. A position of (-1, -1) is the
// leave signal.
type MoveMemberAction struct {
	Type     string `json:"type"`
	MemberID string `json:"member_id"`
	Position Point  `json:"position"`
}

func NewMoveMemberAction(memberID string, position Point) MoveMemberAction {
	return MoveMemberAction{Type: TypeMoveMember, MemberID: memberID, Position: position}
}

func (a MoveMemberAction) ActionType() string   { return TypeMoveMember }
func (a MoveMemberAction) ActingMember() string { return a.MemberID }

// FailedAction reports a validation failure. Sent only to the issuer; the
// connection stays open.
type FailedAction struct {
	Type     string `json:"type"`
	MemberID string `json:"member_id"`
	Message  string `json:"message"`
}

func NewFailedAction(memberID, message string) FailedAction {
	return FailedAction{Type: TypeFailed, MemberID: memberID, Message: message}
}

func (a FailedAction) ActionType() string   { return TypeFailed }
func (a FailedAction) ActingMember() string { return a.MemberID }

func decodeInto[T Action](data []byte) (Action, error) {
	var action T
	if err := json.Unmarshal(data, &action); err != nil {
		return nil, fmt.Errorf("malformed action: %w", err)
	}
	return action, nil
}

// actionDecoders dispatches wire actions by their type discriminant.
var actionDecoders = map[string]func([]byte) (Action, error){
	TypeWelcome:         decodeInto[WelcomeAction],
	TypeUpdateRoom:      decodeInto[UpdateRoomAction],
	TypePlaceTile:       decodeInto[PlaceTileAction],
	TypeUse:             decodeInto[UseAction],
	TypeUpdateBlueprint: decodeInto[UpdateBlueprintAction],
	TypeMoveMember:      decodeInto[MoveMemberAction],
	TypeFailed:          decodeInto[FailedAction],
}

// DecodeAction parses a wire message into its concrete action.
func DecodeAction(data []byte) (Action, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("malformed action: %w", err)
	}
	decode, ok := actionDecoders[head.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, head.Type)
	}
	return decode(data)
}

// EncodeAction renders an action for the wire.
func EncodeAction(action Action) ([]byte, error) {
	data, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", action.ActionType(), err)
	}
	return data, nil
}
