package server

import "errors"

// Validation errors are reported to the issuing member via a Failed action;
// the session and the other members are unaffected.
var (
	ErrUnknownAction    = errors.New("unknown action type")
	ErrUnknownRoom      = errors.New("unknown room")
	ErrUnknownMember    = errors.New("unknown member")
	ErrUnknownBlueprint = errors.New("unknown blueprint")
	ErrBadIndex         = errors.New("tile index out of range")
	ErrOutOfReach       = errors.New("tile out of reach")
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrDuplicateCause   = errors.New("duplicate cause")
	ErrForbidden        = errors.New("forbidden action")
	ErrBlankTitle       = errors.New("blank room title")
)
