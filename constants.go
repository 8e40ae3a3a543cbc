package server

const (
	// TileSize is the edge length of a grid cell in px.
	TileSize = 8

	// Default room dimensions in cells.
	RoomWidth  = 16
	RoomHeight = 9

	// MoveSpeed is the walking speed in px per second: half the default room
	// height per second.
	MoveSpeed = RoomHeight * TileSize / 2.0

	// MoveDelta is the arrival threshold in px. A member closer to its move
	// target than this is considered arrived.
	MoveDelta = 1.0

	// CloseUnknownRoom is the websocket close code signalling that the
	// requested room does not exist. Terminal; clients must not reconnect.
	CloseUnknownRoom = 4004

	// subscriberBuffer is the outbound queue depth per member. A member that
	// falls this far behind the session log is dropped.
	subscriberBuffer = 64
)
