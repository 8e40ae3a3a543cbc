package server

// Member is a connected participant's ephemeral in-room presence. A member is
// created on join and destroyed on disconnect; its id is scoped to one
// connection's lifetime, while PlayerID references the persistent identity.
type Member struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Position Point  `json:"position"`
}

// Left reports whether the position is the leave sentinel.
func (m *Member) Left() bool { return m.Position == LeftPosition }
