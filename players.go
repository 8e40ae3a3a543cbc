package server

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Player is the public view of a persistent player identity. The session only
// uses it to stamp player id and display name on joining members.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PrivatePlayer is the owning client's view of its identity.
type PrivatePlayer struct {
	Player
	Token    string `json:"token"`
	Tutorial bool   `json:"tutorial"`
}

// PlayerPatch carries the mutable identity fields. Id and token are immutable
// and cannot be patched.
type PlayerPatch struct {
	Name     string `json:"name"`
	Tutorial bool   `json:"tutorial"`
}

// PlayerStore is an in-memory player identity service keyed by auth token.
type PlayerStore struct {
	mu      sync.Mutex
	players map[string]*PrivatePlayer
}

func NewPlayerStore() *PlayerStore {
	return &PlayerStore{players: make(map[string]*PrivatePlayer)}
}

// Authenticate resolves a token to its player, minting a guest identity for
// unknown or blank tokens.
func (s *PlayerStore) Authenticate(token string) PrivatePlayer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != "" {
		if player, ok := s.players[token]; ok {
			return *player
		}
	}
	if token == "" {
		token = uuid.NewString()
	}
	player := &PrivatePlayer{
		Player: Player{ID: uuid.NewString(), Name: "Guest"},
		Token:  token,
	}
	s.players[token] = player
	return *player
}

// Update patches the player behind token. ok is false for unknown tokens.
func (s *PlayerStore) Update(token string, patch PlayerPatch) (PrivatePlayer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[token]
	if !ok {
		return PrivatePlayer{}, false
	}
	if name := strings.TrimSpace(patch.Name); name != "" {
		player.Name = name
	}
	player.Tutorial = patch.Tutorial
	return *player, true
}
