package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	server "tilerooms/server"
	"tilerooms/server/client"
	"tilerooms/server/internal/ui"
)

func main() {
	addr := flag.String("addr", "localhost:8000", "Server address")
	roomID := flag.String("room", "", "Room id to join; creates a room when empty")
	title := flag.String("title", "New room", "Title for a newly created room")
	token := flag.String("token", "", "Player token; a guest identity is minted when empty")
	flag.Parse()

	// The TUI owns the terminal, so logs go to a file instead.
	logFile, err := os.OpenFile("roomtui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	if *roomID == "" {
		id, err := createRoom(*addr, *title)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create a room: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created room %s\n", id)
		*roomID = id
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	view := client.NewRoomView(logger)
	conn := client.Dial(ctx, client.Config{
		URL:      fmt.Sprintf("ws://%s/ws/rooms/%s?token=%s", *addr, *roomID, *token),
		Logger:   logger,
		Position: view.Position,
	})
	defer conn.Close()

	go client.Pump(conn, view)
	go client.NewSimulator(view, conn).Run(ctx)

	model := ui.NewModel(conn, view)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func createRoom(addr, title string) (string, error) {
	body := strings.NewReader(fmt.Sprintf(`{"title":%q}`, title))
	resp, err := http.Post("http://"+addr+"/api/rooms", "application/json", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload)
	}
	var room server.Room
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		return "", err
	}
	return room.ID, nil
}
