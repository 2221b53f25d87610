package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/reconciliation"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards connect cross-origin
	},
}

// Server pushes processed-match results to connected dashboards. It
// satisfies the processor's Publisher interface, so wiring it into the
// pipeline is enough to stream every finished match.
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
}

// NewServer creates a new WebSocket server
func NewServer() *Server {
	return &Server{hub: NewHub()}
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.port = port

	go s.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/matches", s.handleMatches)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Printf("WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// handleMatches handles WebSocket connections for match result updates
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// PublishMatchResult broadcasts a processed match bundle to all clients.
func (s *Server) PublishMatchResult(ctx context.Context, bundle *pbp.Bundle) error {
	return s.broadcast("match_result", bundle)
}

// PublishVerification broadcasts a verification report to all clients.
func (s *Server) PublishVerification(ctx context.Context, report *reconciliation.Report) error {
	return s.broadcast("verification", report)
}

func (s *Server) broadcast(msgType string, payload interface{}) error {
	message, err := json.Marshal(map[string]interface{}{
		"type":      msgType,
		"payload":   payload,
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", msgType, err)
	}
	s.hub.Broadcast(message)
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
