package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortuna/courtside/internal/batch"
	"github.com/fortuna/courtside/internal/store"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, st store.Store, jobs *batch.Service) *Server {
	handler := NewHandler(st)
	jobHandler := NewJobHandler(jobs)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Matches
	api.HandleFunc("/matches", handler.ListMatches).Methods("GET")
	api.HandleFunc("/matches/{matchID}", handler.GetMatch).Methods("GET")
	api.HandleFunc("/matches/{matchID}", handler.DeleteMatch).Methods("DELETE")
	api.HandleFunc("/matches/{matchID}/report", handler.GetMatchReport).Methods("GET")
	api.HandleFunc("/matches/{matchID}/boxscore", handler.GetMatchBoxScore).Methods("GET")
	api.HandleFunc("/matches/{matchID}/advanced", handler.GetMatchAdvanced).Methods("GET")

	// Processing jobs
	api.HandleFunc("/process", jobHandler.HandleEnqueue).Methods("POST")
	api.HandleFunc("/process/status", jobHandler.HandleStatus).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
