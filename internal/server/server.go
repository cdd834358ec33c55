// Package server provides the HTTP REST API for the candidate evaluation
// pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hirely/pluto/internal/db"
	"github.com/hirely/pluto/internal/llm"
	"github.com/hirely/pluto/internal/pipeline"
	"github.com/hirely/pluto/internal/scoring"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	client     llm.Client
	store      *db.Store
	scoringCfg *scoring.Config
	cache      *pipeline.BriefingCache
}

// Config holds server configuration
type Config struct {
	Port        int
	APIKey      string
	DatabaseURL string

	// LLMConfig defaults to llm.DefaultGeminiConfig when nil.
	LLMConfig *llm.Config
	// ScoringConfig defaults to scoring.DefaultConfig when nil.
	ScoringConfig *scoring.Config
}

// New creates a new server instance. The database is optional: with an empty
// DatabaseURL the server runs stateless and nothing is persisted.
func New(ctx context.Context, cfg Config) (*Server, error) {
	llmCfg := cfg.LLMConfig
	if llmCfg == nil {
		llmCfg = llm.DefaultGeminiConfig()
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		client:     client,
		scoringCfg: cfg.ScoringConfig,
		cache:      pipeline.NewBriefingCache(),
	}
	if s.scoringCfg == nil {
		s.scoringCfg = scoring.DefaultConfig()
	}

	if cfg.DatabaseURL != "" {
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.store = store
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for full pipeline runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("POST /brief", s.handleBrief)
	mux.HandleFunc("POST /pipeline/run", s.handlePipelineRun)
	mux.HandleFunc("GET /evaluations/{candidate_id}/{job_id}", s.handleGetEvaluation)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.store != nil {
		s.store.Close()
	}
	if err := s.client.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
