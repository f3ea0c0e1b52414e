//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package server exposes the chat over websocket plus health endpoints.
// Each websocket connection is bound to one session and handles its
// messages in order; the shared worker pool caps how many model calls
// run concurrently across all connections.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/cors"

	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
	"github.com/thisisarjun/meetingmuse-sub000/processor"
)

const (
	defaultPoolSize     = 64
	defaultReadLimit    = 1 << 16
	shutdownGracePeriod = 10 * time.Second
)

// Option configures the Server.
type Option func(*Server)

// WithPoolSize sets the worker pool size for message handling.
func WithPoolSize(size int) Option {
	return func(s *Server) { s.poolSize = size }
}

// WithAllowedOrigins restricts CORS and websocket upgrades to the given
// origins. Defaults to allowing all.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// Server serves the chat websocket and health endpoints.
type Server struct {
	router         *mux.Router
	proc           *processor.MessageProcessor
	manager        *ConnectionManager
	pool           *ants.Pool
	upgrader       websocket.Upgrader
	httpServer     *http.Server
	poolSize       int
	allowedOrigins []string
	startedAt      time.Time
	closeOnce      sync.Once
}

// New creates the server around a ready message processor.
func New(proc *processor.MessageProcessor, opts ...Option) (*Server, error) {
	s := &Server{
		router:    mux.NewRouter(),
		proc:      proc,
		manager:   NewConnectionManager(),
		poolSize:  defaultPoolSize,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, err
	}
	s.pool = pool

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	allowedOrigins := s.allowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})
	s.router.Use(c.Handler)
	s.registerRoutes()
	return s, nil
}

// Handler returns the http.Handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/health/clients", s.handleHealthClients).Methods(http.MethodGet)
	s.router.HandleFunc("/ws/{session_id}", s.handleWebSocket).Methods(http.MethodGet)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// Start listens on addr and serves until Shutdown.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Infof("server listening on %s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains connections and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		log.Infof("server shutting down")
		s.manager.CloseAll()
		s.pool.Release()
		if s.httpServer != nil {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGracePeriod)
			defer cancel()
			err = s.httpServer.Shutdown(shutdownCtx)
		}
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"status":             "healthy",
		"timestamp":          nowStamp(),
		"uptime_seconds":     int(time.Since(s.startedAt).Seconds()),
		"active_connections": s.manager.Count(),
	})
}

func (s *Server) handleHealthClients(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"status":             "healthy",
		"timestamp":          nowStamp(),
		"active_connections": s.manager.Count(),
		"active_clients":     s.manager.Sessions(),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session_id"]
	if sessionID == "" {
		http.Error(w, "session_id required", http.StatusBadRequest)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("websocket upgrade for session %s: %v", sessionID, err)
		return
	}
	ws.SetReadLimit(defaultReadLimit)

	conn := s.manager.Register(sessionID, ws)
	defer func() {
		s.manager.Unregister(sessionID, conn)
		ws.Close()
	}()

	log.Infof("session %s connected", sessionID)
	if err := conn.writeJSON(newSystemMessage(sessionID, SystemConnectionEstablished)); err != nil {
		return
	}

	// Tell a reconnecting client about the question it still owes an
	// answer to.
	if suspended, err := s.proc.IsSuspended(r.Context(), sessionID); err == nil && suspended {
		conn.writeJSON(newSystemMessage(sessionID, SystemWaitingForInput))
	}

	s.readLoop(sessionID, conn)
	log.Infof("session %s disconnected", sessionID)
}

// readLoop consumes client messages until the connection drops. Each
// message is handled on the worker pool; per-session ordering holds
// because one connection reads sequentially and the handler for a
// message completes before the next submit.
func (s *Server) readLoop(sessionID string, conn *connection) {
	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Errorf("session %s read: %v", sessionID, err)
			}
			return
		}

		var msg UserMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Content == "" {
			conn.writeJSON(newErrorMessage(ErrorCodeInvalidMessage, "message must be JSON with a content field"))
			continue
		}

		done := make(chan struct{})
		submitErr := s.pool.Submit(func() {
			defer close(done)
			s.handleUserMessage(sessionID, conn, msg)
		})
		if submitErr != nil {
			log.Errorf("session %s: submit to pool: %v", sessionID, submitErr)
			conn.writeJSON(newErrorMessage(ErrorCodeInternal, "server busy, please retry"))
			continue
		}
		<-done
	}
}

func (s *Server) handleUserMessage(sessionID string, conn *connection, msg UserMessage) {
	conn.writeJSON(newSystemMessage(sessionID, SystemProcessing))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	response := s.proc.Submit(ctx, sessionID, msg.Content)
	s.sendResponse(sessionID, conn, response)
}

func (s *Server) sendResponse(sessionID string, conn *connection, response *model.GraphResponse) {
	if response.Interrupt != nil {
		conn.writeJSON(newInterruptMessage(sessionID, response.Interrupt))
		return
	}
	conn.writeJSON(newBotResponse(sessionID, response.Content))
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("write response: %v", err)
	}
}
