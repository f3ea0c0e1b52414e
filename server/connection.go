//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package server

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/thisisarjun/meetingmuse-sub000/log"
)

// connection wraps a websocket with a write lock. Gorilla connections
// allow one concurrent writer only.
type connection struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *connection) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

// ConnectionManager tracks the active websocket per session. A new
// connection for a session replaces and closes the previous one.
type ConnectionManager struct {
	mu    sync.RWMutex
	conns map[string]*connection
}

// NewConnectionManager creates an empty manager.
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{conns: make(map[string]*connection)}
}

// Register adds the connection for a session, displacing any previous one.
func (m *ConnectionManager) Register(sessionID string, ws *websocket.Conn) *connection {
	conn := &connection{ws: ws}
	m.mu.Lock()
	previous := m.conns[sessionID]
	m.conns[sessionID] = conn
	m.mu.Unlock()
	if previous != nil {
		log.Infof("session %s reconnected, closing previous connection", sessionID)
		previous.ws.Close()
	}
	return conn
}

// Unregister removes the connection if it is still the current one for
// the session.
func (m *ConnectionManager) Unregister(sessionID string, conn *connection) {
	m.mu.Lock()
	if m.conns[sessionID] == conn {
		delete(m.conns, sessionID)
	}
	m.mu.Unlock()
}

// Count returns the number of active connections.
func (m *ConnectionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// Sessions lists the session IDs with an active connection.
func (m *ConnectionManager) Sessions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sessions := make([]string, 0, len(m.conns))
	for id := range m.conns {
		sessions = append(sessions, id)
	}
	return sessions
}

// CloseAll closes every connection, used during shutdown.
func (m *ConnectionManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, conn := range m.conns {
		conn.ws.Close()
		delete(m.conns, id)
	}
}
