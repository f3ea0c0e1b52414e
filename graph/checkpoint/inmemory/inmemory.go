//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory checkpoint saver. It is suitable
// for tests and single-process development, not durable deployments.
package inmemory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/thisisarjun/meetingmuse-sub000/graph"
)

// Saver is a map-backed implementation of graph.CheckpointSaver.
// Checkpoints are stored serialized so the saver round-trips exactly what
// a durable store would, and callers cannot alias stored state.
type Saver struct {
	mu      sync.RWMutex
	storage map[string][]byte
}

// NewSaver creates an empty in-memory checkpoint saver.
func NewSaver() *Saver {
	return &Saver{
		storage: make(map[string][]byte),
	}
}

// Load retrieves the checkpoint for a session, or (nil, nil) if none.
func (s *Saver) Load(ctx context.Context, sessionID string) (*graph.Checkpoint, error) {
	s.mu.RLock()
	data, ok := s.storage[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var checkpoint graph.Checkpoint
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("decode checkpoint for session %s: %w", sessionID, err)
	}
	return &checkpoint, nil
}

// Save stores the checkpoint, overwriting any previous one for the
// session (last write wins, no history).
func (s *Saver) Save(ctx context.Context, checkpoint *graph.Checkpoint) error {
	if checkpoint == nil || checkpoint.SessionID == "" {
		return fmt.Errorf("checkpoint must carry a session id")
	}
	data, err := json.Marshal(checkpoint)
	if err != nil {
		return fmt.Errorf("encode checkpoint for session %s: %w", checkpoint.SessionID, err)
	}
	s.mu.Lock()
	s.storage[checkpoint.SessionID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the checkpoint for a session.
func (s *Saver) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.storage, sessionID)
	s.mu.Unlock()
	return nil
}

// Close implements graph.CheckpointSaver. It is a no-op.
func (s *Saver) Close() error {
	return nil
}
