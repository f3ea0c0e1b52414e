//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package sqlite provides a SQLite-backed checkpoint saver for session
// state persistence across process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // cgo-free sqlite driver

	"github.com/thisisarjun/meetingmuse-sub000/graph"
)

const (
	createCheckpoints = "CREATE TABLE IF NOT EXISTS checkpoints (" +
		"session_id TEXT NOT NULL, " +
		"checkpoint_id TEXT NOT NULL, " +
		"ts INTEGER NOT NULL, " +
		"checkpoint_json BLOB NOT NULL, " +
		"PRIMARY KEY (session_id)" +
		")"

	upsertCheckpoint = "INSERT OR REPLACE INTO checkpoints (" +
		"session_id, checkpoint_id, ts, checkpoint_json) VALUES (?, ?, ?, ?)"

	selectCheckpoint = "SELECT checkpoint_json FROM checkpoints WHERE session_id = ?"

	deleteCheckpoint = "DELETE FROM checkpoints WHERE session_id = ?"
)

// Saver is a SQLite implementation of graph.CheckpointSaver. One row per
// session; saving overwrites the previous checkpoint.
type Saver struct {
	db *sql.DB
}

// NewSaver opens (or creates) the database at path and prepares the
// checkpoint table.
func NewSaver(path string) (*Saver, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	// One writer at a time keeps "database is locked" errors away.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createCheckpoints); err != nil {
		db.Close()
		return nil, fmt.Errorf("create checkpoints table: %w", err)
	}
	return &Saver{db: db}, nil
}

// NewSaverWithDB wraps an existing database handle. The caller remains
// responsible for closing the handle unless Close is called.
func NewSaverWithDB(db *sql.DB) (*Saver, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	if _, err := db.Exec(createCheckpoints); err != nil {
		return nil, fmt.Errorf("create checkpoints table: %w", err)
	}
	return &Saver{db: db}, nil
}

// Load retrieves the checkpoint for a session, or (nil, nil) if none.
func (s *Saver) Load(ctx context.Context, sessionID string) (*graph.Checkpoint, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, selectCheckpoint, sessionID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query checkpoint for session %s: %w", sessionID, err)
	}
	var checkpoint graph.Checkpoint
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("decode checkpoint for session %s: %w", sessionID, err)
	}
	return &checkpoint, nil
}

// Save stores the checkpoint, overwriting any previous one for the session.
func (s *Saver) Save(ctx context.Context, checkpoint *graph.Checkpoint) error {
	if checkpoint == nil || checkpoint.SessionID == "" {
		return errors.New("checkpoint must carry a session id")
	}
	data, err := json.Marshal(checkpoint)
	if err != nil {
		return fmt.Errorf("encode checkpoint for session %s: %w", checkpoint.SessionID, err)
	}
	_, err = s.db.ExecContext(ctx, upsertCheckpoint,
		checkpoint.SessionID, checkpoint.ID, checkpoint.UpdatedAt.UnixNano(), data)
	if err != nil {
		return fmt.Errorf("store checkpoint for session %s: %w", checkpoint.SessionID, err)
	}
	return nil
}

// Delete removes the checkpoint for a session.
func (s *Saver) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, deleteCheckpoint, sessionID); err != nil {
		return fmt.Errorf("delete checkpoint for session %s: %w", sessionID, err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Saver) Close() error {
	return s.db.Close()
}
