//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package graph

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// CheckpointVersion is the current version of the checkpoint format.
const CheckpointVersion = 1

// Checkpoint is the persisted snapshot of a session: the state container
// plus, when the session is suspended, the node to re-enter and the
// interrupt handed to the caller. One checkpoint exists per live session;
// saving under an existing session key overwrites it.
type Checkpoint struct {
	Version   int             `json:"v"`
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	UpdatedAt time.Time       `json:"ts"`
	State     *model.BotState `json:"state"`
	// NodeName is the suspended node to re-enter on resume. Empty when the
	// session is not suspended.
	NodeName  model.NodeName       `json:"node,omitempty"`
	Interrupt *model.InterruptInfo `json:"interrupt,omitempty"`
}

// NewCheckpoint creates a checkpoint snapshot of state for a session.
func NewCheckpoint(sessionID string, state *model.BotState) *Checkpoint {
	return &Checkpoint{
		Version:   CheckpointVersion,
		ID:        uuid.New().String(),
		SessionID: sessionID,
		UpdatedAt: time.Now().UTC(),
		State:     state,
	}
}

// IsSuspended reports whether the checkpoint was taken at an interrupt.
func (c *Checkpoint) IsSuspended() bool {
	return c != nil && c.NodeName != ""
}

// SetInterrupt marks the checkpoint as suspended at the given node.
func (c *Checkpoint) SetInterrupt(node model.NodeName, interrupt *model.InterruptInfo) {
	c.NodeName = node
	c.Interrupt = interrupt
}

// ClearInterrupt clears the suspension marker.
func (c *Checkpoint) ClearInterrupt() {
	c.NodeName = ""
	c.Interrupt = nil
}

// CheckpointSaver persists checkpoints keyed by session identifier.
// Implementations must round-trip the state container exactly; optional
// fields may not be coerced. Load returns (nil, nil) when no checkpoint
// exists for the session.
type CheckpointSaver interface {
	Load(ctx context.Context, sessionID string) (*Checkpoint, error)
	Save(ctx context.Context, checkpoint *Checkpoint) error
	Delete(ctx context.Context, sessionID string) error
	// Close releases resources held by the saver.
	Close() error
}
