//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package redis provides a Redis-backed checkpoint saver for deployments
// where sessions must survive process restarts and be shared across
// replicas fronted by sticky routing.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thisisarjun/meetingmuse-sub000/graph"
)

const defaultKeyPrefix = "meetingmuse:checkpoint:"

// Saver is a Redis implementation of graph.CheckpointSaver. One key per
// session; saving overwrites the previous value.
type Saver struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// Option configures the saver.
type Option func(*Saver)

// WithKeyPrefix overrides the checkpoint key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Saver) {
		s.keyPrefix = prefix
	}
}

// WithTTL expires idle sessions after d. Zero means no expiry.
func WithTTL(d time.Duration) Option {
	return func(s *Saver) {
		s.ttl = d
	}
}

// NewSaver creates a saver on top of an existing Redis client.
func NewSaver(client redis.UniversalClient, opts ...Option) (*Saver, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	s := &Saver{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewSaverFromURL connects to Redis using a redis:// URL.
func NewSaverFromURL(url string, opts ...Option) (*Saver, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewSaver(redis.NewClient(redisOpts), opts...)
}

func (s *Saver) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// Load retrieves the checkpoint for a session, or (nil, nil) if none.
func (s *Saver) Load(ctx context.Context, sessionID string) (*graph.Checkpoint, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get checkpoint for session %s: %w", sessionID, err)
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
	if err := s.client.Set(ctx, s.key(checkpoint.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store checkpoint for session %s: %w", checkpoint.SessionID, err)
	}
	return nil
}

// Delete removes the checkpoint for a session.
func (s *Saver) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete checkpoint for session %s: %w", sessionID, err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *Saver) Close() error {
	return s.client.Close()
}
