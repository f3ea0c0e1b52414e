//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package processor is the caller-facing surface of the workflow engine.
// It turns user messages into graph runs and graph outcomes into a single
// response: assistant text or a pending interrupt, never both.
package processor

import (
	"context"
	"errors"

	"github.com/thisisarjun/meetingmuse-sub000/graph"
	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// Fallback responses for degraded turns.
const (
	fallbackNoReply     = "I'm having trouble processing your request. Please try again."
	fallbackSubmitError = "I encountered an error processing your request. Please try again."
	fallbackResumeError = "I encountered an error while processing your input. Please try again."
	fallbackContinue    = "Thank you for the additional information. Let me continue processing your request."
	fallbackNeedInfo    = "I need additional information to continue."
)

// MessageProcessor routes session messages through the graph executor.
type MessageProcessor struct {
	executor *graph.Executor
}

// NewMessageProcessor creates a processor on top of a ready executor.
func NewMessageProcessor(executor *graph.Executor) *MessageProcessor {
	return &MessageProcessor{executor: executor}
}

// Submit processes one user message for the session. When the session is
// suspended the message is treated as the answer to the pending question
// and handed to Resume instead.
func (p *MessageProcessor) Submit(ctx context.Context, sessionID, content string) *model.GraphResponse {
	result, err := p.executor.Invoke(ctx, sessionID, content)
	if errors.Is(err, graph.ErrSessionSuspended) {
		return p.Resume(ctx, sessionID, content)
	}
	if err != nil {
		log.Errorf("processor: submit for session %s: %v", sessionID, err)
		return &model.GraphResponse{Content: fallbackSubmitError}
	}
	return p.response(result, fallbackNoReply)
}

// Resume feeds the user's answer into the suspended session.
func (p *MessageProcessor) Resume(ctx context.Context, sessionID, answer string) *model.GraphResponse {
	result, err := p.executor.Resume(ctx, sessionID, answer)
	if errors.Is(err, graph.ErrNotSuspended) {
		// Nothing pending; treat the answer as a fresh message.
		return p.Submit(ctx, sessionID, answer)
	}
	if err != nil {
		log.Errorf("processor: resume for session %s: %v", sessionID, err)
		return &model.GraphResponse{Content: fallbackResumeError}
	}
	return p.response(result, fallbackContinue)
}

// IsSuspended reports whether the session waits on an answer.
func (p *MessageProcessor) IsSuspended(ctx context.Context, sessionID string) (bool, error) {
	_, suspended, err := p.executor.Suspended(ctx, sessionID)
	return suspended, err
}

// response maps an engine result to the caller-facing shape: exactly one
// of assistant text or interrupt.
func (p *MessageProcessor) response(result *graph.Result, fallback string) *model.GraphResponse {
	if result.Status == graph.StatusSuspended {
		if result.Interrupt != nil {
			return &model.GraphResponse{Interrupt: result.Interrupt}
		}
		log.Warnf("processor: suspended result without interrupt info")
		return &model.GraphResponse{Content: fallbackNeedInfo}
	}
	if result.Reply == "" {
		return &model.GraphResponse{Content: fallback}
	}
	return &model.GraphResponse{Content: result.Reply}
}
