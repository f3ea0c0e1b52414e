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
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
	"github.com/thisisarjun/meetingmuse-sub000/telemetry/trace"
)

// Status is the terminal condition of one engine call.
type Status string

// Engine call outcomes. There is no exported Running status: the step loop
// only returns once the walk has suspended or terminated.
const (
	StatusSuspended  Status = "suspended"
	StatusTerminated Status = "terminated"
)

// Result is the outcome of one Invoke or Resume call. Reply carries the
// latest assistant-facing content observed during the walk; Interrupt is
// set when the session suspended.
type Result struct {
	Status    Status
	Reply     string
	Interrupt *model.InterruptInfo
	State     *model.BotState
}

// Handler advances a node invocation inside an interceptor chain.
type Handler func(ctx context.Context) (NodeResult, error)

// Interceptor wraps every node invocation. Cross-cutting concerns hook in
// here explicitly instead of being attached per node.
type Interceptor func(ctx context.Context, node Node, state *model.BotState, next Handler) (NodeResult, error)

// Executor runs a compiled graph for one session at a time. Sessions are
// independent; a single Executor may serve many sessions concurrently as
// long as calls for the same session stay sequential.
type Executor struct {
	graph        *Graph
	saver        CheckpointSaver
	maxSteps     int
	interceptors []Interceptor
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithMaxSteps sets the step limit guarding against routing cycles.
func WithMaxSteps(maxSteps int) ExecutorOption {
	return func(e *Executor) {
		e.maxSteps = maxSteps
	}
}

// WithInterceptor appends an interceptor around every node invocation.
func WithInterceptor(i Interceptor) ExecutorOption {
	return func(e *Executor) {
		e.interceptors = append(e.interceptors, i)
	}
}

// NewExecutor creates an executor for a compiled graph backed by the given
// checkpoint saver.
func NewExecutor(g *Graph, saver CheckpointSaver, opts ...ExecutorOption) (*Executor, error) {
	if g == nil {
		return nil, fmt.Errorf("graph is nil")
	}
	if err := g.validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}
	if saver == nil {
		return nil, fmt.Errorf("checkpoint saver is nil")
	}
	e := &Executor{
		graph:    g,
		saver:    saver,
		maxSteps: 50,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Suspended reports whether the session is awaiting a resume answer, and
// if so returns the pending interrupt.
func (e *Executor) Suspended(ctx context.Context, sessionID string) (*model.InterruptInfo, bool, error) {
	checkpoint, err := e.saver.Load(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("load checkpoint for session %s: %w", sessionID, err)
	}
	if !checkpoint.IsSuspended() {
		return nil, false, nil
	}
	return checkpoint.Interrupt, true, nil
}

// Invoke processes one user message for the session: it loads or creates
// the state container, appends the message as a human turn and walks the
// graph from the entry node until suspension or termination. Submitting to
// a suspended session is rejected with ErrSessionSuspended; the answer
// belongs in Resume.
func (e *Executor) Invoke(ctx context.Context, sessionID, userText string) (*Result, error) {
	ctx, span := trace.Tracer.Start(ctx, "execute_graph")
	defer span.End()

	checkpoint, err := e.saver.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint for session %s: %w", sessionID, err)
	}
	if checkpoint.IsSuspended() {
		return nil, ErrSessionSuspended
	}

	state := model.NewBotState()
	if checkpoint != nil {
		state = checkpoint.State
	}
	state.AddHumanMessage(userText)
	return e.run(ctx, sessionID, state, e.graph.EntryPoint())
}

// Resume feeds an external answer back into a suspended session. The
// answer is appended as the most recent human turn, injected as the resume
// value, and the suspended node is re-invoked; the walk continues from
// there. Resuming a session without a pending interrupt returns
// ErrNotSuspended with state untouched.
func (e *Executor) Resume(ctx context.Context, sessionID, answer string) (*Result, error) {
	ctx, span := trace.Tracer.Start(ctx, "resume_graph")
	defer span.End()

	checkpoint, err := e.saver.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint for session %s: %w", sessionID, err)
	}
	if !checkpoint.IsSuspended() {
		return nil, ErrNotSuspended
	}

	state := checkpoint.State
	state.AddHumanMessage(answer)
	state.SetResumeValue(answer)
	return e.run(ctx, sessionID, state, checkpoint.NodeName)
}

// run is the step loop: invoke the current node, apply its result, pick
// the next node, and stop on suspension or on reaching End.
func (e *Executor) run(ctx context.Context, sessionID string, state *model.BotState, current model.NodeName) (*Result, error) {
	var lastReply string
	for step := 0; ; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if step >= e.maxSteps {
			return nil, fmt.Errorf("%w (%d)", ErrMaxStepsExceeded, e.maxSteps)
		}

		node, ok := e.graph.Node(current)
		if !ok {
			return nil, fmt.Errorf("node %s not found", current)
		}

		result, err := e.invokeNode(ctx, sessionID, node, state)
		if err != nil {
			return nil, fmt.Errorf("executing node %s: %w", current, err)
		}
		if reply := state.LastMessage(model.RoleAssistant); reply != "" {
			lastReply = reply
		}

		if result.IsSuspend() {
			checkpoint := NewCheckpoint(sessionID, state)
			checkpoint.SetInterrupt(node.Name(), result.Interrupt())
			if err := e.saver.Save(ctx, checkpoint); err != nil {
				return nil, fmt.Errorf("save checkpoint for session %s: %w", sessionID, err)
			}
			return &Result{Status: StatusSuspended, Interrupt: result.Interrupt(), State: state}, nil
		}

		var next model.NodeName
		if result.IsGoto() {
			next = result.Next()
		} else {
			next, err = e.selectNextNode(current, state)
			if err != nil {
				return nil, err
			}
		}

		if next == End {
			if err := e.saver.Save(ctx, NewCheckpoint(sessionID, state)); err != nil {
				return nil, fmt.Errorf("save checkpoint for session %s: %w", sessionID, err)
			}
			return &Result{Status: StatusTerminated, Reply: lastReply, State: state}, nil
		}
		current = next
	}
}

// invokeNode runs one node through the interceptor chain, with a span and
// an entry log line around the call.
func (e *Executor) invokeNode(ctx context.Context, sessionID string, node Node, state *model.BotState) (NodeResult, error) {
	ctx, span := trace.Tracer.Start(ctx, fmt.Sprintf("execute_node %s", node.Name()))
	defer span.End()
	span.SetAttributes(
		attribute.String("meetingmuse.node_name", string(node.Name())),
		attribute.String("meetingmuse.session_id", sessionID),
	)
	log.Debugf("session %s: executing node %s", sessionID, node.Name())

	handler := func(ctx context.Context) (NodeResult, error) {
		return node.Execute(ctx, state)
	}
	for i := len(e.interceptors) - 1; i >= 0; i-- {
		interceptor := e.interceptors[i]
		inner := handler
		handler = func(ctx context.Context) (NodeResult, error) {
			return interceptor(ctx, node, state, inner)
		}
	}

	result, err := handler(ctx)
	if err != nil {
		span.SetAttributes(attribute.String("meetingmuse.error", err.Error()))
	}
	return result, err
}

// selectNextNode picks the successor via the conditional edge if present,
// else the static edge, else End. An unmapped branch label is an engine
// fault: it must have been rejected at compile time.
func (e *Executor) selectNextNode(current model.NodeName, state *model.BotState) (model.NodeName, error) {
	if edge, ok := e.graph.ConditionalEdge(current); ok {
		label := edge.Router.Route(state)
		next, ok := edge.PathMap[label]
		if !ok {
			return "", fmt.Errorf("node %s: branch label %s not found in path map", current, label)
		}
		return next, nil
	}
	if next, ok := e.graph.Edge(current); ok {
		return next, nil
	}
	return End, nil
}
