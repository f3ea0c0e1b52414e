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
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// memorySaver is a minimal in-package saver so the engine tests do not
// depend on the checkpoint subpackages.
type memorySaver struct {
	mu    sync.Mutex
	store map[string]*Checkpoint
}

func newMemorySaver() *memorySaver {
	return &memorySaver{store: make(map[string]*Checkpoint)}
}

func (s *memorySaver) Load(ctx context.Context, sessionID string) (*Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ckpt, ok := s.store[sessionID]
	if !ok {
		return nil, nil
	}
	return ckpt, nil
}

func (s *memorySaver) Save(ctx context.Context, ckpt *Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[ckpt.SessionID] = ckpt
	return nil
}

func (s *memorySaver) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, sessionID)
	return nil
}

func (s *memorySaver) Close() error { return nil }

// echoGraph is a two-node graph: "reply" answers, "final" resets.
func echoGraph(t *testing.T) *Graph {
	t.Helper()
	reply := &stubNode{
		name: "reply",
		execute: func(ctx context.Context, state *model.BotState) (NodeResult, error) {
			state.AddAssistantMessage("echo: " + state.LastMessage(model.RoleHuman))
			return Continue(), nil
		},
	}
	final := &stubNode{
		name: "final",
		execute: func(ctx context.Context, state *model.BotState) (NodeResult, error) {
			state.Reset()
			return Continue(), nil
		},
	}
	g, err := NewStateGraph().
		AddNode(reply).
		AddNode(final).
		SetEntryPoint("reply").
		AddEdge("reply", "final").
		AddEdge("final", End).
		Compile()
	require.NoError(t, err)
	return g
}

func TestExecutorInvokeTerminates(t *testing.T) {
	saver := newMemorySaver()
	exec, err := NewExecutor(echoGraph(t), saver)
	require.NoError(t, err)

	result, err := exec.Invoke(context.Background(), "s1", "hello")
	require.NoError(t, err)

	assert.Equal(t, StatusTerminated, result.Status)
	assert.Equal(t, "echo: hello", result.Reply)
	assert.Nil(t, result.Interrupt)
}

func TestExecutorReplySurvivesTerminalReset(t *testing.T) {
	// The terminal node clears the message log, but the engine must still
	// report the assistant text produced during the walk.
	saver := newMemorySaver()
	exec, err := NewExecutor(echoGraph(t), saver)
	require.NoError(t, err)

	result, err := exec.Invoke(context.Background(), "s1", "hi")
	require.NoError(t, err)

	assert.Equal(t, "echo: hi", result.Reply)
	assert.Empty(t, result.State.Messages, "terminal node resets the state")

	// The reset state is what got persisted; the next turn starts fresh.
	ckpt, err := saver.Load(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, ckpt)
	assert.Equal(t, "s1", ckpt.SessionID)
	assert.Empty(t, ckpt.State.Messages)
	assert.False(t, ckpt.IsSuspended())
}

// suspendGraph suspends at "ask" until an answer arrives, then replies.
func suspendGraph(t *testing.T) *Graph {
	t.Helper()
	ask := &stubNode{
		name: "ask",
		execute: func(ctx context.Context, state *model.BotState) (NodeResult, error) {
			answer, resumed := state.TakeResumeValue()
			if !resumed {
				return Suspend(model.NewSeekMoreInfo("need info", "what time?")), nil
			}
			state.AddAssistantMessage("got: " + answer)
			return Continue(), nil
		},
	}
	g, err := NewStateGraph().
		AddNode(ask).
		SetEntryPoint("ask").
		AddEdge("ask", End).
		Compile()
	require.NoError(t, err)
	return g
}

func TestExecutorSuspendAndResume(t *testing.T) {
	saver := newMemorySaver()
	exec, err := NewExecutor(suspendGraph(t), saver)
	require.NoError(t, err)
	ctx := context.Background()

	result, err := exec.Invoke(ctx, "s1", "book something")
	require.NoError(t, err)
	assert.Equal(t, StatusSuspended, result.Status)
	require.NotNil(t, result.Interrupt)
	assert.Equal(t, model.InterruptSeekMoreInfo, result.Interrupt.Type)
	assert.Equal(t, "what time?", result.Interrupt.Question)

	interrupt, suspended, err := exec.Suspended(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, suspended)
	assert.Equal(t, "what time?", interrupt.Question)

	resumed, err := exec.Resume(ctx, "s1", "3pm")
	require.NoError(t, err)
	assert.Equal(t, StatusTerminated, resumed.Status)
	assert.Equal(t, "got: 3pm", resumed.Reply)

	_, suspended, err = exec.Suspended(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, suspended)
}

func TestExecutorResumeReplayMatchesOriginal(t *testing.T) {
	// Replaying the same answer against a reloaded copy of the suspended
	// checkpoint must land in the same next state as the original call.
	saver := newMemorySaver()
	exec, err := NewExecutor(suspendGraph(t), saver)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = exec.Invoke(ctx, "s1", "start")
	require.NoError(t, err)

	suspended, err := saver.Load(ctx, "s1")
	require.NoError(t, err)
	require.True(t, suspended.IsSuspended())
	snapshot := *suspended
	snapshot.State = suspended.State.Clone()

	first, err := exec.Resume(ctx, "s1", "3pm")
	require.NoError(t, err)

	replaySaver := newMemorySaver()
	require.NoError(t, replaySaver.Save(ctx, &snapshot))
	replayExec, err := NewExecutor(suspendGraph(t), replaySaver)
	require.NoError(t, err)

	second, err := replayExec.Resume(ctx, "s1", "3pm")
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Reply, second.Reply)
	assert.Equal(t, first.State.Messages, second.State.Messages)
	assert.Equal(t, first.State.CollectedFields, second.State.CollectedFields)
	assert.Equal(t, first.State.PendingPrompt, second.State.PendingPrompt)
}

func TestExecutorInvokeWhileSuspendedRejected(t *testing.T) {
	saver := newMemorySaver()
	exec, err := NewExecutor(suspendGraph(t), saver)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = exec.Invoke(ctx, "s1", "start")
	require.NoError(t, err)

	_, err = exec.Invoke(ctx, "s1", "another message")
	assert.ErrorIs(t, err, ErrSessionSuspended)
}

func TestExecutorResumeWithoutSuspensionRejected(t *testing.T) {
	saver := newMemorySaver()
	exec, err := NewExecutor(echoGraph(t), saver)
	require.NoError(t, err)

	_, err = exec.Resume(context.Background(), "fresh", "answer")
	assert.ErrorIs(t, err, ErrNotSuspended)
}

func TestExecutorResumeAppendsHumanTurn(t *testing.T) {
	saver := newMemorySaver()
	exec, err := NewExecutor(suspendGraph(t), saver)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = exec.Invoke(ctx, "s1", "start")
	require.NoError(t, err)

	result, err := exec.Resume(ctx, "s1", "3pm")
	require.NoError(t, err)

	var humanTurns []string
	for _, msg := range result.State.Messages {
		if msg.Role == model.RoleHuman {
			humanTurns = append(humanTurns, msg.Content)
		}
	}
	assert.Equal(t, []string{"start", "3pm"}, humanTurns)
}

func TestExecutorGoto(t *testing.T) {
	jumper := &stubNode{
		name: "jumper",
		execute: func(ctx context.Context, state *model.BotState) (NodeResult, error) {
			return Goto("target"), nil
		},
	}
	target := &stubNode{
		name: "target",
		execute: func(ctx context.Context, state *model.BotState) (NodeResult, error) {
			state.AddAssistantMessage("jumped")
			return Continue(), nil
		},
	}
	g, err := NewStateGraph().
		AddNode(jumper, WithDestinations("target")).
		AddNode(target).
		SetEntryPoint("jumper").
		AddEdge("target", End).
		Compile()
	require.NoError(t, err)

	exec, err := NewExecutor(g, newMemorySaver())
	require.NoError(t, err)

	result, err := exec.Invoke(context.Background(), "s1", "go")
	require.NoError(t, err)
	assert.Equal(t, "jumped", result.Reply)
}

func TestExecutorMaxStepsGuard(t *testing.T) {
	a := &stubNode{name: "a"}
	b := &stubNode{name: "b"}
	g, err := NewStateGraph().
		AddNode(a).
		AddNode(b).
		SetEntryPoint("a").
		AddEdge("a", "b").
		AddEdge("b", "a").
		Compile()
	require.NoError(t, err)

	exec, err := NewExecutor(g, newMemorySaver(), WithMaxSteps(5))
	require.NoError(t, err)

	_, err = exec.Invoke(context.Background(), "s1", "loop")
	assert.ErrorIs(t, err, ErrMaxStepsExceeded)
}

func TestExecutorNodeErrorPropagates(t *testing.T) {
	boom := errors.New("collaborator down")
	failing := &stubNode{
		name: "failing",
		execute: func(ctx context.Context, state *model.BotState) (NodeResult, error) {
			return NodeResult{}, boom
		},
	}
	g, err := NewStateGraph().
		AddNode(failing).
		SetEntryPoint("failing").
		AddEdge("failing", End).
		Compile()
	require.NoError(t, err)

	exec, err := NewExecutor(g, newMemorySaver())
	require.NoError(t, err)

	_, err = exec.Invoke(context.Background(), "s1", "hi")
	assert.ErrorIs(t, err, boom)
}

func TestExecutorInterceptorWrapsEveryNode(t *testing.T) {
	var seen []model.NodeName
	interceptor := func(ctx context.Context, node Node, state *model.BotState, next Handler) (NodeResult, error) {
		seen = append(seen, node.Name())
		return next(ctx)
	}

	exec, err := NewExecutor(echoGraph(t), newMemorySaver(), WithInterceptor(interceptor))
	require.NoError(t, err)

	_, err = exec.Invoke(context.Background(), "s1", "hi")
	require.NoError(t, err)
	assert.Equal(t, []model.NodeName{"reply", "final"}, seen)
}

func TestExecutorCanceledContext(t *testing.T) {
	exec, err := NewExecutor(echoGraph(t), newMemorySaver())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = exec.Invoke(ctx, "s1", "hi")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecutorSessionsAreIndependent(t *testing.T) {
	saver := newMemorySaver()
	exec, err := NewExecutor(suspendGraph(t), saver)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = exec.Invoke(ctx, "alice", "start")
	require.NoError(t, err)

	// A second session is unaffected by alice's suspension.
	result, err := exec.Invoke(ctx, "bob", "start")
	require.NoError(t, err)
	assert.Equal(t, StatusSuspended, result.Status)

	resumed, err := exec.Resume(ctx, "alice", "10am")
	require.NoError(t, err)
	assert.Equal(t, "got: 10am", resumed.Reply)

	_, suspended, err := exec.Suspended(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, suspended)
}

func TestNewExecutorValidatesArguments(t *testing.T) {
	_, err := NewExecutor(nil, newMemorySaver())
	assert.Error(t, err)

	_, err = NewExecutor(echoGraph(t), nil)
	assert.Error(t, err)
}
