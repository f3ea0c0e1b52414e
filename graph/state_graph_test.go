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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// stubNode is a scripted node for engine tests.
type stubNode struct {
	name    model.NodeName
	execute func(ctx context.Context, state *model.BotState) (NodeResult, error)
}

func (n *stubNode) Name() model.NodeName { return n.name }

func (n *stubNode) Execute(ctx context.Context, state *model.BotState) (NodeResult, error) {
	if n.execute == nil {
		return Continue(), nil
	}
	return n.execute(ctx, state)
}

func newStubNode(name model.NodeName) *stubNode {
	return &stubNode{name: name}
}

// stubRouter routes to a fixed set of declared branches.
type stubRouter struct {
	route    func(*model.BotState) model.NodeName
	branches []model.NodeName
}

func (r stubRouter) Route(state *model.BotState) model.NodeName { return r.route(state) }

func (r stubRouter) Branches() []model.NodeName { return r.branches }

func TestCompileLinearGraph(t *testing.T) {
	g, err := NewStateGraph().
		AddNode(newStubNode("a")).
		AddNode(newStubNode("b")).
		SetEntryPoint("a").
		AddEdge("a", "b").
		AddEdge("b", End).
		Compile()

	require.NoError(t, err)
	assert.Equal(t, model.NodeName("a"), g.EntryPoint())

	_, ok := g.Node("a")
	assert.True(t, ok)
	_, ok = g.Node("missing")
	assert.False(t, ok)
}

func TestCompileRequiresEntryPoint(t *testing.T) {
	_, err := NewStateGraph().
		AddNode(newStubNode("a")).
		AddEdge("a", End).
		Compile()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry point")
}

func TestCompileRejectsUnknownEntryPoint(t *testing.T) {
	_, err := NewStateGraph().
		AddNode(newStubNode("a")).
		SetEntryPoint("ghost").
		AddEdge("a", End).
		Compile()

	require.Error(t, err)
}

func TestCompileRejectsUnknownEdgeTarget(t *testing.T) {
	_, err := NewStateGraph().
		AddNode(newStubNode("a")).
		SetEntryPoint("a").
		AddEdge("a", "ghost").
		Compile()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestCompileRejectsUnknownConditionalTarget(t *testing.T) {
	router := stubRouter{
		route:    func(*model.BotState) model.NodeName { return "b" },
		branches: []model.NodeName{"b"},
	}
	_, err := NewStateGraph().
		AddNode(newStubNode("a")).
		SetEntryPoint("a").
		AddConditionalEdges("a", router, map[model.NodeName]model.NodeName{
			"b": "ghost",
		}).
		Compile()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestCompileRejectsUncoveredBranch(t *testing.T) {
	// Router declares branch "c" but the path map only covers "b".
	router := stubRouter{
		route:    func(*model.BotState) model.NodeName { return "b" },
		branches: []model.NodeName{"b", "c"},
	}
	_, err := NewStateGraph().
		AddNode(newStubNode("a")).
		AddNode(newStubNode("b")).
		SetEntryPoint("a").
		AddConditionalEdges("a", router, map[model.NodeName]model.NodeName{
			"b": "b",
		}).
		AddEdge("b", End).
		Compile()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "c")
}

func TestCompileRejectsUndeclaredPathMapLabel(t *testing.T) {
	// Path map covers a label the router never produces.
	router := stubRouter{
		route:    func(*model.BotState) model.NodeName { return "b" },
		branches: []model.NodeName{"b"},
	}
	_, err := NewStateGraph().
		AddNode(newStubNode("a")).
		AddNode(newStubNode("b")).
		AddNode(newStubNode("c")).
		SetEntryPoint("a").
		AddConditionalEdges("a", router, map[model.NodeName]model.NodeName{
			"b": "b",
			"c": "c",
		}).
		AddEdge("b", End).
		AddEdge("c", End).
		Compile()

	require.Error(t, err)
}

func TestCompileRejectsUnreachableNode(t *testing.T) {
	_, err := NewStateGraph().
		AddNode(newStubNode("a")).
		AddNode(newStubNode("island")).
		SetEntryPoint("a").
		AddEdge("a", End).
		AddEdge("island", End).
		Compile()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "island")
}

func TestCompileDestinationsMakeNodeReachable(t *testing.T) {
	// "jump" is only reached by a Goto declared via WithDestinations.
	jumper := &stubNode{
		name: "a",
		execute: func(ctx context.Context, state *model.BotState) (NodeResult, error) {
			return Goto("jump"), nil
		},
	}
	_, err := NewStateGraph().
		AddNode(jumper, WithDestinations("jump")).
		AddNode(newStubNode("jump")).
		SetEntryPoint("a").
		AddEdge("jump", End).
		Compile()

	require.NoError(t, err)
}

func TestCompileRejectsUnknownDestination(t *testing.T) {
	_, err := NewStateGraph().
		AddNode(newStubNode("a"), WithDestinations("ghost")).
		SetEntryPoint("a").
		AddEdge("a", End).
		Compile()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestCompileRejectsNilNode(t *testing.T) {
	_, err := NewStateGraph().
		AddNode(nil).
		Compile()

	require.Error(t, err)
}

func TestMustCompilePanicsOnInvalidGraph(t *testing.T) {
	assert.Panics(t, func() {
		NewStateGraph().MustCompile()
	})
}
