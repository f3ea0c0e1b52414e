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
	"fmt"

	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// StateGraph is the fluent builder for a Graph.
//
// Example:
//
//	g, err := NewStateGraph().
//	  AddNode(classify).
//	  AddNode(greet).
//	  AddConditionalEdges(classify.Name(), router, pathMap).
//	  AddEdge(greet.Name(), End).
//	  SetEntryPoint(classify.Name()).
//	  Compile()
//
// Errors accumulate and surface at Compile, so wiring reads as one chain.
type StateGraph struct {
	graph *Graph
	errs  []error
}

// NewStateGraph creates an empty graph builder.
func NewStateGraph() *StateGraph {
	return &StateGraph{
		graph: &Graph{
			nodes:            make(map[model.NodeName]Node),
			edges:            make(map[model.NodeName]model.NodeName),
			conditionalEdges: make(map[model.NodeName]*ConditionalEdge),
			destinations:     make(map[model.NodeName][]model.NodeName),
		},
	}
}

// NodeOption configures a node registration.
type NodeOption func(*StateGraph, model.NodeName)

// WithDestinations declares the Goto targets a node may jump to. Jump-only
// nodes are otherwise invisible to reachability analysis.
func WithDestinations(targets ...model.NodeName) NodeOption {
	return func(sg *StateGraph, name model.NodeName) {
		sg.graph.destinations[name] = append(sg.graph.destinations[name], targets...)
	}
}

// AddNode registers a node under its declared name.
func (sg *StateGraph) AddNode(node Node, opts ...NodeOption) *StateGraph {
	if node == nil {
		sg.errs = append(sg.errs, fmt.Errorf("node cannot be nil"))
		return sg
	}
	name := node.Name()
	if name == "" {
		sg.errs = append(sg.errs, fmt.Errorf("node name cannot be empty for %T", node))
		return sg
	}
	if _, exists := sg.graph.nodes[name]; exists {
		sg.errs = append(sg.errs, fmt.Errorf("node %s already registered", name))
		return sg
	}
	sg.graph.nodes[name] = node
	for _, opt := range opts {
		opt(sg, name)
	}
	return sg
}

// AddEdge adds a static edge. A node has at most one static edge; use End
// as the target to finish the walk after the node.
func (sg *StateGraph) AddEdge(from, to model.NodeName) *StateGraph {
	if from == "" || to == "" {
		sg.errs = append(sg.errs, fmt.Errorf("edge endpoints cannot be empty"))
		return sg
	}
	if _, exists := sg.graph.edges[from]; exists {
		sg.errs = append(sg.errs, fmt.Errorf("node %s already has a static edge", from))
		return sg
	}
	sg.graph.edges[from] = to
	return sg
}

// AddConditionalEdges adds branch-on-state routing from a node. The path
// map must cover the router's declared branch labels exactly; gaps or
// extras are compile errors, never runtime fallbacks.
func (sg *StateGraph) AddConditionalEdges(
	from model.NodeName,
	router Router,
	pathMap map[model.NodeName]model.NodeName,
) *StateGraph {
	if _, exists := sg.graph.conditionalEdges[from]; exists {
		sg.errs = append(sg.errs, fmt.Errorf("node %s already has a conditional edge", from))
		return sg
	}
	sg.graph.conditionalEdges[from] = &ConditionalEdge{
		From:    from,
		Router:  router,
		PathMap: pathMap,
	}
	return sg
}

// SetEntryPoint sets the node the walk starts from.
func (sg *StateGraph) SetEntryPoint(name model.NodeName) *StateGraph {
	sg.graph.entryPoint = name
	return sg
}

// Compile validates the assembled graph and returns the immutable result.
// Compilation is pure: it has no side effects and recompiling an identical
// builder yields an equivalent graph.
func (sg *StateGraph) Compile() (*Graph, error) {
	if len(sg.errs) > 0 {
		return nil, fmt.Errorf("invalid graph: %w", sg.errs[0])
	}
	if err := sg.graph.validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}
	return sg.graph, nil
}

// MustCompile compiles the graph or panics. Intended for wiring done at
// process start.
func (sg *StateGraph) MustCompile() *Graph {
	g, err := sg.Compile()
	if err != nil {
		panic(err)
	}
	return g
}
