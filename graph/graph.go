//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package graph implements the conversational workflow engine: a directed
// graph of named nodes that advance a per-session state container, branch
// on routing decisions, and suspend mid-execution to ask the caller a
// question before resuming at the same node.
package graph

import (
	"context"
	"fmt"

	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// End is the virtual terminal target for routing. Reaching it terminates
// the walk; it is not a registered node.
const End model.NodeName = "__end__"

// Node is a named unit of work. Given the state container it produces
// either an updated state (mutated in place) plus a routing decision, or a
// suspension request. Collaborator failures must be handled inside Execute
// and converted into a user-facing message; the engine treats a returned
// error as a fault, not conversational content.
type Node interface {
	Name() model.NodeName
	Execute(ctx context.Context, state *model.BotState) (NodeResult, error)
}

// Router is the routing function of a conditional edge. It must be total:
// Route returns one of Branches for every possible state, and the compiler
// verifies the declared branch set is fully covered by the path map.
type Router interface {
	Route(state *model.BotState) model.NodeName
	Branches() []model.NodeName
}

// Edge is a static always-next edge.
type Edge struct {
	From model.NodeName
	To   model.NodeName
}

// ConditionalEdge routes from a node through a Router. PathMap translates
// the router's branch label into the target node.
type ConditionalEdge struct {
	From    model.NodeName
	Router  Router
	PathMap map[model.NodeName]model.NodeName
}

// Graph is the compiled, immutable workflow. Build one with StateGraph;
// after Compile it is never mutated and is safe for concurrent sessions.
type Graph struct {
	nodes            map[model.NodeName]Node
	edges            map[model.NodeName]model.NodeName
	conditionalEdges map[model.NodeName]*ConditionalEdge
	// destinations are the Goto targets each node declared, used for
	// reachability analysis of jump-only nodes.
	destinations map[model.NodeName][]model.NodeName
	entryPoint   model.NodeName
}

// Node returns a registered node by name.
func (g *Graph) Node(name model.NodeName) (Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Edge returns the static successor of a node, if any.
func (g *Graph) Edge(name model.NodeName) (model.NodeName, bool) {
	to, ok := g.edges[name]
	return to, ok
}

// ConditionalEdge returns the conditional edge leaving a node, if any.
func (g *Graph) ConditionalEdge(name model.NodeName) (*ConditionalEdge, bool) {
	e, ok := g.conditionalEdges[name]
	return e, ok
}

// EntryPoint returns the entry node name.
func (g *Graph) EntryPoint() model.NodeName {
	return g.entryPoint
}

// validate checks the structural invariants: the entry point exists, every
// edge endpoint names a registered node, every conditional edge covers its
// router's declared branch set exactly, and every node is reachable from
// the entry point.
func (g *Graph) validate() error {
	if g.entryPoint == "" {
		return fmt.Errorf("graph must have an entry point")
	}
	if _, ok := g.nodes[g.entryPoint]; !ok {
		return fmt.Errorf("entry point node %s does not exist", g.entryPoint)
	}
	for from, to := range g.edges {
		if _, ok := g.nodes[from]; !ok {
			return fmt.Errorf("edge source node %s does not exist", from)
		}
		if to != End {
			if _, ok := g.nodes[to]; !ok {
				return fmt.Errorf("edge target node %s does not exist", to)
			}
		}
	}
	for from, edge := range g.conditionalEdges {
		if _, ok := g.nodes[from]; !ok {
			return fmt.Errorf("conditional edge source node %s does not exist", from)
		}
		declared := make(map[model.NodeName]bool)
		for _, branch := range edge.Router.Branches() {
			declared[branch] = true
			if _, ok := edge.PathMap[branch]; !ok {
				return fmt.Errorf("node %s: branch label %s is not mapped", from, branch)
			}
		}
		for label, to := range edge.PathMap {
			if !declared[label] {
				return fmt.Errorf("node %s: path map label %s is not a declared branch", from, label)
			}
			if to != End {
				if _, ok := g.nodes[to]; !ok {
					return fmt.Errorf("node %s: path map target %s does not exist", from, to)
				}
			}
		}
	}
	for from, dests := range g.destinations {
		for _, to := range dests {
			if to == End {
				continue
			}
			if _, ok := g.nodes[to]; !ok {
				return fmt.Errorf("node %s declares destination %s which does not exist", from, to)
			}
		}
	}
	return g.checkReachability()
}

// checkReachability walks static edges, conditional path maps and declared
// Goto destinations from the entry point; any node left unvisited is a
// compile error.
func (g *Graph) checkReachability() error {
	visited := make(map[model.NodeName]bool)
	queue := []model.NodeName{g.entryPoint}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == End || visited[current] {
			continue
		}
		visited[current] = true
		if to, ok := g.edges[current]; ok {
			queue = append(queue, to)
		}
		if edge, ok := g.conditionalEdges[current]; ok {
			for _, to := range edge.PathMap {
				queue = append(queue, to)
			}
		}
		queue = append(queue, g.destinations[current]...)
	}
	for name := range g.nodes {
		if !visited[name] {
			return fmt.Errorf("node %s is unreachable from entry point %s", name, g.entryPoint)
		}
	}
	return nil
}
