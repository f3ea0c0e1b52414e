//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package nodes

import (
	"context"

	"github.com/thisisarjun/meetingmuse-sub000/graph"
	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// EndNode closes out the exchange. It clears the collected state so the
// next message on the same session starts a fresh conversation.
type EndNode struct{}

// NewEndNode creates the terminal node.
func NewEndNode() *EndNode { return &EndNode{} }

// Name implements graph.Node.
func (n *EndNode) Name() model.NodeName { return model.NodeEnd }

// Execute implements graph.Node.
func (n *EndNode) Execute(ctx context.Context, state *model.BotState) (graph.NodeResult, error) {
	state.Reset()
	return graph.Continue(), nil
}
