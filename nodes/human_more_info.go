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
	"strings"

	"github.com/thisisarjun/meetingmuse-sub000/graph"
	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
)

const moreInfoMessage = "Need more information to schedule the meeting"

// HumanMoreInfoNode pauses the conversation until the user answers the
// pending question. On first entry it suspends; when the engine re-enters
// it with a resume value, it consumes the answer and hands control back
// to the collection node.
type HumanMoreInfoNode struct{}

// NewHumanMoreInfoNode creates the pause node.
func NewHumanMoreInfoNode() *HumanMoreInfoNode { return &HumanMoreInfoNode{} }

// Name implements graph.Node.
func (n *HumanMoreInfoNode) Name() model.NodeName { return model.NodeHumanMoreInfo }

// Execute implements graph.Node.
func (n *HumanMoreInfoNode) Execute(ctx context.Context, state *model.BotState) (graph.NodeResult, error) {
	answer, resumed := state.TakeResumeValue()
	if !resumed {
		return graph.Suspend(model.NewSeekMoreInfo(moreInfoMessage, state.PendingPrompt)), nil
	}

	if strings.TrimSpace(answer) == "" {
		// Blank answer: ask the same question again.
		log.Infof("human_more_info: empty answer, asking again")
		return graph.Suspend(model.NewSeekMoreInfo(moreInfoMessage, state.PendingPrompt)), nil
	}

	state.PendingPrompt = ""
	return graph.Continue(), nil
}
