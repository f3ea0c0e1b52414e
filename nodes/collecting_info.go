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
	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
	"github.com/thisisarjun/meetingmuse-sub000/service"
)

const extractionFallbackReply = "I need some more information to schedule your meeting. Could you provide the missing details?"

// CollectingInfoNode extracts meeting or reminder details from the
// latest user message and folds them into the state. Fields only ever
// fill in; the user can overwrite a value but the node never drops one.
type CollectingInfoNode struct {
	meetings  service.DetailsService
	reminders service.DetailsService
}

// NewCollectingInfoNode creates the collection node.
func NewCollectingInfoNode(meetings, reminders service.DetailsService) *CollectingInfoNode {
	return &CollectingInfoNode{meetings: meetings, reminders: reminders}
}

// Name implements graph.Node.
func (n *CollectingInfoNode) Name() model.NodeName { return model.NodeCollectingInfo }

func (n *CollectingInfoNode) detailsFor(state *model.BotState) service.DetailsService {
	if state.UserIntent == model.IntentReminder {
		return n.reminders
	}
	return n.meetings
}

// Execute implements graph.Node.
func (n *CollectingInfoNode) Execute(ctx context.Context, state *model.BotState) (graph.NodeResult, error) {
	userMessage := state.LastMessage(model.RoleHuman)
	if userMessage == "" {
		return graph.Continue(), nil
	}

	svc := n.detailsFor(state)
	details := state.CollectedFields

	if svc.IsComplete(details) {
		state.AddAssistantMessage(svc.CompletionMessage(details))
		return graph.Continue(), nil
	}

	merged, reply, err := svc.Extract(ctx, details, userMessage)
	if err != nil {
		// Keep what we have and ask again rather than failing the turn.
		log.Errorf("collecting_info: extraction failed: %v", err)
		merged = details
		reply = extractionFallbackReply
	}

	state.CollectedFields = merged
	state.AddAssistantMessage(reply)
	return graph.Continue(), nil
}
