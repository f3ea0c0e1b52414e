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
	"github.com/thisisarjun/meetingmuse-sub000/service"
)

// PromptMissingDetailsNode drafts the question for whatever required
// fields are still empty and parks it in PendingPrompt. The router after
// this node pauses the conversation when a prompt is pending.
type PromptMissingDetailsNode struct {
	meetings  service.DetailsService
	reminders service.DetailsService
}

// NewPromptMissingDetailsNode creates the prompt node.
func NewPromptMissingDetailsNode(meetings, reminders service.DetailsService) *PromptMissingDetailsNode {
	return &PromptMissingDetailsNode{meetings: meetings, reminders: reminders}
}

// Name implements graph.Node.
func (n *PromptMissingDetailsNode) Name() model.NodeName { return model.NodePromptMissingDetails }

func (n *PromptMissingDetailsNode) detailsFor(state *model.BotState) service.DetailsService {
	if state.UserIntent == model.IntentReminder {
		return n.reminders
	}
	return n.meetings
}

// Execute implements graph.Node.
func (n *PromptMissingDetailsNode) Execute(ctx context.Context, state *model.BotState) (graph.NodeResult, error) {
	svc := n.detailsFor(state)
	missing := svc.MissingRequiredFields(state.CollectedFields)
	if len(missing) == 0 {
		// Routing should have sent complete details to scheduling.
		log.Errorf("prompt_missing_details: called with complete details")
		return graph.Continue(), nil
	}

	question, err := svc.MissingFieldsReply(ctx, state.CollectedFields)
	if err != nil || question == "" {
		log.Errorf("prompt_missing_details: drafting question failed: %v", err)
		question = "I need some more information, could you provide all the details? I need the following information: " +
			strings.Join(missing, ", ")
	}

	state.PendingPrompt = question
	return graph.Continue(), nil
}
