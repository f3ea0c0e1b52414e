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

const (
	approvalMessage  = "Meeting scheduling failed."
	approvalQuestion = "Would you like to retry this operation?"

	retryMessage  = "User chose to retry. Attempting again..."
	cancelMessage = "I understand. I apologize for the technical issue with our calendar system. " +
		"The meeting request has been canceled. Please feel free to try again later or let me know " +
		"if there's anything else I can help you with."
)

// HumanInterruptRetryNode asks the user whether to retry a failed
// booking. Any answer other than "retry" counts as cancel.
type HumanInterruptRetryNode struct{}

// NewHumanInterruptRetryNode creates the retry decision node.
func NewHumanInterruptRetryNode() *HumanInterruptRetryNode { return &HumanInterruptRetryNode{} }

// Name implements graph.Node.
func (n *HumanInterruptRetryNode) Name() model.NodeName { return model.NodeHumanInterruptRetry }

// Execute implements graph.Node.
func (n *HumanInterruptRetryNode) Execute(ctx context.Context, state *model.BotState) (graph.NodeResult, error) {
	answer, resumed := state.TakeResumeValue()
	if !resumed {
		return graph.Suspend(model.NewOperationApproval(approvalMessage, approvalQuestion)), nil
	}

	if strings.EqualFold(strings.TrimSpace(answer), model.ApprovalRetry) {
		log.Infof("human_interrupt_retry: user chose to retry")
		state.AddAssistantMessage(retryMessage)
		return graph.Goto(model.NodeScheduleMeeting), nil
	}

	log.Infof("human_interrupt_retry: user chose to cancel")
	state.AddAssistantMessage(cancelMessage)
	return graph.Goto(model.NodeEnd), nil
}
