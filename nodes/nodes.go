//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package nodes implements the workflow steps of the scheduling
// conversation and wires them into an executable graph.
package nodes

import (
	"context"

	"github.com/thisisarjun/meetingmuse-sub000/graph"
	"github.com/thisisarjun/meetingmuse-sub000/llm"
	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
	"github.com/thisisarjun/meetingmuse-sub000/prompt"
	"github.com/thisisarjun/meetingmuse-sub000/service"
)

// ClassifyIntentNode detects what the user wants from their latest
// message and records the intent on the state.
type ClassifyIntentNode struct {
	classifier *service.IntentClassifier
}

// NewClassifyIntentNode creates the classification node.
func NewClassifyIntentNode(classifier *service.IntentClassifier) *ClassifyIntentNode {
	return &ClassifyIntentNode{classifier: classifier}
}

// Name implements graph.Node.
func (n *ClassifyIntentNode) Name() model.NodeName { return model.NodeClassifyIntent }

// Execute implements graph.Node.
func (n *ClassifyIntentNode) Execute(ctx context.Context, state *model.BotState) (graph.NodeResult, error) {
	userMessage := state.LastMessage(model.RoleHuman)
	if userMessage != "" {
		state.UserIntent = n.classifier.Classify(ctx, userMessage)
	}
	return graph.Continue(), nil
}

// replyNode covers the two nodes that only turn the latest user message
// into a single assistant reply (greeting and clarification).
type replyNode struct {
	name       model.NodeName
	gen        llm.Generator
	prompts    *prompt.Registry
	templateID string
	fallback   string
}

func (n *replyNode) Name() model.NodeName { return n.name }

func (n *replyNode) Execute(ctx context.Context, state *model.BotState) (graph.NodeResult, error) {
	userMessage := state.LastMessage(model.RoleHuman)
	if userMessage == "" {
		return graph.Continue(), nil
	}

	reply := n.fallback
	system, err := n.prompts.Render(n.templateID, map[string]string{
		"UserMessage": userMessage,
	})
	if err == nil {
		generated, genErr := n.gen.Generate(ctx, system, []model.Message{
			{Role: model.RoleHuman, Content: "user message: " + userMessage},
		})
		if genErr != nil {
			log.Errorf("%s: generate reply: %v", n.name, genErr)
		} else {
			reply = generated
		}
	} else {
		log.Errorf("%s: render prompt: %v", n.name, err)
	}

	state.AddAssistantMessage(reply)
	return graph.Continue(), nil
}

// NewGreetingNode creates the node that answers casual conversation.
func NewGreetingNode(gen llm.Generator, prompts *prompt.Registry) graph.Node {
	return &replyNode{
		name:       model.NodeGreeting,
		gen:        gen,
		prompts:    prompts,
		templateID: prompt.GreetingID,
		fallback:   "Hello! I can help you schedule meetings or set reminders. What would you like to do?",
	}
}

// NewClarifyRequestNode creates the node that asks the user to restate
// an unclear request.
func NewClarifyRequestNode(gen llm.Generator, prompts *prompt.Registry) graph.Node {
	return &replyNode{
		name:       model.NodeClarifyRequest,
		gen:        gen,
		prompts:    prompts,
		templateID: prompt.ClarifyRequestID,
		fallback:   "I'm not sure I understood that correctly. Could you tell me what you'd like me to help you with?",
	}
}
