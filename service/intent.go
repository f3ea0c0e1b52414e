//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package service holds the conversation logic shared by the workflow
// nodes: intent classification, detail extraction and routing.
package service

import (
	"context"
	"strings"

	"github.com/thisisarjun/meetingmuse-sub000/llm"
	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
	"github.com/thisisarjun/meetingmuse-sub000/prompt"
)

// IntentClassifier maps a user utterance to a UserIntent using the
// language model. Classification never fails the conversation: any
// error degrades to IntentUnknown.
type IntentClassifier struct {
	gen     llm.Generator
	prompts *prompt.Registry
}

// NewIntentClassifier creates a classifier backed by the given generator.
func NewIntentClassifier(gen llm.Generator, prompts *prompt.Registry) *IntentClassifier {
	return &IntentClassifier{gen: gen, prompts: prompts}
}

// Classify returns the intent of the user message.
func (c *IntentClassifier) Classify(ctx context.Context, userMessage string) model.UserIntent {
	system, err := c.prompts.Render(prompt.IntentClassifierID, map[string]string{
		"UserMessage": userMessage,
	})
	if err != nil {
		log.Errorf("intent classifier: render prompt: %v", err)
		return model.IntentUnknown
	}

	raw, err := c.gen.Generate(ctx, system, []model.Message{
		{Role: model.RoleHuman, Content: "user message: " + userMessage},
	})
	if err != nil {
		log.Errorf("intent classifier: %v", err)
		return model.IntentUnknown
	}
	return parseIntent(raw)
}

// parseIntent normalizes the raw model output to a known intent.
// Anything unrecognized becomes IntentUnknown.
func parseIntent(raw string) model.UserIntent {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.Trim(normalized, "\"'.")
	switch model.UserIntent(normalized) {
	case model.IntentGeneralChat,
		model.IntentScheduleMeeting,
		model.IntentCancelMeeting,
		model.IntentCheckAvailability,
		model.IntentReminder:
		return model.UserIntent(normalized)
	default:
		return model.IntentUnknown
	}
}
