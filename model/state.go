//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package model defines the conversation state container and the entity
// types that flow through the workflow graph.
package model

// Role identifies the author of a conversation turn.
type Role string

// Conversation turn roles.
const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserIntent classifies what the user wants from the current turn.
type UserIntent string

// Supported user intents. CancelMeeting and CheckAvailability are part of
// the closed enumeration but have no dedicated flow yet; they route to
// clarification.
const (
	IntentGeneralChat       UserIntent = "general_chat"
	IntentScheduleMeeting   UserIntent = "schedule_meeting"
	IntentCancelMeeting     UserIntent = "cancel_meeting"
	IntentCheckAvailability UserIntent = "check_availability"
	IntentReminder          UserIntent = "reminder"
	IntentUnknown           UserIntent = "unknown"
)

// BotState is the conversation memory carried between graph nodes.
//
// Messages is append-only and ordered; turns are never reordered or
// deleted. UserIntent is set once per user turn by the intent
// classification node. CollectedFields fills in monotonically: a node may
// replace a null field but never silently discards known data.
type BotState struct {
	Messages        []Message       `json:"messages"`
	UserIntent      UserIntent      `json:"user_intent,omitempty"`
	CollectedFields MeetingFindings `json:"collected_fields"`
	// PendingPrompt is text the engine still owes the user, produced by the
	// prompt generation node and consumed by the suspension node.
	PendingPrompt string `json:"pending_prompt,omitempty"`
	// OperationName labels the side-effecting operation in flight, used
	// when generating retry prompts.
	OperationName string `json:"operation_name,omitempty"`

	// resumeValue holds the external answer injected on resume. It is
	// transient: consumed by the suspended node and never persisted.
	resumeValue *string
}

// NewBotState returns an empty state container.
func NewBotState() *BotState {
	return &BotState{}
}

// AddHumanMessage appends a human turn.
func (s *BotState) AddHumanMessage(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleHuman, Content: content})
}

// AddAssistantMessage appends an assistant turn.
func (s *BotState) AddAssistantMessage(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Content: content})
}

// LastMessage returns the content of the most recent turn with the given
// role, or "" if there is none.
func (s *BotState) LastMessage(role Role) string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == role {
			return s.Messages[i].Content
		}
	}
	return ""
}

// SetResumeValue injects the external answer provided on resume.
func (s *BotState) SetResumeValue(answer string) {
	s.resumeValue = &answer
}

// TakeResumeValue consumes the injected resume answer. The second return
// reports whether an answer was present; a node seeing false is on its
// first entry and should suspend.
func (s *BotState) TakeResumeValue() (string, bool) {
	if s.resumeValue == nil {
		return "", false
	}
	v := *s.resumeValue
	s.resumeValue = nil
	return v, true
}

// Reset clears the container back to its initial empty shape. The terminal
// node calls this to close out the current exchange while the session key
// stays intact.
func (s *BotState) Reset() {
	s.Messages = nil
	s.UserIntent = ""
	s.CollectedFields = MeetingFindings{}
	s.PendingPrompt = ""
	s.OperationName = ""
	s.resumeValue = nil
}

// Clone returns a deep copy of the state.
func (s *BotState) Clone() *BotState {
	if s == nil {
		return nil
	}
	clone := &BotState{
		UserIntent:      s.UserIntent,
		CollectedFields: s.CollectedFields.Clone(),
		PendingPrompt:   s.PendingPrompt,
		OperationName:   s.OperationName,
	}
	if s.Messages != nil {
		clone.Messages = make([]Message, len(s.Messages))
		copy(clone.Messages, s.Messages)
	}
	if s.resumeValue != nil {
		v := *s.resumeValue
		clone.resumeValue = &v
	}
	return clone
}
