//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package server

import (
	"time"

	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// Wire message type identifiers.
const (
	MessageTypeUser      = "user_message"
	MessageTypeBot       = "bot_response"
	MessageTypeInterrupt = "interrupt"
	MessageTypeSystem    = "system"
	MessageTypeError     = "error"
)

// System message contents.
const (
	SystemConnectionEstablished = "connection_established"
	SystemProcessing            = "processing"
	SystemWaitingForInput       = "waiting_for_input"
)

// Error codes sent to clients.
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeInternal       = "internal_error"
)

// UserMessage is the incoming chat message.
type UserMessage struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// BotResponse is the outgoing assistant reply.
type BotResponse struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

// UIButton describes an action button rendered by the client.
type UIButton struct {
	ActionType string `json:"action_type"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	Variant    string `json:"variant"`
}

// InterruptMessage tells the client the conversation paused for input.
type InterruptMessage struct {
	Type          string   `json:"type"`
	InterruptType string   `json:"interrupt_type"`
	Message       string   `json:"message"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	// Buttons carries ready-made UI elements for approval interrupts.
	Buttons   []UIButton `json:"buttons,omitempty"`
	SessionID string     `json:"session_id"`
	Timestamp string     `json:"timestamp"`
}

// SystemMessage reports connection lifecycle events.
type SystemMessage struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

// ErrorMessage reports a failure the client may retry.
type ErrorMessage struct {
	Type           string `json:"type"`
	ErrorCode      string `json:"error_code"`
	Message        string `json:"message"`
	RetrySuggested bool   `json:"retry_suggested"`
	Timestamp      string `json:"timestamp"`
}

func nowStamp() string { return time.Now().UTC().Format(time.RFC3339) }

// newBotResponse wraps assistant text for the wire.
func newBotResponse(sessionID, content string) BotResponse {
	return BotResponse{
		Type:      MessageTypeBot,
		Content:   content,
		SessionID: sessionID,
		Timestamp: nowStamp(),
	}
}

// newInterruptMessage maps a pending interrupt to the wire shape,
// attaching retry/cancel buttons for approval interrupts.
func newInterruptMessage(sessionID string, interrupt *model.InterruptInfo) InterruptMessage {
	msg := InterruptMessage{
		Type:          MessageTypeInterrupt,
		InterruptType: string(interrupt.Type),
		Message:       interrupt.Message,
		Question:      interrupt.Question,
		Options:       interrupt.Options,
		SessionID:     sessionID,
		Timestamp:     nowStamp(),
	}
	if interrupt.Type == model.InterruptOperationApproval {
		for _, option := range interrupt.Options {
			switch option {
			case model.ApprovalRetry:
				msg.Buttons = append(msg.Buttons, UIButton{
					ActionType: model.ApprovalRetry,
					Label:      "Retry",
					Value:      model.ApprovalRetry,
					Variant:    "primary",
				})
			case model.ApprovalCancel:
				msg.Buttons = append(msg.Buttons, UIButton{
					ActionType: model.ApprovalCancel,
					Label:      "Cancel",
					Value:      model.ApprovalCancel,
					Variant:    "secondary",
				})
			}
		}
	}
	return msg
}

func newSystemMessage(sessionID, content string) SystemMessage {
	return SystemMessage{
		Type:      MessageTypeSystem,
		Content:   content,
		SessionID: sessionID,
		Timestamp: nowStamp(),
	}
}

func newErrorMessage(code, message string) ErrorMessage {
	return ErrorMessage{
		Type:           MessageTypeError,
		ErrorCode:      code,
		Message:        message,
		RetrySuggested: true,
		Timestamp:      nowStamp(),
	}
}
