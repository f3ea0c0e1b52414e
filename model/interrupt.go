//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package model

// InterruptType classifies a suspension request.
type InterruptType string

// Interrupt kinds raised by the node set.
const (
	// InterruptOperationApproval asks the user to retry or cancel a failed
	// side-effecting operation.
	InterruptOperationApproval InterruptType = "operation_approval"
	// InterruptSeekMoreInfo asks the user for missing details.
	InterruptSeekMoreInfo InterruptType = "seek_more_info"
)

// Answer options for operation approval interrupts.
const (
	ApprovalRetry  = "retry"
	ApprovalCancel = "cancel"
)

// InterruptInfo is the structured question handed to the external caller
// when the graph suspends. The caller's reply is fed back verbatim as the
// resume value.
type InterruptInfo struct {
	Type     InterruptType `json:"type"`
	Message  string        `json:"message"`
	Question string        `json:"question"`
	Options  []string      `json:"options,omitempty"`
}

// NewSeekMoreInfo builds a seek_more_info interrupt carrying the question
// the engine owes the user.
func NewSeekMoreInfo(message, question string) *InterruptInfo {
	return &InterruptInfo{
		Type:     InterruptSeekMoreInfo,
		Message:  message,
		Question: question,
	}
}

// NewOperationApproval builds an operation_approval interrupt. The options
// are always exactly retry and cancel.
func NewOperationApproval(message, question string) *InterruptInfo {
	return &InterruptInfo{
		Type:     InterruptOperationApproval,
		Message:  message,
		Question: question,
		Options:  []string{ApprovalRetry, ApprovalCancel},
	}
}
