//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package model

// NodeName identifies a step in the workflow graph.
type NodeName string

// The workflow node set.
const (
	NodeClassifyIntent       NodeName = "classify_intent"
	NodeGreeting             NodeName = "greeting"
	NodeClarifyRequest       NodeName = "clarify_request"
	NodeCollectingInfo       NodeName = "collecting_info"
	NodePromptMissingDetails NodeName = "prompt_missing_details"
	NodeHumanMoreInfo        NodeName = "human_more_info"
	NodeScheduleMeeting      NodeName = "schedule_meeting"
	NodeHumanInterruptRetry  NodeName = "human_interrupt_retry"
	NodeEnd                  NodeName = "end"
)
