//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotStateMessages(t *testing.T) {
	state := NewBotState()
	state.AddHumanMessage("hello")
	state.AddAssistantMessage("hi there")
	state.AddHumanMessage("schedule a meeting")

	assert.Equal(t, "schedule a meeting", state.LastMessage(RoleHuman))
	assert.Equal(t, "hi there", state.LastMessage(RoleAssistant))
	assert.Len(t, state.Messages, 3)
}

func TestBotStateLastMessageEmpty(t *testing.T) {
	state := NewBotState()
	assert.Equal(t, "", state.LastMessage(RoleHuman))
	assert.Equal(t, "", state.LastMessage(RoleAssistant))
}

func TestBotStateResumeValueConsumedOnce(t *testing.T) {
	state := NewBotState()

	_, ok := state.TakeResumeValue()
	assert.False(t, ok)

	state.SetResumeValue("retry")
	answer, ok := state.TakeResumeValue()
	require.True(t, ok)
	assert.Equal(t, "retry", answer)

	_, ok = state.TakeResumeValue()
	assert.False(t, ok, "resume value must be consumed by the first take")
}

func TestBotStateReset(t *testing.T) {
	state := NewBotState()
	state.AddHumanMessage("book a meeting")
	state.UserIntent = IntentScheduleMeeting
	state.CollectedFields = MeetingFindings{Title: StringPtr("standup")}
	state.PendingPrompt = "when?"
	state.OperationName = "schedule_meeting"
	state.SetResumeValue("retry")

	state.Reset()

	assert.Empty(t, state.Messages)
	assert.Equal(t, UserIntent(""), state.UserIntent)
	assert.Equal(t, MeetingFindings{}, state.CollectedFields)
	assert.Empty(t, state.PendingPrompt)
	assert.Empty(t, state.OperationName)
	_, ok := state.TakeResumeValue()
	assert.False(t, ok)
}

func TestBotStateClone(t *testing.T) {
	state := NewBotState()
	state.AddHumanMessage("hello")
	state.CollectedFields = MeetingFindings{
		Title:        StringPtr("sync"),
		Participants: []string{"a@example.com"},
	}

	clone := state.Clone()
	require.NotNil(t, clone)

	clone.AddHumanMessage("more")
	clone.CollectedFields.Participants[0] = "b@example.com"
	*clone.CollectedFields.Title = "changed"

	assert.Len(t, state.Messages, 1)
	assert.Equal(t, "a@example.com", state.CollectedFields.Participants[0])
	assert.Equal(t, "sync", *state.CollectedFields.Title)
}

func TestMeetingFindingsMergeMonotonic(t *testing.T) {
	current := MeetingFindings{
		Title:    StringPtr("standup"),
		DateTime: StringPtr("2025-01-15 10:00"),
	}
	update := MeetingFindings{
		Participants: []string{"john@example.com"},
		Duration:     IntPtr(30),
	}

	merged := current.Merge(update)

	require.NotNil(t, merged.Title)
	assert.Equal(t, "standup", *merged.Title)
	assert.Equal(t, "2025-01-15 10:00", *merged.DateTime)
	assert.Equal(t, []string{"john@example.com"}, merged.Participants)
	assert.Equal(t, 30, *merged.Duration)
}

func TestMeetingFindingsMergeNilsNeverErase(t *testing.T) {
	current := MeetingFindings{
		Title:        StringPtr("review"),
		DateTime:     StringPtr("2025-01-15 10:00"),
		Participants: []string{"a@example.com"},
		Duration:     IntPtr(60),
	}

	merged := current.Merge(MeetingFindings{})

	assert.Equal(t, current, merged, "an all-nil update must not clear any field")
}

func TestMeetingFindingsMergeOverwrites(t *testing.T) {
	current := MeetingFindings{DateTime: StringPtr("2025-01-15 10:00")}
	update := MeetingFindings{DateTime: StringPtr("2025-01-15 15:00")}

	merged := current.Merge(update)
	assert.Equal(t, "2025-01-15 15:00", *merged.DateTime)
}

func TestInterruptConstructors(t *testing.T) {
	seek := NewSeekMoreInfo("need info", "when is the meeting?")
	assert.Equal(t, InterruptSeekMoreInfo, seek.Type)
	assert.Equal(t, "when is the meeting?", seek.Question)
	assert.Empty(t, seek.Options)

	approval := NewOperationApproval("failed", "retry?")
	assert.Equal(t, InterruptOperationApproval, approval.Type)
	assert.Equal(t, []string{ApprovalRetry, ApprovalCancel}, approval.Options)
}
