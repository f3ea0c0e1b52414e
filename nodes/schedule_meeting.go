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
	"fmt"
	"strings"
	"time"

	"github.com/thisisarjun/meetingmuse-sub000/calendar"
	"github.com/thisisarjun/meetingmuse-sub000/graph"
	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// Operation names recorded on the state while a booking is in flight.
const (
	OperationScheduleMeeting = "schedule_meeting"
	OperationSetReminder     = "set_reminder"
)

// reminderDurationMinutes is the block booked for a reminder entry.
const reminderDurationMinutes = 15

// ScheduleMeetingNode performs the calendar booking. Success leads to
// the terminal node; failure hands off to the retry decision node.
type ScheduleMeetingNode struct {
	cal calendar.Service
}

// NewScheduleMeetingNode creates the booking node.
func NewScheduleMeetingNode(cal calendar.Service) *ScheduleMeetingNode {
	return &ScheduleMeetingNode{cal: cal}
}

// Name implements graph.Node.
func (n *ScheduleMeetingNode) Name() model.NodeName { return model.NodeScheduleMeeting }

// Execute implements graph.Node.
func (n *ScheduleMeetingNode) Execute(ctx context.Context, state *model.BotState) (graph.NodeResult, error) {
	switch state.UserIntent {
	case model.IntentScheduleMeeting:
		state.OperationName = OperationScheduleMeeting
	case model.IntentReminder:
		state.OperationName = OperationSetReminder
	default:
		log.Errorf("schedule_meeting: no scheduling action for intent %s", state.UserIntent)
		state.AddAssistantMessage("No scheduling action needed for this intent.")
		return graph.Goto(model.NodeEnd), nil
	}

	event, err := calendar.EventFromFindings(state.CollectedFields)
	if err != nil {
		log.Errorf("schedule_meeting: %v", err)
		state.AddAssistantMessage(fmt.Sprintf("❌ Failed to schedule meeting: %v", err))
		return graph.Goto(model.NodeHumanInterruptRetry), nil
	}
	if state.OperationName == OperationSetReminder {
		event.Summary = "Reminder: " + event.Summary
		event.Description = "Reminder created via MeetingMuse"
		event.End = event.Start.Add(reminderDurationMinutes * time.Minute)
	}

	log.Infof("schedule_meeting: creating calendar event %q", event.Summary)
	created, err := n.cal.CreateEvent(ctx, event)
	if err != nil {
		log.Errorf("schedule_meeting: create event: %v", err)
		state.AddAssistantMessage(fmt.Sprintf("❌ Failed to schedule meeting: %v", err))
		return graph.Goto(model.NodeHumanInterruptRetry), nil
	}

	state.AddAssistantMessage(n.successMessage(state, created))
	return graph.Goto(model.NodeEnd), nil
}

func (n *ScheduleMeetingNode) successMessage(state *model.BotState, created *model.CalendarEventDetails) string {
	title := "Meeting"
	if state.CollectedFields.Title != nil && *state.CollectedFields.Title != "" {
		title = *state.CollectedFields.Title
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Meeting scheduled successfully! \n")
	fmt.Fprintf(&b, "Event ID: %s \n", created.EventID)
	fmt.Fprintf(&b, "Title: %s \n", title)
	fmt.Fprintf(&b, "Time: %s - %s \n", created.StartTime, created.EndTime)
	if created.EventLink != "" {
		fmt.Fprintf(&b, "Calendar Link: %s \n", created.EventLink)
	}
	if len(state.CollectedFields.Participants) > 0 {
		fmt.Fprintf(&b, "Participants: %s \n", strings.Join(state.CollectedFields.Participants, ", "))
	}
	return b.String()
}
