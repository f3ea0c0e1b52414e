//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package calendar books events on the user's calendar. The Service
// interface is what the workflow nodes depend on; the Google Calendar
// implementation lives in google.go.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// ErrNotAuthenticated is returned when no usable credentials exist for
// the session.
var ErrNotAuthenticated = errors.New("calendar: not authenticated")

// Event is a provider-independent description of a calendar entry.
type Event struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	// Attendees holds participant email addresses.
	Attendees []string
}

// Service books events. Implementations must be safe for concurrent use.
type Service interface {
	CreateEvent(ctx context.Context, event Event) (*model.CalendarEventDetails, error)
}

// dateTimeLayout is the wire format the collection flow produces.
const dateTimeLayout = "2006-01-02 15:04"

// defaultDurationMinutes applies when findings carry no duration.
const defaultDurationMinutes = 60

// EventFromFindings converts collected findings into an event. The
// date_time field must be present and in "YYYY-MM-DD HH:MM" form.
func EventFromFindings(details model.MeetingFindings) (Event, error) {
	if details.DateTime == nil || *details.DateTime == "" {
		return Event{}, fmt.Errorf("calendar: findings carry no date_time")
	}
	start, err := parseDateTime(*details.DateTime)
	if err != nil {
		return Event{}, err
	}

	minutes := defaultDurationMinutes
	if details.Duration != nil && *details.Duration > 0 {
		minutes = *details.Duration
	}

	event := Event{
		Summary:     "Meeting",
		Description: "Meeting created via MeetingMuse",
		Start:       start,
		End:         start.Add(time.Duration(minutes) * time.Minute),
		Attendees:   details.Participants,
	}
	if details.Title != nil && *details.Title != "" {
		event.Summary = *details.Title
	}
	if details.Location != nil {
		event.Location = *details.Location
	}
	return event, nil
}

// parseDateTime accepts the canonical layout plus the common variants
// models occasionally produce.
func parseDateTime(value string) (time.Time, error) {
	layouts := []string{
		dateTimeLayout,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("calendar: unparseable date_time %q", value)
}
