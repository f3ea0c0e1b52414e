//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() Event {
	start := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	return Event{
		Summary:     "project sync",
		Description: "Meeting created via MeetingMuse",
		Location:    "room 4",
		Start:       start,
		End:         start.Add(30 * time.Minute),
		Attendees:   []string{"john@example.com"},
	}
}

func TestGoogleCreateEvent(t *testing.T) {
	var got googleEvent
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		got.ID = "evt-42"
		got.HTMLLink = "https://calendar.example.com/evt-42"
		w.WriteHeader(http.StatusOK)
		require.NoError(t, json.NewEncoder(w).Encode(got))
	}))
	defer srv.Close()

	svc := NewGoogleService(StaticTokenSource("tok"), WithBaseURL(srv.URL), WithCalendarID("team"))
	created, err := svc.CreateEvent(context.Background(), testEvent())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "/calendars/team/events", gotPath)
	assert.Equal(t, "project sync", got.Summary)
	assert.Equal(t, "2025-06-10T14:00:00Z", got.Start.DateTime)
	assert.Equal(t, "UTC", got.Start.TimeZone)
	require.Len(t, got.Attendees, 1)
	assert.Equal(t, "john@example.com", got.Attendees[0].Email)
	require.NotNil(t, got.Reminders)
	assert.False(t, got.Reminders.UseDefault)

	assert.Equal(t, "evt-42", created.EventID)
	assert.Equal(t, "https://calendar.example.com/evt-42", created.EventLink)
	assert.Equal(t, "2025-06-10 14:00", created.StartTime)
	assert.Equal(t, "2025-06-10 14:30", created.EndTime)
}

func TestGoogleCreateEventAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 403}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	svc := NewGoogleService(StaticTokenSource("tok"), WithBaseURL(srv.URL))
	_, err := svc.CreateEvent(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestGoogleCreateEventWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected without credentials")
	}))
	defer srv.Close()

	svc := NewGoogleService(StaticTokenSource(""), WithBaseURL(srv.URL))
	_, err := svc.CreateEvent(context.Background(), testEvent())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
