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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
)

const (
	defaultBaseURL  = "https://www.googleapis.com/calendar/v3"
	defaultCalendar = "primary"
)

// TokenSource supplies an OAuth bearer token for the calendar API.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token, useful for tests and
// service-account setups where refresh happens elsewhere.
type StaticTokenSource string

// Token implements TokenSource.
func (s StaticTokenSource) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", ErrNotAuthenticated
	}
	return string(s), nil
}

// GoogleOption configures the Google Calendar client.
type GoogleOption func(*GoogleService)

// WithBaseURL overrides the API endpoint, used in tests.
func WithBaseURL(url string) GoogleOption {
	return func(s *GoogleService) { s.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) GoogleOption {
	return func(s *GoogleService) { s.httpClient = client }
}

// WithCalendarID targets a calendar other than "primary".
func WithCalendarID(id string) GoogleOption {
	return func(s *GoogleService) { s.calendarID = id }
}

// GoogleService books events through the Google Calendar REST API.
type GoogleService struct {
	tokens     TokenSource
	httpClient *http.Client
	baseURL    string
	calendarID string
}

var _ Service = (*GoogleService)(nil)

// NewGoogleService creates the client. Tokens come from the given source
// on every call so refreshes are picked up transparently.
func NewGoogleService(tokens TokenSource, opts ...GoogleOption) *GoogleService {
	s := &GoogleService{
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		calendarID: defaultCalendar,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// googleEvent mirrors the Calendar API event resource, limited to the
// fields this service writes and reads.
type googleEvent struct {
	ID          string              `json:"id,omitempty"`
	Summary     string              `json:"summary"`
	Description string              `json:"description,omitempty"`
	Location    string              `json:"location,omitempty"`
	HTMLLink    string              `json:"htmlLink,omitempty"`
	Start       googleEventDateTime `json:"start"`
	End         googleEventDateTime `json:"end"`
	Attendees   []googleAttendee    `json:"attendees,omitempty"`
	Reminders   *googleReminders    `json:"reminders,omitempty"`
}

type googleEventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type googleAttendee struct {
	Email string `json:"email"`
}

type googleReminders struct {
	UseDefault bool                     `json:"useDefault"`
	Overrides  []googleReminderOverride `json:"overrides,omitempty"`
}

type googleReminderOverride struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

// CreateEvent inserts the event on the configured calendar.
func (s *GoogleService) CreateEvent(ctx context.Context, event Event) (*model.CalendarEventDetails, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	attendees := make([]googleAttendee, 0, len(event.Attendees))
	for _, email := range event.Attendees {
		attendees = append(attendees, googleAttendee{Email: email})
	}

	body := googleEvent{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start:       googleEventDateTime{DateTime: event.Start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:         googleEventDateTime{DateTime: event.End.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		Attendees:   attendees,
		Reminders: &googleReminders{
			UseDefault: false,
			Overrides: []googleReminderOverride{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 10},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("calendar: marshal event: %w", err)
	}

	url := fmt.Sprintf("%s/calendars/%s/events", s.baseURL, s.calendarID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("calendar: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar: insert event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Errorf("calendar: insert event failed: status=%d body=%s", resp.StatusCode, data)
		return nil, fmt.Errorf("calendar: insert event: status %d", resp.StatusCode)
	}

	var created googleEvent
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("calendar: decode response: %w", err)
	}

	return &model.CalendarEventDetails{
		EventID:   created.ID,
		EventLink: created.HTMLLink,
		StartTime: event.Start.UTC().Format(dateTimeLayout),
		EndTime:   event.End.UTC().Format(dateTimeLayout),
	}, nil
}
