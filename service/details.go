//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/thisisarjun/meetingmuse-sub000/llm"
	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
	"github.com/thisisarjun/meetingmuse-sub000/prompt"
)

// Field names used when reporting missing details to the user.
const (
	FieldTitle        = "title"
	FieldDateTime     = "date_time"
	FieldParticipants = "participants"
	FieldDuration     = "duration"
)

// DetailsService validates collected findings and drives the extraction
// conversation for one flavor of request (meeting or reminder).
type DetailsService interface {
	// IsComplete reports whether every required field is filled.
	IsComplete(details model.MeetingFindings) bool

	// MissingRequiredFields lists the required fields that are still empty.
	MissingRequiredFields(details model.MeetingFindings) []string

	// Extract pulls new findings out of the user message, merges them into
	// the current details and returns the merged findings plus the
	// assistant's conversational reply.
	Extract(ctx context.Context, details model.MeetingFindings, userMessage string) (model.MeetingFindings, string, error)

	// MissingFieldsReply drafts a question asking for the outstanding
	// required fields.
	MissingFieldsReply(ctx context.Context, details model.MeetingFindings) (string, error)

	// CompletionMessage summarizes the fully collected details.
	CompletionMessage(details model.MeetingFindings) string
}

// extractionResponse is the JSON object the collection prompts instruct
// the model to return.
type extractionResponse struct {
	ExtractedData   model.MeetingFindings `json:"extracted_data"`
	ResponseMessage string                `json:"response_message"`
}

// extractor implements the model round-trip shared by the meeting and
// reminder services.
type extractor struct {
	gen        llm.Generator
	prompts    *prompt.Registry
	templateID string
	now        func() time.Time
}

func (e *extractor) invoke(ctx context.Context, details model.MeetingFindings, missing []string, userMessage string) (extractionResponse, error) {
	currentJSON, err := json.Marshal(details)
	if err != nil {
		return extractionResponse{}, fmt.Errorf("service: marshal details: %w", err)
	}
	missingStr := "none"
	if len(missing) > 0 {
		missingStr = strings.Join(missing, ", ")
	}
	now := e.now().UTC()
	system, err := e.prompts.Render(e.templateID, map[string]string{
		"TodaysDateTime": now.Format("2006-01-02 15:04"),
		"TodaysDayName":  now.Weekday().String(),
		"CurrentDetails": string(currentJSON),
		"MissingFields":  missingStr,
		"UserMessage":    userMessage,
	})
	if err != nil {
		return extractionResponse{}, err
	}

	raw, err := e.gen.Generate(ctx, system, nil)
	if err != nil {
		return extractionResponse{}, err
	}
	return parseExtractionResponse(raw)
}

// askMissing drafts a plain-text question for the outstanding required
// fields using the dedicated missing-fields prompt.
func (e *extractor) askMissing(ctx context.Context, details model.MeetingFindings, missing []string) (string, error) {
	currentJSON, err := json.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("service: marshal details: %w", err)
	}
	system, err := e.prompts.Render(prompt.MissingFieldsID, map[string]string{
		"CurrentDetails": string(currentJSON),
		"MissingFields":  strings.Join(missing, ", "),
	})
	if err != nil {
		return "", err
	}
	raw, err := e.gen.Generate(ctx, system, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// parseExtractionResponse unmarshals the model output, tolerating code
// fences and prose around the JSON object.
func parseExtractionResponse(raw string) (extractionResponse, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return extractionResponse{}, fmt.Errorf("service: no JSON object in model output")
	}
	var resp extractionResponse
	if err := json.Unmarshal([]byte(raw[start:end+1]), &resp); err != nil {
		return extractionResponse{}, fmt.Errorf("service: decode model output: %w", err)
	}
	return resp, nil
}

// MeetingDetailsService collects and validates meeting details. A
// meeting requires a title, a time, at least one participant and a
// duration; location stays optional.
type MeetingDetailsService struct {
	extractor
}

var _ DetailsService = (*MeetingDetailsService)(nil)

// NewMeetingDetailsService creates the meeting flavor of the service.
func NewMeetingDetailsService(gen llm.Generator, prompts *prompt.Registry) *MeetingDetailsService {
	return &MeetingDetailsService{extractor: extractor{
		gen:        gen,
		prompts:    prompts,
		templateID: prompt.CollectMeetingInfoID,
		now:        time.Now,
	}}
}

// IsComplete reports whether title, date_time, participants and
// duration are all present.
func (s *MeetingDetailsService) IsComplete(details model.MeetingFindings) bool {
	return len(s.MissingRequiredFields(details)) == 0
}

// MissingRequiredFields lists the empty required meeting fields.
func (s *MeetingDetailsService) MissingRequiredFields(details model.MeetingFindings) []string {
	var missing []string
	if details.Title == nil || *details.Title == "" {
		missing = append(missing, FieldTitle)
	}
	if details.DateTime == nil || *details.DateTime == "" {
		missing = append(missing, FieldDateTime)
	}
	if len(details.Participants) == 0 {
		missing = append(missing, FieldParticipants)
	}
	if details.Duration == nil || *details.Duration == 0 {
		missing = append(missing, FieldDuration)
	}
	return missing
}

// Extract merges details found in the user message into the current
// findings. Existing values survive; only newly provided fields change.
func (s *MeetingDetailsService) Extract(ctx context.Context, details model.MeetingFindings, userMessage string) (model.MeetingFindings, string, error) {
	resp, err := s.invoke(ctx, details, s.MissingRequiredFields(details), userMessage)
	if err != nil {
		log.Errorf("meeting details: extraction failed: %v", err)
		return details, "", err
	}
	return details.Merge(resp.ExtractedData), resp.ResponseMessage, nil
}

// MissingFieldsReply drafts a question for the outstanding fields.
func (s *MeetingDetailsService) MissingFieldsReply(ctx context.Context, details model.MeetingFindings) (string, error) {
	return s.askMissing(ctx, details, s.MissingRequiredFields(details))
}

// CompletionMessage summarizes the collected meeting details.
func (s *MeetingDetailsService) CompletionMessage(details model.MeetingFindings) string {
	title := "your meeting"
	if details.Title != nil && *details.Title != "" {
		title = "'" + *details.Title + "'"
	}
	dateTime := "an unknown time"
	if details.DateTime != nil && *details.DateTime != "" {
		dateTime = *details.DateTime
	}
	participants := "unknown participants"
	if len(details.Participants) > 0 {
		participants = strings.Join(details.Participants, ", ")
	}
	duration := "unknown duration"
	if details.Duration != nil {
		duration = fmt.Sprintf("%d minutes", *details.Duration)
	}
	msg := fmt.Sprintf("Perfect! I'll schedule your meeting %s for %s with %s for %s", title, dateTime, participants, duration)
	if details.Location != nil && *details.Location != "" {
		msg += " at " + *details.Location
	}
	return msg + "."
}

// ReminderDetailsService collects and validates reminder details. A
// reminder only requires a topic (stored in the title field) and a time.
type ReminderDetailsService struct {
	extractor
}

var _ DetailsService = (*ReminderDetailsService)(nil)

// NewReminderDetailsService creates the reminder flavor of the service.
func NewReminderDetailsService(gen llm.Generator, prompts *prompt.Registry) *ReminderDetailsService {
	return &ReminderDetailsService{extractor: extractor{
		gen:        gen,
		prompts:    prompts,
		templateID: prompt.CollectReminderID,
		now:        time.Now,
	}}
}

// IsComplete reports whether the topic and time are present.
func (s *ReminderDetailsService) IsComplete(details model.MeetingFindings) bool {
	return len(s.MissingRequiredFields(details)) == 0
}

// MissingRequiredFields lists the empty required reminder fields.
func (s *ReminderDetailsService) MissingRequiredFields(details model.MeetingFindings) []string {
	var missing []string
	if details.Title == nil || *details.Title == "" {
		missing = append(missing, FieldTitle)
	}
	if details.DateTime == nil || *details.DateTime == "" {
		missing = append(missing, FieldDateTime)
	}
	return missing
}

// Extract merges reminder details found in the user message into the
// current findings.
func (s *ReminderDetailsService) Extract(ctx context.Context, details model.MeetingFindings, userMessage string) (model.MeetingFindings, string, error) {
	resp, err := s.invoke(ctx, details, s.MissingRequiredFields(details), userMessage)
	if err != nil {
		log.Errorf("reminder details: extraction failed: %v", err)
		return details, "", err
	}
	return details.Merge(resp.ExtractedData), resp.ResponseMessage, nil
}

// MissingFieldsReply drafts a question for the outstanding fields.
func (s *ReminderDetailsService) MissingFieldsReply(ctx context.Context, details model.MeetingFindings) (string, error) {
	return s.askMissing(ctx, details, s.MissingRequiredFields(details))
}

// CompletionMessage summarizes the collected reminder details.
func (s *ReminderDetailsService) CompletionMessage(details model.MeetingFindings) string {
	topic := "your reminder"
	if details.Title != nil && *details.Title != "" {
		topic = "'" + *details.Title + "'"
	}
	dateTime := "an unknown time"
	if details.DateTime != nil && *details.DateTime != "" {
		dateTime = *details.DateTime
	}
	return fmt.Sprintf("Done! I'll remind you about %s at %s.", topic, dateTime)
}
