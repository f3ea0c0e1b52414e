//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package model

// MeetingFindings is the partially filled record of meeting details
// extracted from the conversation. Every field is independently nullable.
type MeetingFindings struct {
	Title        *string  `json:"title,omitempty"`
	DateTime     *string  `json:"date_time,omitempty"`
	Participants []string `json:"participants,omitempty"`
	Duration     *int     `json:"duration,omitempty"`
	Location     *string  `json:"location,omitempty"`
}

// Merge folds update into f, keeping the existing value wherever the
// update is null. The merge is monotonic: known data is only replaced by
// non-null values, never dropped.
func (f MeetingFindings) Merge(update MeetingFindings) MeetingFindings {
	out := f.Clone()
	if update.Title != nil {
		out.Title = update.Title
	}
	if update.DateTime != nil {
		out.DateTime = update.DateTime
	}
	if len(update.Participants) > 0 {
		out.Participants = append([]string(nil), update.Participants...)
	}
	if update.Duration != nil {
		out.Duration = update.Duration
	}
	if update.Location != nil {
		out.Location = update.Location
	}
	return out
}

// Clone returns a deep copy of the findings.
func (f MeetingFindings) Clone() MeetingFindings {
	out := MeetingFindings{}
	if f.Title != nil {
		v := *f.Title
		out.Title = &v
	}
	if f.DateTime != nil {
		v := *f.DateTime
		out.DateTime = &v
	}
	if len(f.Participants) > 0 {
		out.Participants = append([]string(nil), f.Participants...)
	}
	if f.Duration != nil {
		v := *f.Duration
		out.Duration = &v
	}
	if f.Location != nil {
		v := *f.Location
		out.Location = &v
	}
	return out
}

// IsEmpty reports whether no field has been collected yet.
func (f MeetingFindings) IsEmpty() bool {
	return f.Title == nil && f.DateTime == nil && len(f.Participants) == 0 &&
		f.Duration == nil && f.Location == nil
}

// CalendarEventDetails describes a successfully created calendar event.
type CalendarEventDetails struct {
	EventID   string `json:"event_id"`
	EventLink string `json:"event_link,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// StringPtr returns a pointer to s. Helper for building findings literals.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }
