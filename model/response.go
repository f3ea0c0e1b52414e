//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package model

// GraphResponse is the caller-facing result of one submit or resume call.
// Exactly one of Content and Interrupt is populated.
type GraphResponse struct {
	Content   string         `json:"content,omitempty"`
	Interrupt *InterruptInfo `json:"interrupt,omitempty"`
}
