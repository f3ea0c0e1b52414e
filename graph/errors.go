//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package graph

import "errors"

var (
	// ErrNotSuspended is returned when resume is called for a session that
	// has no pending interrupt. State is left untouched.
	ErrNotSuspended = errors.New("graph: session is not suspended")

	// ErrSessionSuspended is returned when a new message is submitted for a
	// session that is awaiting a resume answer.
	ErrSessionSuspended = errors.New("graph: session is suspended and awaiting an answer")

	// ErrMaxStepsExceeded is returned when the step loop runs past its
	// configured limit, which indicates a routing cycle.
	ErrMaxStepsExceeded = errors.New("graph: maximum execution steps exceeded")
)
