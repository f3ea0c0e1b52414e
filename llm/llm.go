//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package llm defines the language model abstraction used by the
// conversation services. Implementations live in subpackages.
package llm

import (
	"context"
	"errors"

	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// ErrEmptyCompletion is returned when the model produces no usable text.
var ErrEmptyCompletion = errors.New("llm: model returned an empty completion")

// Generator produces a completion for a system instruction and a
// conversation history. The returned string is the raw model output.
type Generator interface {
	Generate(ctx context.Context, system string, messages []model.Message) (string, error)
}
