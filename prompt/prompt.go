//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package prompt manages the instruction templates sent to the language
// model. Templates are registered by ID and rendered with text/template.
package prompt

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"
)

// Template is a named prompt with optional placeholders.
type Template struct {
	// ID is a unique identifier for the template.
	ID string

	// Description states what the template is used for.
	Description string

	// Content is the template text. Placeholders use text/template syntax.
	Content string

	parsed *template.Template
}

// Registry stores templates and renders them on demand.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// NewDefaultRegistry creates a registry preloaded with the builtin
// conversation templates.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range builtinTemplates() {
		if err := r.Register(t); err != nil {
			// Builtin templates are compile-time constants; a parse
			// failure here is a programming error.
			panic(fmt.Sprintf("prompt: builtin template %s: %v", t.ID, err))
		}
	}
	return r
}

// Register parses and stores a template. Registering an existing ID
// replaces the previous template.
func (r *Registry) Register(t *Template) error {
	if t == nil || t.ID == "" {
		return fmt.Errorf("prompt: template must have an ID")
	}
	parsed, err := template.New(t.ID).Option("missingkey=error").Parse(t.Content)
	if err != nil {
		return fmt.Errorf("prompt: parse template %s: %w", t.ID, err)
	}
	t.parsed = parsed
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.ID] = t
	return nil
}

// Get returns the template with the given ID.
func (r *Registry) Get(id string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("prompt: template %s not found", id)
	}
	return t, nil
}

// Render executes the template with the given variables and returns the
// final prompt string.
func (r *Registry) Render(id string, variables map[string]string) (string, error) {
	t, err := r.Get(id)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.parsed.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("prompt: render template %s: %w", id, err)
	}
	return buf.String(), nil
}
