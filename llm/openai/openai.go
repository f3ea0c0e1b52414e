//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package openai implements llm.Generator on top of OpenAI-compatible
// chat completion APIs.
package openai

import (
	"context"
	"os"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/thisisarjun/meetingmuse-sub000/llm"
	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
)

const defaultModel = "gpt-4o-mini"

// options holds the configuration for the generator.
type options struct {
	apiKey      string
	baseURL     string
	modelName   string
	temperature float64
	extraOpts   []openaiopt.RequestOption
}

// Option configures the generator.
type Option func(*options)

// WithAPIKey sets the API key. Defaults to the OPENAI_API_KEY
// environment variable.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithModel sets the model name used for completions.
func WithModel(name string) Option {
	return func(o *options) { o.modelName = name }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *options) { o.temperature = t }
}

// WithClientOptions appends raw openai-go request options, for
// middleware or custom HTTP clients.
func WithClientOptions(opts ...openaiopt.RequestOption) Option {
	return func(o *options) { o.extraOpts = append(o.extraOpts, opts...) }
}

// Generator calls an OpenAI-compatible chat completion endpoint.
type Generator struct {
	client    openai.Client
	modelName string
	temp      float64
}

var _ llm.Generator = (*Generator)(nil)

// New creates a generator. The zero configuration reads OPENAI_API_KEY
// from the environment and targets the default OpenAI endpoint.
func New(opts ...Option) *Generator {
	o := options{
		apiKey:      os.Getenv("OPENAI_API_KEY"),
		modelName:   defaultModel,
		temperature: 0.3,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var clientOpts []openaiopt.RequestOption
	if o.apiKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.apiKey))
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.baseURL))
	}
	clientOpts = append(clientOpts, o.extraOpts...)

	return &Generator{
		client:    openai.NewClient(clientOpts...),
		modelName: o.modelName,
		temp:      o.temperature,
	}
}

// Generate sends the system instruction and conversation history to the
// model and returns the first choice's text.
func (g *Generator) Generate(ctx context.Context, system string, messages []model.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(g.modelName),
		Messages:    g.convertMessages(system, messages),
		Temperature: openai.Float(g.temp),
	}

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		log.Debugf("openai: empty completion for model %s", g.modelName)
		return "", llm.ErrEmptyCompletion
	}
	return completion.Choices[0].Message.Content, nil
}

func (g *Generator) convertMessages(system string, messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		result = append(result, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		})
	}
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleAssistant:
			result = append(result, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(msg.Content),
					},
				},
			})
		default:
			result = append(result, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(msg.Content),
					},
				},
			})
		}
	}
	return result
}
