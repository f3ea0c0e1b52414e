//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package nodes

import (
	"github.com/thisisarjun/meetingmuse-sub000/calendar"
	"github.com/thisisarjun/meetingmuse-sub000/graph"
	"github.com/thisisarjun/meetingmuse-sub000/llm"
	"github.com/thisisarjun/meetingmuse-sub000/model"
	"github.com/thisisarjun/meetingmuse-sub000/prompt"
	"github.com/thisisarjun/meetingmuse-sub000/service"
)

// GraphBuilder assembles the scheduling conversation graph from its
// nodes and routers.
type GraphBuilder struct {
	classifyIntent       graph.Node
	greeting             graph.Node
	clarifyRequest       graph.Node
	collectingInfo       graph.Node
	promptMissingDetails graph.Node
	humanMoreInfo        graph.Node
	scheduleMeeting      graph.Node
	humanInterruptRetry  graph.Node
	end                  graph.Node
	router               *service.ConversationRouter
}

// NewGraphBuilder wires the default node set from its dependencies.
func NewGraphBuilder(gen llm.Generator, prompts *prompt.Registry, cal calendar.Service) *GraphBuilder {
	meetings := service.NewMeetingDetailsService(gen, prompts)
	reminders := service.NewReminderDetailsService(gen, prompts)
	classifier := service.NewIntentClassifier(gen, prompts)

	return &GraphBuilder{
		classifyIntent:       NewClassifyIntentNode(classifier),
		greeting:             NewGreetingNode(gen, prompts),
		clarifyRequest:       NewClarifyRequestNode(gen, prompts),
		collectingInfo:       NewCollectingInfoNode(meetings, reminders),
		promptMissingDetails: NewPromptMissingDetailsNode(meetings, reminders),
		humanMoreInfo:        NewHumanMoreInfoNode(),
		scheduleMeeting:      NewScheduleMeetingNode(cal),
		humanInterruptRetry:  NewHumanInterruptRetryNode(),
		end:                  NewEndNode(),
		router:               service.NewConversationRouter(meetings, reminders),
	}
}

// Build compiles the conversation graph.
func (b *GraphBuilder) Build() (*graph.Graph, error) {
	sg := graph.NewStateGraph()

	sg.AddNode(b.classifyIntent)
	sg.AddNode(b.greeting)
	sg.AddNode(b.clarifyRequest)
	sg.AddNode(b.collectingInfo)
	sg.AddNode(b.promptMissingDetails)
	sg.AddNode(b.humanMoreInfo)
	sg.AddNode(b.scheduleMeeting, graph.WithDestinations(model.NodeHumanInterruptRetry, model.NodeEnd))
	sg.AddNode(b.humanInterruptRetry, graph.WithDestinations(model.NodeScheduleMeeting, model.NodeEnd))
	sg.AddNode(b.end)

	sg.SetEntryPoint(model.NodeClassifyIntent)

	sg.AddConditionalEdges(model.NodeClassifyIntent, b.router.IntentRouter(), map[model.NodeName]model.NodeName{
		model.NodeGreeting:       model.NodeGreeting,
		model.NodeCollectingInfo: model.NodeCollectingInfo,
		model.NodeClarifyRequest: model.NodeClarifyRequest,
	})
	sg.AddConditionalEdges(model.NodeCollectingInfo, b.router.CompletenessRouter(), map[model.NodeName]model.NodeName{
		model.NodeScheduleMeeting:      model.NodeScheduleMeeting,
		model.NodePromptMissingDetails: model.NodePromptMissingDetails,
	})
	sg.AddConditionalEdges(model.NodePromptMissingDetails, b.router.PromptRouter(), map[model.NodeName]model.NodeName{
		model.NodeEnd:           model.NodeEnd,
		model.NodeHumanMoreInfo: model.NodeHumanMoreInfo,
	})

	sg.AddEdge(model.NodeHumanMoreInfo, model.NodeCollectingInfo)
	sg.AddEdge(model.NodeGreeting, model.NodeEnd)
	sg.AddEdge(model.NodeClarifyRequest, model.NodeEnd)
	sg.AddEdge(model.NodeEnd, graph.End)

	return sg.Compile()
}
