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
	"github.com/thisisarjun/meetingmuse-sub000/graph"
	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/model"
)

// ConversationRouter owns the cross-node routing decisions. Node-local
// decisions (retry loops, internal jumps) stay in the nodes themselves.
type ConversationRouter struct {
	meetings  DetailsService
	reminders DetailsService
}

// NewConversationRouter creates the router with the two detail services
// it needs to judge completeness.
func NewConversationRouter(meetings, reminders DetailsService) *ConversationRouter {
	return &ConversationRouter{meetings: meetings, reminders: reminders}
}

// detailsFor picks the detail service matching the conversation's intent.
// Meeting rules are the default so an unset intent never panics.
func (r *ConversationRouter) detailsFor(state *model.BotState) DetailsService {
	if state.UserIntent == model.IntentReminder {
		return r.reminders
	}
	return r.meetings
}

// IntentRouter routes from the classification node to the flow that
// handles the detected intent.
func (r *ConversationRouter) IntentRouter() graph.Router {
	return routerFunc{
		route: func(state *model.BotState) model.NodeName {
			next := model.NodeGreeting
			switch state.UserIntent {
			case model.IntentGeneralChat:
				next = model.NodeGreeting
			case model.IntentScheduleMeeting, model.IntentReminder:
				next = model.NodeCollectingInfo
			case model.IntentCancelMeeting, model.IntentCheckAvailability, model.IntentUnknown:
				next = model.NodeClarifyRequest
			}
			log.Infof("routing intent %s to %s", state.UserIntent, next)
			return next
		},
		branches: []model.NodeName{
			model.NodeGreeting,
			model.NodeCollectingInfo,
			model.NodeClarifyRequest,
		},
	}
}

// CompletenessRouter routes from the collection node: complete details
// go to scheduling, incomplete details go to the missing-fields prompt.
func (r *ConversationRouter) CompletenessRouter() graph.Router {
	return routerFunc{
		route: func(state *model.BotState) model.NodeName {
			if r.detailsFor(state).IsComplete(state.CollectedFields) {
				return model.NodeScheduleMeeting
			}
			return model.NodePromptMissingDetails
		},
		branches: []model.NodeName{
			model.NodeScheduleMeeting,
			model.NodePromptMissingDetails,
		},
	}
}

// PromptRouter routes from the missing-details prompt node: when a
// question is pending the conversation pauses for the user, otherwise
// it wraps up.
func (r *ConversationRouter) PromptRouter() graph.Router {
	return routerFunc{
		route: func(state *model.BotState) model.NodeName {
			if state.PendingPrompt == "" {
				return model.NodeEnd
			}
			return model.NodeHumanMoreInfo
		},
		branches: []model.NodeName{
			model.NodeEnd,
			model.NodeHumanMoreInfo,
		},
	}
}

// routerFunc adapts a function plus its declared branch set to the
// graph.Router interface.
type routerFunc struct {
	route    func(*model.BotState) model.NodeName
	branches []model.NodeName
}

func (f routerFunc) Route(state *model.BotState) model.NodeName { return f.route(state) }

func (f routerFunc) Branches() []model.NodeName { return f.branches }
