//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package graph

import "github.com/thisisarjun/meetingmuse-sub000/model"

type resultKind int

const (
	kindContinue resultKind = iota
	kindGoto
	kindSuspend
)

// NodeResult is the outcome of one node execution. It is a closed variant:
// Continue advances per the node's outgoing edge, Goto jumps directly to a
// named node bypassing edge lookup, and Suspend halts the walk and hands
// an interrupt to the caller.
type NodeResult struct {
	kind      resultKind
	next      model.NodeName
	interrupt *model.InterruptInfo
}

// Continue advances to the node selected by the outgoing edge. If the node
// has no outgoing edge the walk terminates.
func Continue() NodeResult {
	return NodeResult{kind: kindContinue}
}

// Goto jumps directly to next, bypassing edge lookup. Used for
// success/failure short-circuits.
func Goto(next model.NodeName) NodeResult {
	return NodeResult{kind: kindGoto, next: next}
}

// Suspend halts execution, persists the session and returns the interrupt
// to the caller. Execution re-enters the same node on resume.
func Suspend(interrupt *model.InterruptInfo) NodeResult {
	return NodeResult{kind: kindSuspend, interrupt: interrupt}
}

// IsContinue reports whether the result advances via edge lookup.
func (r NodeResult) IsContinue() bool { return r.kind == kindContinue }

// IsGoto reports whether the result jumps directly to a node.
func (r NodeResult) IsGoto() bool { return r.kind == kindGoto }

// IsSuspend reports whether the result suspends execution.
func (r NodeResult) IsSuspend() bool { return r.kind == kindSuspend }

// Next returns the jump target of a Goto result.
func (r NodeResult) Next() model.NodeName { return r.next }

// Interrupt returns the interrupt of a Suspend result.
func (r NodeResult) Interrupt() *model.InterruptInfo { return r.interrupt }
