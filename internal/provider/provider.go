// Package provider connects the loop to an external language model. The
// loop depends only on the ModelClient interface; the Anthropic Messages
// API implementation lives alongside it.
package provider

import (
	"context"

	"github.com/campusworks/advisor-agent/internal/conversation"
	"github.com/campusworks/advisor-agent/tools"
)

// Request is one model invocation: the full conversation so far plus the
// advertised tool schemas. Turns are a snapshot; implementations must not
// mutate them.
type Request struct {
	System string
	Turns  []conversation.Turn
	Tools  []tools.ToolDefinition

	// DisallowParallelToolUse asks the model to emit at most one tool
	// call per turn, keeping dispatch strictly sequential.
	DisallowParallelToolUse bool
}

// Output is the model's reply as an ordered sequence of assistant text
// and/or tool-call turns, preserving emission order.
type Output struct {
	Items []conversation.Turn
}

// ToolCalls returns the tool-call items of the output in emission order.
func (o Output) ToolCalls() []conversation.Turn {
	var calls []conversation.Turn
	for _, item := range o.Items {
		if item.Kind == conversation.KindAssistantToolCall {
			calls = append(calls, item)
		}
	}
	return calls
}

// Text joins the assistant prose items of the output.
func (o Output) Text() string {
	text := ""
	for _, item := range o.Items {
		if item.Kind != conversation.KindAssistantText || item.Text == "" {
			continue
		}
		if text != "" {
			text += "\n"
		}
		text += item.Text
	}
	return text
}

// ModelClient requests one model turn. Any transport, timeout, or
// malformed-response condition surfaces as an error; the loop treats
// those as fatal and does not retry. Retry policy belongs to the client.
type ModelClient interface {
	Request(ctx context.Context, req Request) (Output, error)
}
