package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/campusworks/advisor-agent/internal/conversation"
	"github.com/campusworks/advisor-agent/tools"
)

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest

// defaultMaxTokens bounds the assistant reply per turn.
const defaultMaxTokens = 1024

// AnthropicClient implements ModelClient on the Anthropic Messages API.
// The SDK reads the API key from the environment.
type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicClient(model anthropic.Model) *AnthropicClient {
	c := anthropic.NewClient()
	return NewAnthropicClientWith(&c, model)
}

// NewAnthropicClientWith wraps a pre-built SDK client; tests use this to
// swap the HTTP transport.
func NewAnthropicClientWith(client *anthropic.Client, model anthropic.Model) *AnthropicClient {
	if model == "" {
		model = DefaultModel
	}
	return &AnthropicClient{client: client, model: model}
}

func (a *AnthropicClient) Request(ctx context.Context, req Request) (Output, error) {
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: int64(defaultMaxTokens),
		Messages:  messageParams(req.Turns),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if len(req.Tools) > 0 {
		params.Tools = toolParams(req.Tools)
		if req.DisallowParallelToolUse {
			params.ToolChoice = anthropic.ToolChoiceUnionParam{
				OfAuto: &anthropic.ToolChoiceAutoParam{
					DisableParallelToolUse: anthropic.Bool(true),
				},
			}
		}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return Output{}, fmt.Errorf("model request: %w", err)
	}
	return decodeMessage(msg)
}

// messageParams renders log turns into API messages. Consecutive turns of
// the same wire role collapse into one message with multiple content
// blocks, so a text-plus-tool-call emission round-trips as it arrived.
// System prompts travel in the request's System field, not as messages.
func messageParams(turns []conversation.Turn) []anthropic.MessageParam {
	var out []anthropic.MessageParam
	var role string
	var blocks []anthropic.ContentBlockParamUnion

	flush := func() {
		if len(blocks) == 0 {
			return
		}
		if role == "user" {
			out = append(out, anthropic.NewUserMessage(blocks...))
		} else {
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		}
		blocks = nil
	}
	push := func(r string, b anthropic.ContentBlockParamUnion) {
		if r != role {
			flush()
			role = r
		}
		blocks = append(blocks, b)
	}

	for _, t := range turns {
		switch t.Kind {
		case conversation.KindUserMessage:
			push("user", anthropic.NewTextBlock(t.Text))
		case conversation.KindAssistantText:
			push("assistant", anthropic.NewTextBlock(t.Text))
		case conversation.KindAssistantToolCall:
			args := t.Arguments
			if len(args) == 0 {
				args = json.RawMessage(`{}`)
			}
			push("assistant", anthropic.ContentBlockParamUnion{
				OfToolUse: &anthropic.ToolUseBlockParam{
					ID:    t.CallID,
					Name:  t.ToolName,
					Input: args,
				},
			})
		case conversation.KindToolResult:
			push("user", anthropic.NewToolResultBlock(t.CallID, t.Payload, t.IsError))
		}
	}
	flush()
	return out
}

func toolParams(defs []tools.ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, d := range defs {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        d.Name,
			Description: anthropic.String(d.Description),
			InputSchema: d.InputSchema.Anthropic,
		}})
	}
	return out
}

func decodeMessage(msg *anthropic.Message) (Output, error) {
	var out Output
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			out.Items = append(out.Items, conversation.AssistantText(v.Text))
		case anthropic.ToolUseBlock:
			if v.ID == "" {
				return Output{}, fmt.Errorf("malformed response: tool_use block without id")
			}
			input := json.RawMessage(v.JSON.Input.Raw())
			out.Items = append(out.Items, conversation.AssistantToolCall(v.ID, v.Name, input))
		}
	}
	return out, nil
}
