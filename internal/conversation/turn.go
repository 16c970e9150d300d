package conversation

import "encoding/json"

// Kind discriminates the turn variants in a conversation log.
type Kind string

const (
	KindSystemPrompt      Kind = "system_prompt"
	KindUserMessage       Kind = "user_message"
	KindAssistantText     Kind = "assistant_text"
	KindAssistantToolCall Kind = "assistant_tool_call"
	KindToolResult        Kind = "tool_result"
)

// Turn is one atomic unit of the conversation record. Turns are immutable
// once appended to a Log; only the fields relevant to the Kind are set.
type Turn struct {
	Kind Kind `json:"kind"`

	// Text carries system prompts, user messages and assistant prose.
	Text string `json:"text,omitempty"`

	// CallID correlates an assistant tool call with its result.
	CallID    string          `json:"call_id,omitempty"`
	ToolName  string          `json:"tool_name,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`

	// Payload is the tool result content returned to the model. IsError
	// marks protocol failures (unknown tool, invalid arguments) so the
	// model can self-correct.
	Payload string `json:"payload,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
}

func SystemPrompt(text string) Turn {
	return Turn{Kind: KindSystemPrompt, Text: text}
}

func UserMessage(text string) Turn {
	return Turn{Kind: KindUserMessage, Text: text}
}

func AssistantText(text string) Turn {
	return Turn{Kind: KindAssistantText, Text: text}
}

func AssistantToolCall(id, name string, args json.RawMessage) Turn {
	return Turn{Kind: KindAssistantToolCall, CallID: id, ToolName: name, Arguments: args}
}

func ToolResult(callID, payload string) Turn {
	return Turn{Kind: KindToolResult, CallID: callID, Payload: payload}
}

// ToolError wraps a protocol failure as a result payload rather than a
// fault, keeping dispatch total over arbitrary model requests.
func ToolError(callID, message string) Turn {
	return Turn{Kind: KindToolResult, CallID: callID, Payload: message, IsError: true}
}
