package provider_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/campusworks/advisor-agent/internal/advising"
	"github.com/campusworks/advisor-agent/internal/conversation"
	"github.com/campusworks/advisor-agent/internal/provider"
	"github.com/campusworks/advisor-agent/tools"
)

type capture struct {
	method string
	url    string
	body   []byte
}

type fakeTransport struct {
	respStatus int
	respBody   []byte
	captured   *capture
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if f.captured != nil {
		f.captured.method = req.Method
		f.captured.url = req.URL.String()
		f.captured.body = b
	}
	resp := &http.Response{
		StatusCode: f.respStatus,
		Body:       io.NopCloser(bytes.NewReader(f.respBody)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

func newClientWithTransport(rt http.RoundTripper) *anthropic.Client {
	c := anthropic.NewClient(
		option.WithHTTPClient(&http.Client{Transport: rt}),
		option.WithAPIKey("test-key"),
		// Base URL is irrelevant since transport intercepts
	)
	return &c
}

func courseTools(t *testing.T) []tools.ToolDefinition {
	t.Helper()
	p := advising.NewPlanner(advising.NewMemoryStore(advising.DefaultCatalog()), 18)
	r, err := tools.CourseRegistry(p)
	if err != nil {
		t.Fatal(err)
	}
	return r.Schemas()
}

type wireRequest struct {
	System []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type      string          `json:"type"`
			Text      string          `json:"text,omitempty"`
			ID        string          `json:"id,omitempty"`
			Name      string          `json:"name,omitempty"`
			Input     json.RawMessage `json:"input,omitempty"`
			ToolUseID string          `json:"tool_use_id,omitempty"`
			IsError   bool            `json:"is_error,omitempty"`
		} `json:"content"`
	} `json:"messages"`
	Tools []struct {
		Name string `json:"name"`
	} `json:"tools"`
	ToolChoice struct {
		Type                   string `json:"type"`
		DisableParallelToolUse bool   `json:"disable_parallel_tool_use"`
	} `json:"tool_choice"`
}

func TestAnthropicClient_RequestShape(t *testing.T) {
	capReq := &capture{}
	fake := &fakeTransport{respStatus: 200, respBody: []byte(`{"role":"assistant","content":[]}`), captured: capReq}
	cli := provider.NewAnthropicClientWith(newClientWithTransport(fake), provider.DefaultModel)

	log := conversation.NewLog("advise the student", "what am I taking?")
	log.Append(conversation.AssistantText("checking"))
	log.Append(conversation.AssistantToolCall("c1", "get_schedule", json.RawMessage(`{}`)))
	log.Append(conversation.ToolResult("c1", `{"courses":[],"total_credits":0}`))

	_, err := cli.Request(context.Background(), provider.Request{
		System:                  "advise the student",
		Turns:                   log.Turns(),
		Tools:                   courseTools(t),
		DisallowParallelToolUse: true,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if capReq.body == nil {
		t.Fatal("no request captured")
	}

	var rb wireRequest
	if err := json.Unmarshal(capReq.body, &rb); err != nil {
		t.Fatalf("unmarshal body: %v\nbody=%s", err, string(capReq.body))
	}

	if len(rb.System) != 1 || rb.System[0].Text != "advise the student" {
		t.Fatalf("system prompt not carried: %+v", rb.System)
	}

	// user text, assistant(text + tool_use) collapsed, user tool_result
	if len(rb.Messages) != 3 {
		t.Fatalf("expected 3 wire messages, got %d: %s", len(rb.Messages), string(capReq.body))
	}
	if rb.Messages[0].Role != "user" || rb.Messages[0].Content[0].Text != "what am I taking?" {
		t.Fatalf("unexpected first message: %+v", rb.Messages[0])
	}
	asst := rb.Messages[1]
	if asst.Role != "assistant" || len(asst.Content) != 2 {
		t.Fatalf("assistant emission not collapsed into one message: %+v", asst)
	}
	if asst.Content[0].Type != "text" || asst.Content[1].Type != "tool_use" || asst.Content[1].ID != "c1" {
		t.Fatalf("assistant block order lost: %+v", asst.Content)
	}
	res := rb.Messages[2]
	if res.Role != "user" || res.Content[0].Type != "tool_result" || res.Content[0].ToolUseID != "c1" {
		t.Fatalf("unexpected tool result message: %+v", res)
	}

	// Schema order matches registration order on every request.
	wantTools := []string{"list_courses", "get_schedule", "add_course", "drop_course", "check_credit_load"}
	if len(rb.Tools) != len(wantTools) {
		t.Fatalf("expected %d tools, got %d", len(wantTools), len(rb.Tools))
	}
	for i, w := range wantTools {
		if rb.Tools[i].Name != w {
			t.Fatalf("tool %d = %q, want %q", i, rb.Tools[i].Name, w)
		}
	}

	if rb.ToolChoice.Type != "auto" || !rb.ToolChoice.DisableParallelToolUse {
		t.Fatalf("parallel tool use not disabled: %+v", rb.ToolChoice)
	}
}

func TestAnthropicClient_DecodesItemsInEmissionOrder(t *testing.T) {
	resp := `{
		"role": "assistant",
		"content": [
			{"type": "text", "text": "let me enroll you"},
			{"type": "tool_use", "id": "t1", "name": "add_course", "input": {"code":"CS101"}},
			{"type": "tool_use", "id": "t2", "name": "get_schedule", "input": {}}
		]
	}`
	fake := &fakeTransport{respStatus: 200, respBody: []byte(resp)}
	cli := provider.NewAnthropicClientWith(newClientWithTransport(fake), provider.DefaultModel)

	out, err := cli.Request(context.Background(), provider.Request{
		System: "s",
		Turns:  conversation.NewLog("s", "enroll me in CS101").Turns(),
		Tools:  courseTools(t),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(out.Items))
	}
	if out.Items[0].Kind != conversation.KindAssistantText {
		t.Fatalf("first item should be text: %+v", out.Items[0])
	}
	calls := out.ToolCalls()
	if len(calls) != 2 || calls[0].CallID != "t1" || calls[1].CallID != "t2" {
		t.Fatalf("tool call order lost: %+v", calls)
	}
	if calls[0].ToolName != "add_course" || string(calls[0].Arguments) != `{"code":"CS101"}` {
		t.Fatalf("unexpected first call: %+v", calls[0])
	}
	if out.Text() != "let me enroll you" {
		t.Fatalf("unexpected text: %q", out.Text())
	}
}

func TestAnthropicClient_TransportErrorSurfaces(t *testing.T) {
	fake := &fakeTransport{respStatus: 500, respBody: []byte(`{"error":{"type":"api_error","message":"boom"}}`)}
	cli := provider.NewAnthropicClientWith(newClientWithTransport(fake), provider.DefaultModel)

	_, err := cli.Request(context.Background(), provider.Request{
		System: "s",
		Turns:  conversation.NewLog("s", "u").Turns(),
	})
	if err == nil {
		t.Fatal("expected transport error to surface")
	}
}
