package conversation

import "fmt"

// Log is the append-only ordered record of all turns exchanged so far.
// It is owned by a single loop invocation and is not safe for concurrent
// use; independent queries get independent logs.
type Log struct {
	turns []Turn
}

// NewLog seeds a log with exactly one system prompt and one user message,
// the shape every loop run starts from.
func NewLog(system, user string) *Log {
	return &Log{turns: []Turn{SystemPrompt(system), UserMessage(user)}}
}

// Append adds a turn to the end of the log. Turns are never edited or
// removed afterwards.
func (l *Log) Append(t Turn) {
	l.turns = append(l.turns, t)
}

func (l *Log) Len() int {
	return len(l.turns)
}

// Turns returns a copy of the recorded turns, oldest first.
func (l *Log) Turns() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// LastAssistantText returns the text of the most recent assistant prose
// turn, or "" when none exists.
func (l *Log) LastAssistantText() string {
	for i := len(l.turns) - 1; i >= 0; i-- {
		if l.turns[i].Kind == KindAssistantText {
			return l.turns[i].Text
		}
	}
	return ""
}

// CheckPairing verifies the tool-call invariant: every assistant tool call
// is answered by exactly one result with the same call id, results arrive
// in issue order, and no user or system turn interleaves while calls are
// still outstanding.
func (l *Log) CheckPairing() error {
	var pending []string
	for i, t := range l.turns {
		switch t.Kind {
		case KindAssistantToolCall:
			if t.CallID == "" {
				return fmt.Errorf("turn %d: tool call without call id", i)
			}
			pending = append(pending, t.CallID)
		case KindToolResult:
			if len(pending) == 0 {
				return fmt.Errorf("turn %d: tool result %q without a matching call", i, t.CallID)
			}
			if pending[0] != t.CallID {
				return fmt.Errorf("turn %d: tool result %q out of order, expected %q", i, t.CallID, pending[0])
			}
			pending = pending[1:]
		case KindSystemPrompt, KindUserMessage:
			if len(pending) > 0 {
				return fmt.Errorf("turn %d: %s while %d tool call(s) unresolved", i, t.Kind, len(pending))
			}
		}
	}
	if len(pending) > 0 {
		return fmt.Errorf("log ends with %d unresolved tool call(s), first %q", len(pending), pending[0])
	}
	return nil
}

// CountKind returns how many turns of the given kind the log holds.
func (l *Log) CountKind(k Kind) int {
	n := 0
	for _, t := range l.turns {
		if t.Kind == k {
			n++
		}
	}
	return n
}
