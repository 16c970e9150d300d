package runner

import "github.com/campusworks/advisor-agent/internal/conversation"

// Outcome classifies how a loop run ended. Exactly one is produced per
// invocation.
type Outcome int

const (
	// OutcomeFinalAnswer: the model replied without tool calls; its text
	// is the answer.
	OutcomeFinalAnswer Outcome = iota
	// OutcomeIterationLimit: the bound was hit before a final answer.
	// Gave up safely, did not crash.
	OutcomeIterationLimit
	// OutcomeFatal: the run aborted; the accompanying error says which
	// phase failed.
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFinalAnswer:
		return "final_answer"
	case OutcomeIterationLimit:
		return "iteration_limit"
	case OutcomeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Result is what one loop invocation hands back. The log is always
// populated, whatever the outcome, so callers can diagnose limit or
// fatal runs from the full record.
type Result struct {
	RunID      string
	Outcome    Outcome
	Answer     string
	Iterations int
	Log        *conversation.Log
}
