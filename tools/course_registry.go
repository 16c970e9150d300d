package tools

import (
	"encoding/json"

	"github.com/campusworks/advisor-agent/internal/advising"
)

// CourseRegistry returns a registry with all advising tools wired against
// the given planner.
func CourseRegistry(p *advising.Planner) (*Registry, error) {
	r := NewRegistry()
	defs := []ToolDefinition{
		ListCoursesTool(p),
		GetScheduleTool(p),
		AddCourseTool(p),
		DropCourseTool(p),
		CheckCreditLoadTool(p),
	}
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func marshalPayload(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
