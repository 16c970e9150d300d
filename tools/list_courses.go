package tools

import (
	"context"
	"encoding/json"

	"github.com/campusworks/advisor-agent/internal/advising"
)

type ListCoursesInput struct{}

var ListCoursesInputSchema = GenerateSchema[ListCoursesInput]()

// ListCoursesTool exposes the registration catalog. Read-only: calling it
// twice against unchanged state yields identical payloads.
func ListCoursesTool(p *advising.Planner) ToolDefinition {
	return ToolDefinition{
		Name:        "list_courses",
		Description: "List all courses currently open for registration, with course codes, titles and credit values.",
		Strict:      true,
		InputSchema: ListCoursesInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			payload, err := p.ListCatalog(ctx)
			if err != nil {
				return "", err
			}
			return marshalPayload(payload)
		},
	}
}
