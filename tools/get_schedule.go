package tools

import (
	"context"
	"encoding/json"

	"github.com/campusworks/advisor-agent/internal/advising"
)

type GetScheduleInput struct{}

var GetScheduleInputSchema = GenerateSchema[GetScheduleInput]()

func GetScheduleTool(p *advising.Planner) ToolDefinition {
	return ToolDefinition{
		Name:        "get_schedule",
		Description: "Show the student's current schedule: enrolled courses and the total credits they carry.",
		Strict:      true,
		InputSchema: GetScheduleInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			payload, err := p.GetSchedule(ctx)
			if err != nil {
				return "", err
			}
			return marshalPayload(payload)
		},
	}
}
