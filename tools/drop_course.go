package tools

import (
	"context"
	"encoding/json"

	"github.com/campusworks/advisor-agent/internal/advising"
)

type DropCourseInput struct {
	Code string `json:"code" jsonschema_description:"Course code to drop from the schedule, e.g. CS101."`
}

var DropCourseInputSchema = GenerateSchema[DropCourseInput]()

func DropCourseTool(p *advising.Planner) ToolDefinition {
	return ToolDefinition{
		Name: "drop_course",
		Description: `Drop a course from the student's schedule by its course code.

The result carries a success flag and the updated total credits. Dropping a course the student is not enrolled in is refused with success=false.`,
		Strict:      true,
		InputSchema: DropCourseInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in DropCourseInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			payload, err := p.DropCourse(ctx, in.Code)
			if err != nil {
				return "", err
			}
			return marshalPayload(payload)
		},
	}
}
