package tools

import (
	"context"
	"encoding/json"

	"github.com/campusworks/advisor-agent/internal/advising"
)

type AddCourseInput struct {
	Code string `json:"code" jsonschema_description:"Course code to enroll in, e.g. CS101."`
}

var AddCourseInputSchema = GenerateSchema[AddCourseInput]()

// AddCourseTool enrolls the student in a catalog course. Unknown codes,
// duplicate enrollment and credit-limit overruns come back in the payload
// with success=false so the model can adjust its plan.
func AddCourseTool(p *advising.Planner) ToolDefinition {
	return ToolDefinition{
		Name: "add_course",
		Description: `Enroll the student in a course by its course code.

The result carries a success flag and the updated total credits. Enrollment is refused (success=false, with a reason) when the code is not in the catalog, the course is already on the schedule, or adding it would exceed the credit limit.`,
		Strict:      true,
		InputSchema: AddCourseInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in AddCourseInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			payload, err := p.AddCourse(ctx, in.Code)
			if err != nil {
				return "", err
			}
			return marshalPayload(payload)
		},
	}
}
