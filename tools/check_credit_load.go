package tools

import (
	"context"
	"encoding/json"

	"github.com/campusworks/advisor-agent/internal/advising"
)

type CheckCreditLoadInput struct{}

var CheckCreditLoadInputSchema = GenerateSchema[CheckCreditLoadInput]()

func CheckCreditLoadTool(p *advising.Planner) ToolDefinition {
	return ToolDefinition{
		Name:        "check_credit_load",
		Description: "Report the schedule's total credits, the credit limit, and how many credits remain before the limit.",
		Strict:      true,
		InputSchema: CheckCreditLoadInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			payload, err := p.CreditLoad(ctx)
			if err != nil {
				return "", err
			}
			return marshalPayload(payload)
		},
	}
}
