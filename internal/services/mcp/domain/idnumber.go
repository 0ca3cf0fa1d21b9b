package domain

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/zhpersona/internal/services/persona/demographic"
	"github.com/louisbranch/zhpersona/internal/services/persona/idnumber"
)

// IDNumberValidateInput represents the MCP tool input for checking an identity number.
type IDNumberValidateInput struct {
	IDNumber string `json:"id_number" jsonschema:"18-character resident identity number (required)"`
}

// IDNumberValidateResult represents the MCP tool output for an identity number check.
type IDNumberValidateResult struct {
	Valid     bool   `json:"valid" jsonschema:"whether the check character matches"`
	Reason    string `json:"reason,omitempty" jsonschema:"why the number is invalid"`
	AreaCode  string `json:"area_code,omitempty" jsonschema:"6-digit administrative area code"`
	BirthDate string `json:"birth_date,omitempty" jsonschema:"encoded birth date as YYYY-MM-DD"`
	Gender    string `json:"gender,omitempty" jsonschema:"encoded gender, 男 or 女"`
}

// IDNumberValidateTool defines the MCP tool schema for checking an identity number.
func IDNumberValidateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "id_number_validate",
		Description: "Checks the MOD 11-2 check character of a resident identity number and decodes its area, birth date and gender",
	}
}

// IDNumberValidateHandler executes an identity number check. Invalid numbers
// are reported in the result, not as tool errors.
func IDNumberValidateHandler() mcp.ToolHandlerFor[IDNumberValidateInput, IDNumberValidateResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input IDNumberValidateInput) (*mcp.CallToolResult, IDNumberValidateResult, error) {
		id := strings.ToUpper(strings.TrimSpace(input.IDNumber))
		if err := idnumber.Validate(id); err != nil {
			return nil, IDNumberValidateResult{Reason: err.Error()}, nil
		}
		birth, err := idnumber.BirthDate(id)
		if err != nil {
			return nil, IDNumberValidateResult{Reason: "birth date is not a calendar date"}, nil
		}
		gender := "女"
		if idnumber.IsMale(id) {
			gender = "男"
		}
		return nil, IDNumberValidateResult{
			Valid:     true,
			AreaCode:  id[:6],
			BirthDate: birth.Format(demographic.DateLayout),
			Gender:    gender,
		}, nil
	}
}
