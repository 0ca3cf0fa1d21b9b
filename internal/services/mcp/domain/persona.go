package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/zhpersona/internal/services/persona"
)

// Generator produces persona records.
type Generator interface {
	Persona(ctx context.Context, opts persona.Options) (persona.Result, error)
}

// PersonaGenerateInput represents the MCP tool input for generating a persona.
type PersonaGenerateInput struct {
	Gender           string            `json:"gender,omitempty" jsonschema:"male, female or any; 男 and 女 are accepted too"`
	Age              string            `json:"age,omitempty" jsonschema:"age range as min-max or a single age; defaults to 18-65"`
	HometownProvince string            `json:"hometown_province,omitempty" jsonschema:"hometown province name or fragment, e.g. 广东"`
	HometownCity     string            `json:"hometown_city,omitempty" jsonschema:"hometown city name or fragment, e.g. 广州"`
	SecondPhone      bool              `json:"second_phone,omitempty" jsonschema:"also generate a phone number registered outside the hometown province"`
	WorkProvince     string            `json:"work_province,omitempty" jsonschema:"optional work province filter"`
	WorkCity         string            `json:"work_city,omitempty" jsonschema:"optional work city filter"`
	Fields           []string          `json:"fields,omitempty" jsonschema:"dotted paths to return, e.g. hometown.postcode; empty returns the full record"`
	Seed             int64             `json:"seed,omitempty" jsonschema:"fixes the random stream for reproducible output; 0 draws a fresh seed"`
	UseAI            bool              `json:"use_ai,omitempty" jsonschema:"ask the configured AI service for a life story and avatar"`
	Overrides        persona.Overrides `json:"overrides,omitempty" jsonschema:"field values that replace generated ones"`
}

// PersonaGenerateResult represents the MCP tool output for a generated persona.
type PersonaGenerateResult struct {
	Seed   int64          `json:"seed" jsonschema:"seed that reproduces this persona"`
	Record map[string]any `json:"record" jsonschema:"generated record, projected to the requested fields"`
}

// PersonaGenerateTool defines the MCP tool schema for generating a persona.
func PersonaGenerateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "persona_generate",
		Description: "Generates a synthetic Chinese persona with a consistent identity number, address, phone, job and online accounts",
	}
}

// PersonaGenerateHandler executes a persona generation request.
func PersonaGenerateHandler(gen Generator) mcp.ToolHandlerFor[PersonaGenerateInput, PersonaGenerateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PersonaGenerateInput) (*mcp.CallToolResult, PersonaGenerateResult, error) {
		if gen == nil {
			return nil, PersonaGenerateResult{}, fmt.Errorf("persona generator is not configured")
		}
		opts, err := input.Options()
		if err != nil {
			return nil, PersonaGenerateResult{}, err
		}

		res, err := gen.Persona(ctx, opts)
		if err != nil {
			return nil, PersonaGenerateResult{}, fmt.Errorf("persona generate failed: %w", err)
		}
		record, err := res.Map()
		if err != nil {
			return nil, PersonaGenerateResult{}, fmt.Errorf("project persona: %w", err)
		}
		return nil, PersonaGenerateResult{Seed: res.Seed, Record: record}, nil
	}
}

// Options converts tool input into generation options.
func (in PersonaGenerateInput) Options() (persona.Options, error) {
	gender, err := persona.ParseGender(in.Gender)
	if err != nil {
		return persona.Options{}, err
	}
	ages, err := persona.ParseAgeRange(in.Age)
	if err != nil {
		return persona.Options{}, err
	}
	return persona.Options{
		Gender:           gender,
		Age:              &ages,
		HometownProvince: in.HometownProvince,
		HometownCity:     in.HometownCity,
		SecondPhone:      in.SecondPhone,
		WorkProvince:     in.WorkProvince,
		WorkCity:         in.WorkCity,
		UseAI:            in.UseAI,
		Fields:           in.Fields,
		Seed:             in.Seed,
		Overrides:        in.Overrides,
	}, nil
}
