package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/zhpersona/internal/services/persona/dataset"
)

// DatasetStatusURI addresses the dataset status resource.
const DatasetStatusURI = "persona://datasets"

// StatusReporter reports which datasets loaded.
type StatusReporter interface {
	Status() dataset.Status
}

// DatasetStatusResource defines the MCP resource for dataset health.
func DatasetStatusResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "dataset_status",
		Title:       "Dataset status",
		Description: "Reports which reference tables loaded; false means generation is using fallbacks for that table",
		MIMEType:    "application/json",
		URI:         DatasetStatusURI,
	}
}

// DatasetStatusResourceHandler serves the dataset status resource.
func DatasetStatusResourceHandler(reporter StatusReporter) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if reporter == nil {
			return nil, fmt.Errorf("dataset status reporter is not configured")
		}

		uri := DatasetStatusURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		data, err := json.MarshalIndent(reporter.Status(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal dataset status: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
