package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/zhpersona/internal/services/mcp/domain"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "zhpersona MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

type mcpRegistrationModule struct {
	name     string
	register func(*mcp.Server) error
}

const (
	mcpPersonaToolsModuleName     = "persona-tools"
	mcpIDNumberToolsModuleName    = "id-number-tools"
	mcpDatasetResourcesModuleName = "dataset-resources"
)

func newMCPRegistrationModules(gen domain.Generator, status domain.StatusReporter) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpPersonaToolsModuleName,
			register: func(server *mcp.Server) error {
				if gen == nil {
					return fmt.Errorf("persona generator is required")
				}
				mcp.AddTool(server, domain.PersonaGenerateTool(), domain.PersonaGenerateHandler(gen))
				return nil
			},
		},
		{
			name: mcpIDNumberToolsModuleName,
			register: func(server *mcp.Server) error {
				mcp.AddTool(server, domain.IDNumberValidateTool(), domain.IDNumberValidateHandler())
				return nil
			},
		},
		{
			name: mcpDatasetResourcesModuleName,
			register: func(server *mcp.Server) error {
				if status == nil {
					return nil
				}
				server.AddResource(domain.DatasetStatusResource(), domain.DatasetStatusResourceHandler(status))
				return nil
			},
		},
	}
}

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP server address (e.g., "localhost:8081"). Defaults to localhost:8081 for HTTP transport.
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates an MCP server exposing persona generation. A nil status
// reporter leaves out the dataset resource.
func New(gen domain.Generator, status domain.StatusReporter) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	for _, module := range newMCPRegistrationModules(gen, status) {
		if err := module.register(mcpServer); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}
	return &Server{mcpServer: mcpServer}, nil
}
