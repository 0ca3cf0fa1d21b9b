// Package service wires the MCP protocol transport to the persona tools.
//
// It knows how to run MCP over stdio or streamable HTTP and delegates tool
// semantics to package domain.
package service
