// Package domain translates MCP tool calls into persona generation requests.
//
// Handlers parse loosely typed tool input into persona options, call the
// generator, and return the projected record as structured content.
package domain
