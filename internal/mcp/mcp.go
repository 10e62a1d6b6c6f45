// Package mcp holds shared helpers for building tool results.
package mcp

import (
	"fmt"
	"sort"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
)

// NewToolResultInvalidArgumentError creates an error result for a
// request whose arguments were well-formed but unusable
func NewToolResultInvalidArgumentError(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("invalid argument: %s", message))
}

// NewToolResultZogIssueMap creates an error result from schema
// validation issues, one line per failing field
func NewToolResultZogIssueMap(issues z.ZogIssueMap) *mcp.CallToolResult {
	sanitized := z.Issues.SanitizeMap(issues)

	fields := make([]string, 0, len(sanitized))
	for field := range sanitized {
		if field == "$root" {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("invalid arguments:\n")
	for _, field := range fields {
		fmt.Fprintf(&b, "%s: %s\n", field, strings.Join(sanitized[field], "; "))
	}
	return mcp.NewToolResultError(strings.TrimRight(b.String(), "\n"))
}
