package tools

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	imcp "github.com/quantumsheets/quantum-sheets/internal/mcp"
	"github.com/quantumsheets/quantum-sheets/internal/session"
)

type SheetColumnStatsArguments struct {
	Column string `zog:"column"`
}

var sheetColumnStatsArgumentsSchema = z.Struct(z.Shape{
	"column": z.String().Required(),
})

func AddSheetColumnStatsTool(srv *server.MCPServer, sess *session.Session) {
	srv.AddTool(mcp.NewTool("sheet_column_stats",
		mcp.WithDescription("Report count, sum, average, min, and max for a column"),
		mcp.WithString("column",
			mcp.Required(),
			mcp.Description("Column letters (e.g., \"A\", \"AA\")"),
		),
	), WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := SheetColumnStatsArguments{}
		if issues := sheetColumnStatsArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
			return imcp.NewToolResultZogIssueMap(issues), nil
		}
		stats, err := sess.ColumnStats(args.Column)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
		if stats.Count == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("column %s is empty", args.Column)), nil
		}
		average := stats.Sum / float64(stats.Count)
		result := fmt.Sprintf("count: %d\nsum: %v\naverage: %v\nmin: %v\nmax: %v",
			stats.Count, stats.Sum, average, stats.Min, stats.Max)
		return mcp.NewToolResultText(result), nil
	}))
}
