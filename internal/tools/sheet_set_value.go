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

type SheetSetValueArguments struct {
	Cell  string  `zog:"cell"`
	Value float64 `zog:"value"`
}

var sheetSetValueArgumentsSchema = z.Struct(z.Shape{
	"cell":  z.String().Required(),
	"value": z.Float64().Required(),
})

func AddSheetSetValueTool(srv *server.MCPServer, sess *session.Session) {
	srv.AddTool(mcp.NewTool("sheet_set_value",
		mcp.WithDescription("Set a numeric value in a cell"),
		mcp.WithString("cell",
			mcp.Required(),
			mcp.Description("Cell in Excel notation (e.g., \"A1\", \"AA27\")"),
		),
		mcp.WithNumber("value",
			mcp.Required(),
			mcp.Description("Numeric value to store"),
		),
	), WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := SheetSetValueArguments{}
		if issues := sheetSetValueArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
			return imcp.NewToolResultZogIssueMap(issues), nil
		}
		if err := sess.SetValue(args.Cell, args.Value); err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("set %s to %v", args.Cell, args.Value)), nil
	}))
}
