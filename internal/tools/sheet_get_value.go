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

type SheetGetValueArguments struct {
	Cell string `zog:"cell"`
}

var sheetGetValueArgumentsSchema = z.Struct(z.Shape{
	"cell": z.String().Required(),
})

func AddSheetGetValueTool(srv *server.MCPServer, sess *session.Session) {
	srv.AddTool(mcp.NewTool("sheet_get_value",
		mcp.WithDescription("Read the numeric value stored in a cell"),
		mcp.WithString("cell",
			mcp.Required(),
			mcp.Description("Cell in Excel notation (e.g., \"A1\", \"AA27\")"),
		),
	), WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := SheetGetValueArguments{}
		if issues := sheetGetValueArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
			return imcp.NewToolResultZogIssueMap(issues), nil
		}
		value, err := sess.Value(args.Cell)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%v", value)), nil
	}))
}
