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

type SheetEvaluateArguments struct {
	Formula string `zog:"formula"`
}

var sheetEvaluateArgumentsSchema = z.Struct(z.Shape{
	"formula": z.String().Required(),
})

func AddSheetEvaluateTool(srv *server.MCPServer, sess *session.Session) {
	srv.AddTool(mcp.NewTool("sheet_evaluate",
		mcp.WithDescription("Parse and evaluate a formula against the current sheet"),
		mcp.WithString("formula",
			mcp.Required(),
			mcp.Description("Formula text starting with '=' (e.g., \"=SUM(A1:A10)\")"),
		),
	), WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := SheetEvaluateArguments{}
		if issues := sheetEvaluateArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
			return imcp.NewToolResultZogIssueMap(issues), nil
		}
		result, err := sess.EvaluateText(args.Formula)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%v", result)), nil
	}))
}
