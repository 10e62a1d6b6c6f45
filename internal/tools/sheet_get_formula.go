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

type SheetGetFormulaArguments struct {
	Cell string `zog:"cell"`
}

var sheetGetFormulaArgumentsSchema = z.Struct(z.Shape{
	"cell": z.String().Required(),
})

func AddSheetGetFormulaTool(srv *server.MCPServer, sess *session.Session) {
	srv.AddTool(mcp.NewTool("sheet_get_formula",
		mcp.WithDescription("Read the canonical text of the formula stored in a cell"),
		mcp.WithString("cell",
			mcp.Required(),
			mcp.Description("Cell in Excel notation (e.g., \"C1\")"),
		),
	), WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := SheetGetFormulaArguments{}
		if issues := sheetGetFormulaArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
			return imcp.NewToolResultZogIssueMap(issues), nil
		}
		text, err := sess.FormulaText(args.Cell)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
		if text == "" {
			return imcp.NewToolResultInvalidArgumentError(
				fmt.Sprintf("cell %s holds no formula", args.Cell)), nil
		}
		return mcp.NewToolResultText(text), nil
	}))
}
