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

type SheetSetFormulaArguments struct {
	Cell    string `zog:"cell"`
	Formula string `zog:"formula"`
}

var sheetSetFormulaArgumentsSchema = z.Struct(z.Shape{
	"cell":    z.String().Required(),
	"formula": z.String().Required(),
})

func AddSheetSetFormulaTool(srv *server.MCPServer, sess *session.Session) {
	srv.AddTool(mcp.NewTool("sheet_set_formula",
		mcp.WithDescription("Store a formula in a cell without evaluating it"),
		mcp.WithString("cell",
			mcp.Required(),
			mcp.Description("Cell in Excel notation (e.g., \"C1\")"),
		),
		mcp.WithString("formula",
			mcp.Required(),
			mcp.Description("Formula text starting with '=' (e.g., \"=A1+B1\")"),
		),
	), WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := SheetSetFormulaArguments{}
		if issues := sheetSetFormulaArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
			return imcp.NewToolResultZogIssueMap(issues), nil
		}
		if err := sess.SetFormula(args.Cell, args.Formula); err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}
		stored, err := sess.FormulaText(args.Cell)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s stores %s", args.Cell, stored)), nil
	}))
}
