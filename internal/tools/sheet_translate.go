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

type SheetTranslateArguments struct {
	Text     string `zog:"text"`
	Evaluate bool   `zog:"evaluate"`
}

var sheetTranslateArgumentsSchema = z.Struct(z.Shape{
	"text":     z.String().Required(),
	"evaluate": z.Bool().Default(false),
})

func AddSheetTranslateTool(srv *server.MCPServer, sess *session.Session) {
	srv.AddTool(mcp.NewTool("sheet_translate",
		mcp.WithDescription("Translate a natural-language phrase into a formula, e.g. \"add A1 and B2\""),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Phrase to translate"),
		),
		mcp.WithBoolean("evaluate",
			mcp.Description("Also evaluate the translated formula against the current sheet"),
		),
	), WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := SheetTranslateArguments{}
		if issues := sheetTranslateArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
			return imcp.NewToolResultZogIssueMap(issues), nil
		}
		formula, ok := sess.Translate(args.Text)
		if !ok {
			return imcp.NewToolResultInvalidArgumentError(
				fmt.Sprintf("no translation for %q", args.Text)), nil
		}
		if !args.Evaluate {
			return mcp.NewToolResultText(formula), nil
		}
		result, err := sess.EvaluateText(formula)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(
				fmt.Sprintf("translated to %s but evaluation failed: %v", formula, err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s = %v", formula, result)), nil
	}))
}
