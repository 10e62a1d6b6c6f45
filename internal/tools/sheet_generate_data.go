package tools

import (
	"context"
	"fmt"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	imcp "github.com/quantumsheets/quantum-sheets/internal/mcp"
	"github.com/quantumsheets/quantum-sheets/internal/session"
)

type SheetGenerateDataArguments struct {
	Request string `zog:"request"`
}

var sheetGenerateDataArgumentsSchema = z.Struct(z.Shape{
	"request": z.String().Required(),
})

func AddSheetGenerateDataTool(srv *server.MCPServer, sess *session.Session) {
	srv.AddTool(mcp.NewTool("sheet_generate_data",
		mcp.WithDescription("Generate test data records from a free-form request, "+
			"e.g. \"100 rows with Nepal phone numbers, Indian cities, random gender\". "+
			"Records are kept in the session for export."),
		mcp.WithString("request",
			mcp.Required(),
			mcp.Description("What to generate; the first number is the row count"),
		),
	), WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := SheetGenerateDataArguments{}
		if issues := sheetGenerateDataArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
			return imcp.NewToolResultZogIssueMap(issues), nil
		}
		records, err := sess.GenerateData(args.Request)
		if err != nil {
			return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "generated %d records\n\n", len(records))
		b.WriteString("ID,Phone,City,Gender\n")
		shown := len(records)
		if shown > 10 {
			shown = 10
		}
		for _, r := range records[:shown] {
			fmt.Fprintf(&b, "%d,%s,%s,%s\n", r.ID, r.Phone, r.City, r.Gender)
		}
		if len(records) > shown {
			fmt.Fprintf(&b, "... and %d more\n", len(records)-shown)
		}
		return mcp.NewToolResultText(b.String()), nil
	}))
}
