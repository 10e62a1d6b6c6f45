package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quantumsheets/quantum-sheets/internal/export"
	imcp "github.com/quantumsheets/quantum-sheets/internal/mcp"
	"github.com/quantumsheets/quantum-sheets/internal/session"
)

type SheetExportXlsxArguments struct {
	OutputPath string `zog:"outputPath"`
}

var sheetExportXlsxArgumentsSchema = z.Struct(z.Shape{
	"outputPath": z.String().Required(),
})

func AddSheetExportXlsxTool(srv *server.MCPServer, sess *session.Session) {
	srv.AddTool(mcp.NewTool("sheet_export_xlsx",
		mcp.WithDescription("Export the sheet to an Excel workbook; stored formulas are written as live cell formulas"),
		mcp.WithString("outputPath",
			mcp.Required(),
			mcp.Description("Absolute path for the output .xlsx file"),
		),
	), WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := SheetExportXlsxArguments{}
		if issues := sheetExportXlsxArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
			return imcp.NewToolResultZogIssueMap(issues), nil
		}
		if !filepath.IsAbs(args.OutputPath) {
			return imcp.NewToolResultInvalidArgumentError(
				fmt.Sprintf("outputPath must be absolute: %s", args.OutputPath)), nil
		}

		file, err := os.Create(args.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := export.GridXLSX(file, sess.Grid()); err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(fmt.Sprintf("exported workbook to %s", args.OutputPath)), nil
	}))
}
