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

type SheetExportCsvArguments struct {
	OutputPath string `zog:"outputPath"`
	Target     string `zog:"target"`
}

var sheetExportCsvArgumentsSchema = z.Struct(z.Shape{
	"outputPath": z.String().Required(),
	"target":     z.String().Default("grid"),
})

func AddSheetExportCsvTool(srv *server.MCPServer, sess *session.Session) {
	srv.AddTool(mcp.NewTool("sheet_export_csv",
		mcp.WithDescription("Export the sheet's column summary or the last generated records to a CSV file"),
		mcp.WithString("outputPath",
			mcp.Required(),
			mcp.Description("Absolute path for the output CSV file"),
		),
		mcp.WithString("target",
			mcp.Description("What to export: \"grid\" for per-column sums and counts, \"records\" for generated data (default: \"grid\")"),
		),
	), WithRecovery(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := SheetExportCsvArguments{}
		if issues := sheetExportCsvArgumentsSchema.Parse(request.Params.Arguments, &args); len(issues) != 0 {
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

		switch args.Target {
		case "grid":
			err = export.GridCSV(file, sess.Grid())
		case "records":
			if sess.LastRecords() == nil {
				return imcp.NewToolResultInvalidArgumentError("no generated records to export"), nil
			}
			err = export.RecordsCSV(file, sess.LastRecords())
		default:
			return imcp.NewToolResultInvalidArgumentError(
				fmt.Sprintf("unknown target %q", args.Target)), nil
		}
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(fmt.Sprintf("exported %s to %s", args.Target, args.OutputPath)), nil
	}))
}
