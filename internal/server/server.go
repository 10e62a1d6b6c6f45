package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/quantumsheets/quantum-sheets/internal/session"
	"github.com/quantumsheets/quantum-sheets/internal/tools"
)

type SheetServer struct {
	server  *server.MCPServer
	session *session.Session
}

func New(name, version string, sess *session.Session) *SheetServer {
	s := &SheetServer{
		server:  server.NewMCPServer(name, version),
		session: sess,
	}
	tools.AddSheetSetValueTool(s.server, sess)
	tools.AddSheetGetValueTool(s.server, sess)
	tools.AddSheetSetFormulaTool(s.server, sess)
	tools.AddSheetGetFormulaTool(s.server, sess)
	tools.AddSheetEvaluateTool(s.server, sess)
	tools.AddSheetColumnStatsTool(s.server, sess)
	tools.AddSheetTranslateTool(s.server, sess)
	tools.AddSheetGenerateDataTool(s.server, sess)
	tools.AddSheetExportCsvTool(s.server, sess)
	tools.AddSheetExportXlsxTool(s.server, sess)
	return s
}

func (s *SheetServer) Start() error {
	return server.ServeStdio(s.server)
}
