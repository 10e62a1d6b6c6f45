// Command qsheets runs the spreadsheet engine either as an interactive
// shell or as an MCP server speaking stdio.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/quantumsheets/quantum-sheets/internal/config"
	"github.com/quantumsheets/quantum-sheets/internal/datagen"
	"github.com/quantumsheets/quantum-sheets/internal/engine"
	"github.com/quantumsheets/quantum-sheets/internal/server"
	"github.com/quantumsheets/quantum-sheets/internal/session"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.6.0"

var log = commonlog.GetLogger("qsheets")

func main() {
	configPath := flag.String("config", "qsheets.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	commonlog.Configure(verbosity(cfg.Server.LogLevel), nil)

	sess := newSession(cfg)

	if flag.Arg(0) == "serve" {
		log.Infof("starting %s v%s on stdio", cfg.Server.Name, version)
		srv := server.New(cfg.Server.Name, version, sess)
		if err := srv.Start(); err != nil {
			log.Criticalf("server failed: %v", err)
			os.Exit(1)
		}
		return
	}

	repl(sess)
}

func newSession(cfg *config.Config) *session.Session {
	mode := engine.StorageRowIndexed
	if cfg.Sheet.SequentialAppend {
		mode = engine.StorageSequentialAppend
	}

	gen := datagen.New()
	if cfg.DataGen.Seed != 0 {
		gen = datagen.NewWithSeed(cfg.DataGen.Seed, 0)
	}

	return session.NewWithOptions(mode, gen)
}

func verbosity(level string) int {
	switch level {
	case "debug":
		return 2
	case "error":
		return 0
	default:
		return 1
	}
}

func repl(sess *session.Session) {
	fmt.Printf("quantum-sheets v%s (type OPS for commands, exit to quit)\n", version)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("qsheets> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}

		result, err := sess.Execute(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(result)
	}

	if err := scanner.Err(); err != nil {
		log.Errorf("read input: %v", err)
	}
}
