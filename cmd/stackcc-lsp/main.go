// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"stackcc/internal/lsp"
)

const lsName = "stackcc" // Name identifier for the language server

var (
	version = "0.1.0"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

var log = commonlog.GetLogger("stackcc.lsp.main")

func main() {
	verbosity := flag.Int("v", 1, "log verbosity")
	debug := flag.Bool("debug", false, "enable glsp protocol tracing")
	flag.Parse()

	// Logs go to stderr; stdout carries the protocol.
	commonlog.Configure(*verbosity, nil)

	stackHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:                     stackHandler.Initialize,
		Initialized:                    stackHandler.Initialized,
		Shutdown:                       stackHandler.Shutdown,
		SetTrace:                       stackHandler.SetTrace,
		TextDocumentDidOpen:            stackHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           stackHandler.TextDocumentDidClose,
		TextDocumentDidChange:          stackHandler.TextDocumentDidChange,
		TextDocumentSemanticTokensFull: stackHandler.TextDocumentSemanticTokensFull,
		TextDocumentFormatting:         stackHandler.TextDocumentFormatting,
	}

	s := server.NewServer(&handler, lsName, *debug)

	log.Noticef("starting %s language server %s", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %v", err)
		os.Exit(1)
	}
}
