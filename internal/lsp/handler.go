package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"stackcc/grammar"
	"stackcc/internal/compiler"
	"stackcc/internal/parser"
)

var log = commonlog.GetLogger("stackcc.lsp")

// Handler implements the language server. Documents are kept in memory from
// the moment the editor opens them until it closes them.
type Handler struct {
	mu      sync.RWMutex
	content map[protocol.DocumentUri]string
}

func NewHandler() *Handler {
	return &Handler{
		content: make(map[protocol.DocumentUri]string),
	}
}

// Initialize advertises full-document sync, semantic tokens and formatting.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
			DocumentFormattingProvider: true,
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	log.Debugf("trace set to %s", params.Value)
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("opened %s", uri)

	h.mu.Lock()
	h.content[uri] = params.TextDocument.Text
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, CollectDiagnostics(params.TextDocument.Text))
	return nil
}

// TextDocumentDidChange applies full-text changes; the server only asks for
// full sync, so the last whole-document change wins.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	text, ok := "", false
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, ok = c.Text, true
		case *protocol.TextDocumentContentChangeEventWhole:
			text, ok = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text, ok = c.Text, true
			}
		}
	}
	if !ok {
		return fmt.Errorf("no full-text change for %s", uri)
	}

	h.mu.Lock()
	h.content[uri] = text
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, CollectDiagnostics(text))
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("closed %s", uri)

	h.mu.Lock()
	delete(h.content, uri)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, []protocol.Diagnostic{})
	return nil
}

func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	source, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	// A document that does not lex has no tokens to color.
	tokens, err := parser.Tokenize(source)
	if err != nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(tokens)),
	}, nil
}

// TextDocumentFormatting replaces the whole document with its canonical
// layout. Documents with errors are left alone.
func (h *Handler) TextDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	source, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	formatted, err := grammar.Format(source)
	if err != nil {
		log.Debugf("not formatting %s: %v", params.TextDocument.URI, err)
		return []protocol.TextEdit{}, nil
	}
	if formatted == source {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   endOfDocument(source),
		},
		NewText: formatted,
	}}, nil
}

// document returns the open buffer for uri, or the file on disk when the
// editor has not opened it.
func (h *Handler) document(uri protocol.DocumentUri) (string, error) {
	h.mu.RLock()
	source, ok := h.content[uri]
	h.mu.RUnlock()
	if ok {
		return source, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return "", fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), nil
}

// CollectDiagnostics compiles source and reports the fatal error, if any,
// followed by the warnings of a successful compilation.
func CollectDiagnostics(source string) []protocol.Diagnostic {
	result, err := compiler.Compile(source, compiler.Options{})
	if err != nil {
		return ConvertError(err)
	}
	return ConvertCompilerErrors(result.Warnings)
}

func endOfDocument(source string) protocol.Position {
	lines := strings.Split(source, "\n")
	last := lines[len(lines)-1]
	return protocol.Position{
		Line:      uint32(len(lines) - 1),
		Character: uint32(len(last)),
	}
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
