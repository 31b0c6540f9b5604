// Package lsp serves the #define index of a codebase over the Language
// Server Protocol.
package lsp

import (
	"context"
	"sync"
	"time"

	"github.com/dhamidi/cppast/codebase"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "cppast"

var log = commonlog.GetLogger("cppast.lsp")

type Option func(*Server)

// WithPollInterval sets how often the watcher looks for changed files.
// Zero disables the watcher.
func WithPollInterval(d time.Duration) Option {
	return func(s *Server) {
		s.pollInterval = d
	}
}

type Server struct {
	codebase     *codebase.Codebase
	watcher      *codebase.FileWatcher
	pollInterval time.Duration
	handler      protocol.Handler
	server       *server.Server
	version      string

	mu     sync.Mutex
	notify glsp.NotifyFunc
}

func NewServer(version string, opts ...Option) *Server {
	ls := &Server{
		version:      version,
		pollInterval: time.Second,
	}
	for _, opt := range opts {
		opt(ls)
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentCompletion:     ls.textDocumentCompletion,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDefinition:     ls.textDocumentDefinition,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) RunTCP(address string) error {
	return ls.server.RunTCP(address)
}

func (ls *Server) RunWebSocket(address string) error {
	return ls.server.RunWebSocket(address)
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = codebase.New(rootDir)
	log.Infof("initializing with root %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		log.Errorf("scanning %s: %s", ls.codebase.RootDir(), err)
	}
	for _, path := range ls.codebase.Files() {
		ls.publish(path, ls.codebase.GetFile(path))
	}

	if ls.pollInterval > 0 {
		ls.watcher = codebase.NewFileWatcher(ls.codebase, ls.pollInterval, ls.publish)
		ls.watcher.Start()
	}
	return nil
}

// publish sends the diagnostics of one file. A nil info clears them.
func (ls *Server) publish(path string, info *codebase.FileInfo) {
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil {
		return
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: diagnostics(info),
	})
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.publish(path, ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text)))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.publish(path, ls.codebase.UpdateFile(path, []byte(textChange.Text)))
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.publish(path, ls.codebase.UpdateFile(path, []byte(*params.Text)))
	} else if err := ls.codebase.ScanFile(path); err == nil {
		ls.publish(path, ls.codebase.GetFile(path))
	}
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	return documentSymbols(ls.codebase.GetFile(path)), nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	line, col := fromPosition(ls.content(path), params.Position)
	word := ls.codebase.WordAtPoint(path, line, col)
	if word == "" {
		return nil, nil
	}
	defs := ls.codebase.FindDefines(word)
	if len(defs) == 0 {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hoverText(defs),
		},
	}, nil
}

func (ls *Server) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	line, col := fromPosition(ls.content(path), params.Position)
	word := ls.codebase.WordAtPoint(path, line, col)
	if word == "" {
		return nil, nil
	}
	var locations []protocol.Location
	for _, def := range ls.codebase.FindDefines(word) {
		locations = append(locations, protocol.Location{
			URI:   pathToURI(def.Path),
			Range: toRange(ls.content(def.Path), def.Define.NodeSpan()),
		})
	}
	return locations, nil
}

func (ls *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	line, col := fromPosition(ls.content(path), params.Position)
	completions := ls.codebase.CompletionsAtPoint(path, line, col)
	if len(completions) == 0 {
		return nil, nil
	}
	return toCompletionItems(completions), nil
}

// content is the indexed text of path, or nil.
func (ls *Server) content(path string) []byte {
	if info := ls.codebase.GetFile(path); info != nil {
		return info.Content
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
