// Package ls implements a language server for grammar files: it
// validates YAML and EBNF grammar documents as they are edited and
// publishes the loader and validation errors as diagnostics.
package ls

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhamidi/earley/grammar"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"golang.org/x/exp/ebnf"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "earley"

var log = commonlog.GetLogger(lsName)

// document is the server-side state of one open grammar file. glsp
// drives the handler from a single goroutine, so a plain map suffices.
type document struct {
	content string
	names   []string // nonterminals from the last good load, for completion
}

type LSPServer struct {
	handler protocol.Handler
	server  *server.Server
	version string
	docs    map[protocol.DocumentUri]*document
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
		docs:    make(map[protocol.DocumentUri]*document),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	delete(ls.docs, params.TextDocument.URI)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := ls.docs[params.TextDocument.URI]
	if doc == nil || len(doc.names) == 0 {
		return nil, nil
	}

	kind := protocol.CompletionItemKindClass
	var items []protocol.CompletionItem
	for _, name := range doc.names {
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  &kind,
		})
	}

	return items, nil
}

// update revalidates a document and publishes the resulting diagnostics.
func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, content string) {
	doc := ls.docs[uri]
	if doc == nil {
		doc = &document{}
		ls.docs[uri] = doc
	}
	doc.content = content

	diagnostics := ls.validate(uri, doc)
	log.Debugf("validated %s: %d diagnostics", uri, len(diagnostics))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// validate loads the document with the loader matching its extension
// and converts load errors to diagnostics. On success it refreshes the
// document's completion names.
func (ls *LSPServer) validate(uri protocol.DocumentUri, doc *document) []protocol.Diagnostic {
	switch strings.ToLower(filepath.Ext(string(uri))) {
	case ".yaml", ".yml":
		g, err := grammar.ParseYAML([]byte(doc.content))
		if err != nil {
			return diagnosticsFor(err)
		}
		doc.names = g.Nonterminals()
		return []protocol.Diagnostic{}

	case ".ebnf":
		g, err := ebnf.Parse(string(uri), strings.NewReader(doc.content))
		if err != nil {
			return diagnosticsFor(err)
		}
		names := make([]string, 0, len(g))
		for name := range g {
			names = append(names, name)
		}
		sort.Strings(names)
		doc.names = names
		return []protocol.Diagnostic{}

	default:
		return []protocol.Diagnostic{}
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
