package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/singleflight"

	"github.com/jcdickinson/jsdocgen/internal/docs"
	"github.com/jcdickinson/jsdocgen/internal/markdown"
)

//go:embed instructions.md
var instructions string

const (
	uriScheme = "jsdoc://"
	indexURI  = uriScheme + "index"
)

type Server struct {
	mcpServer *server.MCPServer
	model     *docs.Model
	renderer  *markdown.Renderer
	resolver  *docs.Resolver
	links     map[string]string

	sectionCache   map[string]string
	sectionCacheMu sync.RWMutex
	sectionGroup   singleflight.Group
}

// EntrySummary is one row of list_entries output.
type EntrySummary struct {
	Longname string       `json:"longname"`
	Type     docs.DocType `json:"type"`
	URI      string       `json:"uri"`
}

// NewServer serves m over MCP. links configures resolve_type.
func NewServer(m *docs.Model, links docs.LinkConfig, version string) *Server {
	s := &Server{
		model:    m,
		renderer: markdown.NewRenderer(m),
		resolver: docs.NewResolver(m.References, links),
		links:    make(map[string]string, len(m.References)),

		sectionCache: make(map[string]string),
	}
	for name := range m.References {
		s.links["#"+name] = uriScheme + name
	}

	mcpServer := server.NewMCPServer(
		"jsdocgen",
		version,
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("resolve_type",
			mcp.WithDescription("Resolve a JSDoc type expression (e.g. \"Array.<woosmap.map.LatLng>|null\") into the linked form used by the reference."),
			mcp.WithString("type",
				mcp.Description("Type expression; union members separated by |"),
				mcp.Required(),
			),
		),
		s.handleResolveType,
	)

	mcpServer.AddTool(
		mcp.NewTool("list_entries",
			mcp.WithDescription("List documented entries by longname. Each result carries a jsdoc:// URI that can be read as a resource."),
			mcp.WithString("kind",
				mcp.Description("Optional filter: class, typedef, enum or func"),
				mcp.Enum(string(docs.DocClass), string(docs.DocTypedef), string(docs.DocEnum), string(docs.DocFunction)),
			),
			mcp.WithString("prefix",
				mcp.Description("Optional longname prefix, e.g. \"woosmap.map.\""),
			),
		),
		s.handleListEntries,
	)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResource(
		mcp.NewResource(
			indexURI,
			"API reference index",
			mcp.WithResourceDescription("Every documented entry grouped by kind."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.handleReadIndex,
	)

	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			uriScheme+"{longname}",
			"API reference entry",
			mcp.WithTemplateDescription("Read the documentation of a class, typedef, enum or static function by longname."),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleReadResource,
	)
}

func (s *Server) handleResolveType(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := req.RequireString("type")
	if err != nil || strings.TrimSpace(expr) == "" {
		return mcp.NewToolResultError("missing required parameter: type"), nil
	}

	return mcp.NewToolResultText(s.resolver.ResolveAll(splitUnion(expr))), nil
}

// splitUnion splits a type expression on the | separators that sit outside
// any Array.<...> brackets.
func splitUnion(expr string) []string {
	var names []string
	depth, start := 0, 0
	for i, r := range expr {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case '|':
			if depth == 0 {
				names = append(names, strings.TrimSpace(expr[start:i]))
				start = i + 1
			}
		}
	}
	return append(names, strings.TrimSpace(expr[start:]))
}

func (s *Server) handleListEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := docs.DocType(req.GetString("kind", ""))
	prefix := req.GetString("prefix", "")

	results := s.list(kind, prefix)
	resultJSON, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) list(kind docs.DocType, prefix string) []EntrySummary {
	results := []EntrySummary{}
	for _, e := range s.model.Elements {
		if kind != "" && e.Type() != kind {
			continue
		}
		if !strings.HasPrefix(e.Key(), prefix) {
			continue
		}
		results = append(results, EntrySummary{Longname: e.Key(), Type: e.Type(), URI: uriScheme + e.Key()})
	}
	return results
}

func (s *Server) handleReadIndex(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var b strings.Builder
	for _, kind := range []docs.DocType{docs.DocClass, docs.DocTypedef, docs.DocEnum, docs.DocFunction} {
		entries := s.list(kind, "")
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", kind)
		for _, e := range entries {
			fmt.Fprintf(&b, "- [%s](%s)\n", e.Longname, e.URI)
		}
		b.WriteString("\n")
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     b.String(),
		},
	}, nil
}

func (s *Server) handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	longname := strings.TrimPrefix(uri, uriScheme)
	if longname == uri || longname == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", uri)
	}

	entry, ok := s.model.Lookup(longname)
	if !ok {
		return nil, fmt.Errorf("no documented entry %q", longname)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     s.cachedSection(entry),
		},
	}, nil
}

// cachedSection renders each entry once; concurrent reads of the same
// entry share a single render.
func (s *Server) cachedSection(e docs.Entry) string {
	key := e.Key()
	s.sectionCacheMu.RLock()
	text, ok := s.sectionCache[key]
	s.sectionCacheMu.RUnlock()
	if ok {
		return text
	}

	v, _, _ := s.sectionGroup.Do(key, func() (interface{}, error) {
		text := s.section(e)
		s.sectionCacheMu.Lock()
		s.sectionCache[key] = text
		s.sectionCacheMu.Unlock()
		return text, nil
	})
	return v.(string)
}

// section renders an entry with in-page anchors pointed at jsdoc:// URIs.
func (s *Server) section(e docs.Entry) string {
	text := s.renderer.Section(e)
	text = markdown.RewriteLinks(text, s.links)
	for anchor, uri := range s.links {
		text = strings.ReplaceAll(text, `href="`+anchor+`"`, `href="`+uri+`"`)
	}
	return text
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
