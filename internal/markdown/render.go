package markdown

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	gmparser "github.com/gomarkdown/markdown/parser"
	"golang.org/x/sync/errgroup"

	"github.com/jcdickinson/jsdocgen/internal/docs"
	"github.com/jcdickinson/jsdocgen/internal/jsdoc"
)

// Renderer turns a documentation model into Markdown. Descriptions have their
// {@link} tags and longname link destinations rewritten to in-page anchors.
type Renderer struct {
	refs  docs.ReferenceSet
	links map[string]string
	// Title heads the rendered document.
	Title string
}

// NewRenderer returns a renderer linking against m.References.
func NewRenderer(m *docs.Model) *Renderer {
	return &Renderer{
		refs:  m.References,
		links: AnchorLinks(m.References),
		Title: "API Reference",
	}
}

// Document renders m as Markdown with a front-matter block carrying the
// version and experimental flag.
func (r *Renderer) Document(ctx context.Context, m *docs.Model) (string, error) {
	body, err := r.Body(ctx, m)
	if err != nil {
		return "", err
	}
	fields := make(map[string]string)
	if m.Version != "" {
		fields["version"] = m.Version
	}
	if m.Experimental {
		fields["experimental"] = "true"
	}
	return AddFrontMatter(body, fields), nil
}

// HTML renders m as a complete HTML page.
func (r *Renderer) HTML(ctx context.Context, m *docs.Model) ([]byte, error) {
	body, err := r.Body(ctx, m)
	if err != nil {
		return nil, err
	}
	title := r.Title
	if m.Version != "" {
		title += " " + m.Version
	}
	return ToHTML(body, title), nil
}

// Body renders the title, navigation tree and one section per element.
// Sections are rendered concurrently and joined in model order.
func (r *Renderer) Body(ctx context.Context, m *docs.Model) (string, error) {
	sections := make([]string, len(m.Elements))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, e := range m.Elements {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sections[i] = r.Section(e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("rendering sections: %w", err)
	}

	var b strings.Builder
	b.WriteString("# " + r.Title)
	if m.Version != "" {
		b.WriteString(" " + m.Version)
	}
	b.WriteString("\n\n")
	if m.Experimental {
		b.WriteString("> This reference documents an experimental release.\n\n")
	}
	if m.Tree != nil {
		r.writeTree(&b, m.Tree)
		b.WriteString("\n")
	}
	for _, s := range sections {
		b.WriteString(s)
	}
	return b.String(), nil
}

func (r *Renderer) writeTree(b *strings.Builder, tree *docs.TreeNode) {
	tree.Walk(func(n *docs.TreeNode, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		if n.Longname != "" {
			fmt.Fprintf(b, "- [%s](#%s)\n", n.Segment, n.Longname)
		} else {
			fmt.Fprintf(b, "- %s\n", n.Segment)
		}
	})
}

// Section renders a single element, starting with its anchor.
func (r *Renderer) Section(e docs.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<a id=\"%s\"></a>\n\n", e.Key())

	switch e := e.(type) {
	case *docs.ClassEntry:
		r.class(&b, e)
	case *docs.TypedefEntry:
		r.typedef(&b, e)
	case *docs.EnumEntry:
		r.enum(&b, e)
	case *docs.FunctionEntry:
		r.function(&b, e)
	}
	return b.String()
}

func (r *Renderer) class(b *strings.Builder, e *docs.ClassEntry) {
	kind := "class"
	if e.Virtual != nil && *e.Virtual {
		kind = "interface"
	}
	fmt.Fprintf(b, "## %s %s\n\n", e.Name, kind)
	r.deprecated(b, e.Deprecated)
	r.description(b, e.Description)
	if len(e.Parents) > 0 {
		fmt.Fprintf(b, "**Extends:** %s\n\n", strings.Join(e.Parents, ", "))
	}

	if c := e.Constructor; c != nil {
		b.WriteString("### Constructor\n\n")
		signature(b, c.Signature)
		r.description(b, c.Description)
		r.params(b, c.Params)
	}
	r.examples(b, e.Examples)

	if len(e.Properties) > 0 {
		b.WriteString("### Properties\n\n")
		r.properties(b, e.Properties)
	}

	if len(e.Methods) > 0 {
		b.WriteString("### Methods\n\n")
		for _, m := range e.Methods {
			fmt.Fprintf(b, "#### %s\n\n", m.Name)
			signature(b, m.Signature)
			if m.ReturnValue != "" {
				fmt.Fprintf(b, "**Returns:** %s\n\n", m.ReturnValue)
			}
			r.description(b, m.Description)
			r.params(b, m.Params)
			r.examples(b, m.Examples)
		}
	}
}

func (r *Renderer) typedef(b *strings.Builder, e *docs.TypedefEntry) {
	fmt.Fprintf(b, "## %s typedef\n\n", e.Name)
	r.deprecated(b, e.Deprecated)
	if e.IsCallback() {
		signature(b, e.Signature)
		if e.ReturnValue != "" {
			fmt.Fprintf(b, "**Returns:** %s\n\n", e.ReturnValue)
		}
	}
	r.description(b, e.Description)
	if len(e.Parents) > 0 {
		fmt.Fprintf(b, "**Extends:** %s\n\n", strings.Join(e.Parents, ", "))
	}
	r.params(b, e.Params)
	if len(e.Properties) > 0 {
		b.WriteString("### Properties\n\n")
		r.properties(b, e.Properties)
	}
}

func (r *Renderer) enum(b *strings.Builder, e *docs.EnumEntry) {
	fmt.Fprintf(b, "## %s enum\n\n", e.Name)
	r.deprecated(b, e.Deprecated)
	r.description(b, e.Description)
	if len(e.Values) == 0 {
		return
	}
	b.WriteString("### Constants\n\n")
	for _, v := range e.Values {
		fmt.Fprintf(b, "- **%s**", v.Name)
		if len(v.DefaultValue) > 0 {
			fmt.Fprintf(b, " `%s`", v.DefaultValue)
		}
		if v.Description != "" {
			b.WriteString(": " + r.text(v.Description))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (r *Renderer) function(b *strings.Builder, e *docs.FunctionEntry) {
	fmt.Fprintf(b, "## %s function\n\n", e.Name)
	r.deprecated(b, e.Deprecated)
	signature(b, e.Signature)
	if e.ReturnValue != "" {
		fmt.Fprintf(b, "**Returns:** %s\n\n", e.ReturnValue)
	}
	r.description(b, e.Description)
	r.params(b, e.Params)
	r.examples(b, e.Examples)
}

func signature(b *strings.Builder, sig string) {
	if sig != "" {
		fmt.Fprintf(b, "<code>%s</code>\n\n", sig)
	}
}

func (r *Renderer) deprecated(b *strings.Builder, d *jsdoc.Deprecation) {
	if d == nil || (!d.Deprecated && d.Message == "") {
		return
	}
	b.WriteString("> **Deprecated.**")
	if d.Message != "" {
		b.WriteString(" " + r.text(d.Message))
	}
	b.WriteString("\n\n")
}

func (r *Renderer) description(b *strings.Builder, desc string) {
	if desc = strings.TrimSpace(desc); desc != "" {
		b.WriteString(r.text(desc) + "\n\n")
	}
}

func (r *Renderer) params(b *strings.Builder, params []docs.ParamDoc) {
	if len(params) == 0 {
		return
	}
	b.WriteString("**Parameters:**\n\n")
	for _, p := range params {
		r.item(b, p.Name, p.Optional, p.TypeRef, p.Description)
	}
	b.WriteString("\n")
}

func (r *Renderer) properties(b *strings.Builder, props []docs.PropertyDoc) {
	for _, p := range props {
		r.item(b, p.Name, p.Optional, p.TypeRef, p.Description)
	}
	b.WriteString("\n")
}

// item writes one bullet of a parameter or property list.
func (r *Renderer) item(b *strings.Builder, name string, optional bool, typeRef, desc string) {
	fmt.Fprintf(b, "- `%s`", name)
	if optional {
		b.WriteString(" (optional)")
	}
	if typeRef != "" {
		b.WriteString(": " + typeRef)
	}
	if desc != "" {
		b.WriteString(" - " + oneLine(r.text(desc)))
	}
	b.WriteString("\n")
}

func (r *Renderer) examples(b *strings.Builder, examples []string) {
	for _, ex := range examples {
		b.WriteString("```js\n")
		b.WriteString(strings.TrimRight(ex, "\n"))
		b.WriteString("\n```\n\n")
	}
}

// text expands inline links and points longname destinations at anchors.
func (r *Renderer) text(s string) string {
	return RewriteLinks(ExpandInlineLinks(s, r.refs), r.links)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ToHTML converts Markdown to a standalone HTML page.
func ToHTML(src, title string) []byte {
	p := gmparser.NewWithExtensions(gmparser.CommonExtensions | gmparser.Autolink)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return gm.ToHTML([]byte(src), p, renderer)
}
