package markdown

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"

	"github.com/jcdickinson/jsdocgen/internal/docs"
)

// inlineLinkRe matches JSDoc inline links: {@link target}, {@link target|label}
// and {@link target label}.
var inlineLinkRe = regexp.MustCompile(`\{@link\s+([^\s|}]+)(?:\s*\|\s*([^}]*)|\s+([^}]*))?\}`)

// AnchorLinks maps every referenced longname to its in-page anchor.
func AnchorLinks(refs docs.ReferenceSet) map[string]string {
	links := make(map[string]string, len(refs))
	for name := range refs {
		links[name] = "#" + name
	}
	return links
}

// ExpandInlineLinks turns {@link} tags into Markdown links. Targets in refs
// link to their anchor, absolute URLs link out, and anything else is left
// as inline code.
func ExpandInlineLinks(src string, refs docs.ReferenceSet) string {
	if !strings.Contains(src, "{@link") {
		return src
	}
	return inlineLinkRe.ReplaceAllStringFunc(src, func(tag string) string {
		m := inlineLinkRe.FindStringSubmatch(tag)
		target := m[1]
		label := strings.TrimSpace(m[2])
		if label == "" {
			label = strings.TrimSpace(m[3])
		}

		switch {
		case refs.Has(target):
			if label == "" {
				label = docs.ShortName(target)
			}
			return fmt.Sprintf("[%s](#%s)", label, target)
		case strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://"):
			if label == "" {
				label = target
			}
			return fmt.Sprintf("[%s](%s)", label, target)
		case label != "":
			return label
		default:
			return "`" + target + "`"
		}
	})
}

// RewriteLinks rewrites markdown link destinations using the provided link map.
// It parses the markdown to AST to find all link destinations, then performs
// targeted string replacements to preserve original formatting.
func RewriteLinks(src string, linkMap map[string]string) string {
	if len(linkMap) == 0 {
		return src
	}

	doc := gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))

	seen := make(map[string]bool)
	type replacement struct {
		oldDest string
		newDest string
	}
	var replacements []replacement

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if link, ok := node.(*ast.Link); ok {
			dest := string(link.Destination)
			if newDest, ok := linkMap[dest]; ok && !seen[dest] {
				seen[dest] = true
				replacements = append(replacements, replacement{dest, newDest})
			}
		}
		return ast.GoToNext
	})

	if len(replacements) == 0 {
		return src
	}

	result := src

	// Inline links: [text](destination)
	for _, r := range replacements {
		result = strings.ReplaceAll(result, "]("+r.oldDest+")", "]("+r.newDest+")")
	}

	// Reference-style definitions: [ref]: destination
	refMap := make(map[string]string, len(replacements))
	for _, r := range replacements {
		refMap["]: "+r.oldDest] = "]: " + r.newDest
	}
	lines := strings.Split(result, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for oldSuffix, newSuffix := range refMap {
			if strings.HasSuffix(trimmed, oldSuffix) {
				lines[i] = strings.Replace(line, oldSuffix, newSuffix, 1)
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// AddFrontMatter prepends a YAML front-matter block with the given fields,
// sorted by key.
func AddFrontMatter(src string, fields map[string]string) string {
	if len(fields) == 0 {
		return src
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("---\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s: %s\n", k, fields[k]))
	}
	b.WriteString("---\n\n")
	b.WriteString(src)
	return b.String()
}
