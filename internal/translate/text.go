package translate

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	brTag        = regexp.MustCompile(`(?i)<br\s*/?>`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
	escapedBrack = strings.NewReplacer(`\[`, `[`, `\]`, `]`)
)

// MarkdownToText strips markdown formatting and keeps list structure, with
// "-" bullets and numbered items. Code blocks, raw HTML and rules are dropped.
func MarkdownToText(src string) string {
	source := []byte(src)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	r := plainRenderer{source: source}
	return escapedBrack.Replace(r.blocks(doc, "\n\n"))
}

// prepare converts text into the form sent to the translation service.
func prepare(s string) string {
	return strings.ReplaceAll(MarkdownToText(s), "\n", "<br/>")
}

// restore converts a translation service response back to plain text.
func restore(s string) string {
	s = strings.TrimSpace(brTag.ReplaceAllString(s, "\n"))
	return trimLines(s)
}

// PlainForEdit returns s as plain text suitable for an edit box: markdown is
// stripped the same way as before translation, then entities and <br> tags
// are decoded and runs of blank lines collapsed.
func PlainForEdit(s string) string {
	if s == "" {
		return s
	}
	return CleanText(MarkdownToText(s))
}

// CleanText decodes <br> tags and HTML entities, collapses three or more
// newlines into two and trims every line.
func CleanText(s string) string {
	if s == "" {
		return s
	}
	s = brTag.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = html.UnescapeString(s)
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(trimLines(s))
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

type plainRenderer struct {
	source []byte
}

func (r plainRenderer) blocks(n ast.Node, sep string) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := r.block(c); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func (r plainRenderer) block(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		var b strings.Builder
		r.inline(n, &b)
		return strings.TrimRight(b.String(), "\n")
	case *ast.List:
		return r.list(n)
	case *ast.Blockquote:
		return r.blocks(n, "\n\n")
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
		return ""
	default:
		return r.blocks(n, "\n\n")
	}
}

func (r plainRenderer) list(l *ast.List) string {
	sep := "\n\n"
	if l.IsTight {
		sep = "\n"
	}
	var items []string
	i := 0
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "- "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", l.Start+i)
		}
		i++

		lines := strings.Split(r.blocks(c, sep), "\n")
		indent := strings.Repeat(" ", len(marker))
		for j, line := range lines {
			switch {
			case j == 0:
				lines[j] = marker + line
			case line != "":
				lines[j] = indent + line
			}
		}
		items = append(items, strings.TrimRight(strings.Join(lines, "\n"), " "))
	}
	return strings.Join(items, sep)
}

func (r plainRenderer) inline(n ast.Node, b *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(util.UnescapePunctuations(c.Segment.Value(r.source)))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.CodeSpan:
			for t := c.FirstChild(); t != nil; t = t.NextSibling() {
				if seg, ok := t.(*ast.Text); ok {
					b.Write(seg.Segment.Value(r.source))
				}
			}
		case *ast.AutoLink:
			b.Write(c.URL(r.source))
		case *ast.RawHTML:
		default:
			r.inline(c, b)
		}
	}
}
