package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// wikiRenderer emits wiki markup for every node kind goldmark and the GFM
// extensions produce. It is stateless.
type wikiRenderer struct {
	hardWraps      bool
	headingAnchors bool
}

var _ renderer.NodeRenderer = (*wikiRenderer)(nil)

// RegisterFuncs implements renderer.NodeRenderer.
func (r *wikiRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	// blocks
	reg.Register(ast.KindDocument, r.renderDocument)
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindTextBlock, r.renderTextBlock)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)

	// inlines
	reg.Register(ast.KindText, r.renderText)
	reg.Register(ast.KindString, r.renderString)
	reg.Register(ast.KindEmphasis, r.renderEmphasis)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)

	// GFM
	reg.Register(extast.KindStrikethrough, r.renderStrikethrough)
	reg.Register(extast.KindTable, r.renderTable)
	reg.Register(extast.KindTableHeader, r.renderTableRow)
	reg.Register(extast.KindTableRow, r.renderTableRow)
	reg.Register(extast.KindTableCell, r.renderTableCell)
	reg.Register(extast.KindTaskCheckBox, r.renderTaskCheckBox)
}

func (r *wikiRenderer) renderDocument(util.BufWriter, []byte, ast.Node, bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if entering {
		fmt.Fprintf(w, "h%d. ", n.Level)
		if r.headingAnchors {
			if name := anchorName(string(n.Text(source))); name != "" {
				fmt.Fprintf(w, "{anchor:%s}", name)
			}
		}
		return ast.WalkContinue, nil
	}
	closeBlock(w, node)
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderParagraph(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		closeBlock(w, node)
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderTextBlock(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderThematicBreak(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("----")
		closeBlock(w, node)
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderBlockquote(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("{quote}\n")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("{quote}")
	closeBlock(w, node)
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("{code}\n")
	writeLines(w, source, node)
	_, _ = w.WriteString("{code}")
	closeBlock(w, node)
	return ast.WalkSkipChildren, nil
}

func (r *wikiRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	if lang := n.Language(source); len(lang) > 0 {
		fmt.Fprintf(w, "{code:language=%s}\n", lang)
	} else {
		_, _ = w.WriteString("{code}\n")
	}
	writeLines(w, source, node)
	_, _ = w.WriteString("{code}")
	closeBlock(w, node)
	return ast.WalkSkipChildren, nil
}

func (r *wikiRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.HTMLBlock)
	writeLines(w, source, node)
	if n.HasClosure() {
		closure := n.ClosureLine
		_, _ = w.Write(closure.Value(source))
	}
	if node.NextSibling() != nil && !inListItem(node) {
		_ = w.WriteByte('\n')
	}
	return ast.WalkSkipChildren, nil
}

func (r *wikiRenderer) renderList(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering && !inListItem(node) && node.NextSibling() != nil {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderListItem(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(listPrefix(node))
		_ = w.WriteByte(' ')
		return ast.WalkContinue, nil
	}
	if node.ChildCount() == 0 {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	value := n.Segment.Value(source)
	if n.IsRaw() {
		_, _ = w.Write(value)
	} else {
		writeEscaped(w, resolveText(value), inTableCell(node))
	}
	switch {
	case n.HardLineBreak():
		_ = w.WriteByte('\n')
	case n.SoftLineBreak():
		if r.hardWraps {
			_ = w.WriteByte('\n')
		} else {
			_ = w.WriteByte(' ')
		}
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderString(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.String)
	if n.IsRaw() || n.IsCode() {
		_, _ = w.Write(n.Value)
	} else {
		writeEscaped(w, n.Value, inTableCell(node))
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderEmphasis(w util.BufWriter, _ []byte, node ast.Node, _ bool) (ast.WalkStatus, error) {
	n := node.(*ast.Emphasis)
	if n.Level >= 2 {
		_ = w.WriteByte('*')
	} else {
		_ = w.WriteByte('_')
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("{{")
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			_, _ = w.Write(v.Segment.Value(source))
		case *ast.String:
			_, _ = w.Write(v.Value)
		}
	}
	_, _ = w.WriteString("}}")
	return ast.WalkSkipChildren, nil
}

func (r *wikiRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if entering {
		_ = w.WriteByte('[')
		if n.ChildCount() == 0 {
			_, _ = w.Write(n.Destination)
			_ = w.WriteByte(']')
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	}
	_ = w.WriteByte('|')
	_, _ = w.Write(n.Destination)
	_ = w.WriteByte(']')
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	target := string(n.URL(source))
	if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(target), "mailto:") {
		target = "mailto:" + target
	}
	_ = w.WriteByte('[')
	_, _ = w.WriteString(target)
	_ = w.WriteByte(']')
	return ast.WalkSkipChildren, nil
}

func (r *wikiRenderer) renderImage(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	_ = w.WriteByte('!')
	_, _ = w.Write(n.Destination)
	_ = w.WriteByte('!')
	return ast.WalkSkipChildren, nil
}

func (r *wikiRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.RawHTML)
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		_, _ = w.Write(segment.Value(source))
	}
	return ast.WalkSkipChildren, nil
}

func (r *wikiRenderer) renderStrikethrough(w util.BufWriter, _ []byte, _ ast.Node, _ bool) (ast.WalkStatus, error) {
	_ = w.WriteByte('-')
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderTable(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering && node.NextSibling() != nil {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderTableRow(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		return ast.WalkContinue, nil
	}
	if node.Kind() == extast.KindTableHeader {
		_, _ = w.WriteString("||\n")
	} else {
		_, _ = w.WriteString("|\n")
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderTableCell(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if parent := node.Parent(); parent != nil && parent.Kind() == extast.KindTableHeader {
		_, _ = w.WriteString("||")
	} else {
		_ = w.WriteByte('|')
	}
	return ast.WalkContinue, nil
}

func (r *wikiRenderer) renderTaskCheckBox(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if node.(*extast.TaskCheckBox).IsChecked {
		_, _ = w.WriteString("(/) ")
	} else {
		_, _ = w.WriteString("(x) ")
	}
	return ast.WalkContinue, nil
}

// closeBlock ends a block line and separates it from the next block with a
// blank line. Blocks inside list items stay contiguous so the list is not
// broken.
func closeBlock(w util.BufWriter, node ast.Node) {
	_ = w.WriteByte('\n')
	if node.NextSibling() != nil && !inListItem(node) {
		_ = w.WriteByte('\n')
	}
}

func writeLines(w util.BufWriter, source []byte, node ast.Node) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(line.Value(source))
	}
}

func listPrefix(item ast.Node) string {
	var markers []byte
	for p := item.Parent(); p != nil; p = p.Parent() {
		if list, ok := p.(*ast.List); ok {
			if list.IsOrdered() {
				markers = append(markers, '#')
			} else {
				markers = append(markers, '*')
			}
		}
	}
	for i, j := 0, len(markers)-1; i < j; i, j = i+1, j-1 {
		markers[i], markers[j] = markers[j], markers[i]
	}
	return string(markers)
}

func inListItem(node ast.Node) bool {
	for p := node.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindListItem {
			return true
		}
	}
	return false
}

func inTableCell(node ast.Node) bool {
	for p := node.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == extast.KindTableCell {
			return true
		}
	}
	return false
}

// resolveText drops markdown backslash escapes and resolves character
// references so only wiki escaping remains on the way out.
func resolveText(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}

func writeEscaped(w util.BufWriter, value []byte, inTable bool) {
	for _, b := range value {
		switch b {
		case '{', '}', '[', ']':
			_ = w.WriteByte('\\')
		case '|':
			if inTable {
				_ = w.WriteByte('\\')
			}
		}
		_ = w.WriteByte(b)
	}
}
