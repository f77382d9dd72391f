package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ParsePipeTables parses rendered Markdown and returns the cell text of
// every pipe table, one row-major matrix per table in document order.
func ParsePipeTables(source string) ([][][]string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var tables [][][]string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*east.Table); !ok {
			return ast.WalkContinue, nil
		}
		tables = append(tables, tableCells(n, src))
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// tableCells flattens one table node into rows of cell text. The header
// node is a row like any other.
func tableCells(table ast.Node, src []byte) [][]string {
	var rows [][]string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *east.TableHeader, *east.TableRow:
		default:
			continue
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, cellText(cell, src))
		}
		rows = append(rows, cells)
	}
	return rows
}

// cellText concatenates the text segments under one cell node
func cellText(cell ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(cell, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
