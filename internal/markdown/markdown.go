package markdown

import (
	"fmt"
	"strings"
)

// CreateMarkdownTable renders contents as a GitHub table. The first row is the header.
// Each column is padded to its widest cell, with a minimum of three characters,
// and short rows are filled with empty cells.
func CreateMarkdownTable(contents [][]string) string {
	columns := 0
	for _, row := range contents {
		columns = max(columns, len(row))
	}

	widths := make([]int, columns)
	for i := range widths {
		widths[i] = 3
	}

	escaped := make([][]string, len(contents))
	for r, row := range contents {
		escaped[r] = make([]string, columns)
		for c, cell := range row {
			cell = strings.ReplaceAll(cell, "|", "\\|")
			cell = strings.ReplaceAll(cell, "\n", " ")
			escaped[r][c] = cell
			widths[c] = max(widths[c], len(cell))
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for c, cell := range cells {
			fmt.Fprintf(&sb, "| %-*s ", widths[c], cell)
		}
		sb.WriteString("|\n")
	}

	for r, row := range escaped {
		writeRow(row)
		if r == 0 {
			rule := make([]string, columns)
			for c := range rule {
				rule[c] = strings.Repeat("-", widths[c])
			}
			writeRow(rule)
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// CodeSpan wraps s in backticks, widening the fence when s contains backticks itself.
func CodeSpan(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}
