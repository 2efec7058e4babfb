package extractor

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
)

// minColumnGap is the horizontal distance, in PDF points, that separates
// two text fragments into different cells of the same row.
const minColumnGap = 18.0

// minTableRows: a run of multi-cell rows shorter than this is regular
// text with odd spacing, not a table.
const minTableRows = 2

// extractTables detects tabular regions on a page from the horizontal
// layout of its text rows and renders each as an HTML fragment.
func extractTables(page pdf.Page, pageNum, indexOffset int) ([]models.Table, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("failed to read text rows: %w", err)
	}

	var tables []models.Table
	var current [][]string

	flush := func() {
		if len(current) >= minTableRows {
			cols := 0
			for _, row := range current {
				if len(row) > cols {
					cols = len(row)
				}
			}
			tables = append(tables, models.Table{
				Page:  pageNum,
				Index: indexOffset + len(tables),
				HTML:  RenderTable(current),
				Rows:  len(current),
				Cols:  cols,
			})
		}
		current = nil
	}

	for _, row := range rows {
		cells := splitCells(row)
		if len(cells) >= 2 {
			current = append(current, cells)
			continue
		}
		flush()
	}
	flush()

	return tables, nil
}

// splitCells groups the text fragments of one row into cells, starting a
// new cell whenever the horizontal gap to the previous fragment exceeds
// minColumnGap.
func splitCells(row *pdf.Row) []string {
	texts := append([]pdf.Text(nil), row.Content...)
	sort.Slice(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var cells []string
	var cell strings.Builder
	var prevEnd float64

	for i, t := range texts {
		if i > 0 && t.X-prevEnd > minColumnGap {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		}
		cell.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	if cell.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cell.String()))
	}
	return cells
}

// RenderTable renders rows as an HTML table. The first row becomes the
// header; missing cells render as empty strings.
func RenderTable(rows [][]string) string {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	var b strings.Builder
	b.WriteString("<table>")
	for rowIdx, row := range rows {
		tag := "td"
		if rowIdx == 0 {
			tag = "th"
		}
		b.WriteString("<tr>")
		for col := 0; col < cols; col++ {
			cell := ""
			if col < len(row) {
				cell = row[col]
			}
			fmt.Fprintf(&b, "<%s>%s</%s>", tag, html.EscapeString(cell), tag)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}
