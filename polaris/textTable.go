package polaris

import "strings"

// textTable renders rows as plain text with padded, aligned columns and a
// dashed rule under the headers.
type textTable struct {
	baseTable
}

func newTextTable() *textTable {
	return &textTable{}
}

func (t *textTable) format(rows [][]interface{}) string {
	width := t.rowWidth(rows)
	if width == 0 {
		return ""
	}
	headers := t.padHeaders(width)
	rows = t.padRows(rows, width)
	align := t.findAlignments(rows, width)

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, width)
		for i, v := range row {
			line[i] = cellText(v)
		}
		cells = append(cells, line)
	}

	colWidths := make([]int, width)
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, line := range cells {
		for i, cell := range line {
			if len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	var out strings.Builder
	if headers != nil {
		writeTextRow(&out, headers, colWidths, align)
		rule := make([]string, width)
		for i := range rule {
			rule[i] = strings.Repeat("-", colWidths[i])
		}
		writeTextRow(&out, rule, colWidths, align)
	}
	for _, line := range cells {
		writeTextRow(&out, line, colWidths, align)
	}
	return strings.TrimRight(out.String(), "\n")
}

func writeTextRow(out *strings.Builder, cells []string, colWidths []int, align []int) {
	var line strings.Builder
	for i, cell := range cells {
		if i > 0 {
			line.WriteString("  ")
		}
		line.WriteString(alignCell(cell, colWidths[i], align[i]))
	}
	out.WriteString(strings.TrimRight(line.String(), " "))
	out.WriteString("\n")
}

func alignCell(cell string, width, align int) string {
	pad := width - len(cell)
	if pad <= 0 {
		return cell
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + cell
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
	default:
		return cell + strings.Repeat(" ", pad)
	}
}
