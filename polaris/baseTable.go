package polaris

import (
	"encoding/json"
	"fmt"
)

// Column alignments for table rendering.
const (
	AlignLeft = iota
	AlignCenter
	AlignRight
)

// alignUnknown marks a column whose alignment is inferred from its values.
const alignUnknown = -1

type tableFormatter interface {
	setHeaders(headers []string)
	setAlignments(align []int)
	format(rows [][]interface{}) string
}

// baseTable holds the header, alignment and padding logic shared by the text
// and HTML renderers.
type baseTable struct {
	headers []string
	align   []int
}

func (t *baseTable) setHeaders(headers []string) {
	t.headers = headers
}

func (t *baseTable) setAlignments(align []int) {
	t.align = align
}

// rowWidth returns the widest row, counting the headers as a row.
func (t *baseTable) rowWidth(rows [][]interface{}) int {
	width := len(t.headers)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// findAlignments fills in unknown column alignments from the first non-nil
// value in each column: strings align left, everything else right. Columns
// with no values default left.
func (t *baseTable) findAlignments(rows [][]interface{}, width int) []int {
	align := make([]int, width)
	unknown := 0
	for i := range align {
		if i < len(t.align) {
			align[i] = t.align[i]
		} else {
			align[i] = alignUnknown
		}
		if align[i] == alignUnknown {
			unknown++
		}
	}
	if unknown == 0 {
		return align
	}
	for _, row := range rows {
		for i, v := range row {
			if i >= width || align[i] != alignUnknown || v == nil {
				continue
			}
			if _, ok := v.(string); ok {
				align[i] = AlignLeft
			} else {
				align[i] = AlignRight
			}
			unknown--
			if unknown == 0 {
				return align
			}
		}
	}
	for i := range align {
		if align[i] == alignUnknown {
			align[i] = AlignLeft
		}
	}
	return align
}

// padRows pads every row to the given width with nil cells.
func (t *baseTable) padRows(rows [][]interface{}, width int) [][]interface{} {
	padded := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		if len(row) >= width {
			padded = append(padded, row)
			continue
		}
		full := make([]interface{}, width)
		copy(full, row)
		padded = append(padded, full)
	}
	return padded
}

// padHeaders pads the headers to the given width with empty strings, or
// returns nil when there are no headers to show.
func (t *baseTable) padHeaders(width int) []string {
	if len(t.headers) == 0 {
		return nil
	}
	if len(t.headers) >= width {
		return t.headers
	}
	headers := make([]string, width)
	copy(headers, t.headers)
	return headers
}

// cellText renders one cell value. nil renders empty.
func cellText(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
