package polaris

import (
	"html"
	"strings"
)

// htmlStyles is the stylesheet fragment emitted ahead of the first HTML
// table, for notebook-like environments.
const htmlStyles = `<style>
  .druid table {
    border: 1px solid black;
    border-collapse: collapse;
  }

  .druid th, .druid td {
    padding: 4px 1em ;
    text-align: left;
  }

  td.druid-right, th.druid-right {
    text-align: right;
  }

  td.druid-center, th.druid-center {
    text-align: center;
  }

  .druid .druid-left {
    text-align: left;
  }

  .druid-alert {
    color: red;
  }
</style>`

var htmlAlignClasses = []string{"druid-left", "druid-center", "druid-right"}

func htmlWrap(s string) string {
	return `<div class="druid">` + s + `</div>`
}

func htmlMessage(s string) string {
	return htmlWrap(html.EscapeString(s))
}

func htmlAlert(s string) string {
	return htmlWrap(`<span class="druid-alert">` + html.EscapeString(s) + `</span>`)
}

func startTag(tag string, align int) string {
	if align < 0 || align >= len(htmlAlignClasses) {
		return "<" + tag + ">"
	}
	return "<" + tag + ` class="` + htmlAlignClasses[align] + `">`
}

// htmlTable renders rows as an HTML table with alignment classes.
type htmlTable struct {
	baseTable
}

func newHTMLTable() *htmlTable {
	return &htmlTable{}
}

func (t *htmlTable) format(rows [][]interface{}) string {
	width := t.rowWidth(rows)
	if width == 0 {
		return ""
	}
	headers := t.padHeaders(width)
	rows = t.padRows(rows, width)
	align := t.findAlignments(rows, width)

	var out strings.Builder
	out.WriteString("<table>\n")
	out.WriteString(t.genHeader(headers, align))
	out.WriteString(t.genRows(rows, align))
	out.WriteString("\n</table>")
	return htmlWrap(out.String())
}

func (t *htmlTable) genHeader(headers []string, align []int) string {
	if len(headers) == 0 {
		return ""
	}
	var out strings.Builder
	out.WriteString("<tr>")
	for i, header := range headers {
		out.WriteString(startTag("th", align[i]))
		out.WriteString(html.EscapeString(header))
		out.WriteString("</th>")
	}
	out.WriteString("</tr>\n")
	return out.String()
}

func (t *htmlTable) genRows(rows [][]interface{}, align []int) string {
	htmlRows := make([]string, 0, len(rows))
	for _, row := range rows {
		var out strings.Builder
		out.WriteString("<tr>")
		for i, cell := range row {
			out.WriteString(startTag("td", align[i]))
			out.WriteString(html.EscapeString(cellText(cell)))
			out.WriteString("</td>")
		}
		out.WriteString("</tr>")
		htmlRows = append(htmlRows, out.String())
	}
	return strings.Join(htmlRows, "\n")
}
