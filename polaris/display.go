package polaris

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

const (
	textFormat = iota
	htmlFormat
)

// ColumnLabel maps an object key to the header displayed for it. Order in a
// ColumnLabel slice is the column order of the rendered table.
type ColumnLabel struct {
	Key    string
	Header string
}

// Display renders API objects as either plain-text or HTML tables.
type Display struct {
	out             io.Writer
	format          int
	htmlInitialized bool
}

func newDisplay() *Display {
	return &Display{out: os.Stdout, format: textFormat}
}

// SetOutput redirects rendered output, which goes to stdout by default.
func (d *Display) SetOutput(out io.Writer) {
	d.out = out
}

// Text switches to plain-text rendering.
func (d *Display) Text() {
	d.format = textFormat
}

// HTML switches to HTML rendering. The stylesheet fragment is emitted once,
// ahead of the first table, for use in notebook-like environments.
func (d *Display) HTML() {
	d.format = htmlFormat
	if !d.htmlInitialized {
		fmt.Fprintln(d.out, htmlStyles)
		d.htmlInitialized = true
	}
}

// Styles returns the stylesheet fragment used by the HTML renderer, for
// embedding in pages that render tables themselves.
func (d *Display) Styles() string {
	return htmlStyles
}

func (d *Display) table() tableFormatter {
	if d.format == htmlFormat {
		return newHTMLTable()
	}
	return newTextTable()
}

// Message displays an informational message.
func (d *Display) Message(msg string) {
	if d.format == htmlFormat {
		fmt.Fprintln(d.out, htmlMessage(msg))
		return
	}
	fmt.Fprintln(d.out, msg)
}

// Alert displays an error message.
func (d *Display) Alert(msg string) {
	if d.format == htmlFormat {
		fmt.Fprintln(d.out, htmlAlert(msg))
		return
	}
	fmt.Fprintln(d.out, msg)
}

// ShowObjectList displays one table row per object. When cols is nil the
// columns are the keys of the first object, sorted.
func (d *Display) ShowObjectList(objects []map[string]interface{}, cols []ColumnLabel) {
	if cols == nil {
		cols = inferKeys(objects...)
	}
	rows := make([][]interface{}, 0, len(objects))
	for _, obj := range objects {
		row := make([]interface{}, 0, len(cols))
		for _, col := range cols {
			row = append(row, obj[col.Key])
		}
		rows = append(rows, row)
	}
	headers := make([]string, 0, len(cols))
	for _, col := range cols {
		headers = append(headers, col.Header)
	}
	d.ShowTable(rows, headers)
}

// ShowObject displays a single object as a key/value table. When labels is
// nil the keys of the object are used, sorted.
func (d *Display) ShowObject(obj map[string]interface{}, labels []ColumnLabel) {
	if labels == nil {
		labels = inferKeys(obj)
	}
	rows := make([][]interface{}, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, []interface{}{label.Header, obj[label.Key]})
	}
	d.ShowTable(rows, []string{"Key", "Value"})
}

// ShowTable displays raw rows under the given headers.
func (d *Display) ShowTable(rows [][]interface{}, headers []string) {
	table := d.table()
	table.setHeaders(headers)
	fmt.Fprintln(d.out, table.format(rows))
}

// inferKeys derives column labels from object keys. Go maps have no stable
// iteration order, so the keys are sorted.
func inferKeys(objects ...map[string]interface{}) []ColumnLabel {
	if len(objects) == 0 {
		return nil
	}
	keys := make([]string, 0, len(objects[0]))
	for key := range objects[0] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	cols := make([]ColumnLabel, 0, len(keys))
	for _, key := range keys {
		cols = append(cols, ColumnLabel{Key: key, Header: key})
	}
	return cols
}

// objectToMap flattens a typed API object to a map keyed by its JSON field
// names, so the Display helpers can address fields by ColumnLabel key.
func objectToMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var obj map[string]interface{}
	if err = decodeJSONWithNumber(raw, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}
