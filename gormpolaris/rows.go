package gormpolaris

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"

	"github.com/implydata/polaris-client-go/polaris"
)

type resultRows struct {
	columns []string
	rows    []polaris.Row
	index   int
}

func newResultRows(result *polaris.SQLResult) *resultRows {
	return &resultRows{
		columns: result.Columns,
		rows:    result.Rows,
		index:   0,
	}
}

func (r *resultRows) Columns() []string {
	return r.columns
}

func (r *resultRows) Close() error {
	return nil
}

func (r *resultRows) Next(dest []driver.Value) error {
	if r.index >= len(r.rows) {
		return io.EOF
	}
	row := r.rows[r.index]
	r.index++

	for i := range dest {
		if i >= len(r.columns) {
			dest[i] = nil
			continue
		}
		converted, err := convertValue(row[r.columns[i]])
		if err != nil {
			return err
		}
		dest[i] = converted
	}
	return nil
}

// convertValue maps a decoded JSON value to a driver.Value. The row-object
// response format carries no column types, so integral json.Number values
// become int64 and the rest float64.
func convertValue(value interface{}) (driver.Value, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case json.Number:
		return convertJSONNumber(v)
	case string:
		return v, nil
	case bool:
		return v, nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case []byte:
		return v, nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func convertJSONNumber(value json.Number) (driver.Value, error) {
	if v, err := value.Int64(); err == nil {
		return v, nil
	}
	if v, err := value.Float64(); err == nil {
		return v, nil
	}
	return value.String(), nil
}
