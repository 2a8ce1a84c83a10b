package polaris

import "encoding/json"

// TableRequest is the payload for creating a table.
//
// See https://docs.imply.io/polaris/TablesApi/#create-a-table
type TableRequest struct {
	Name             string   `json:"name"`
	Type             string   `json:"type,omitempty"`
	Description      string   `json:"description,omitempty"`
	TimePartitioning string   `json:"timePartitioning,omitempty"`
	InputSchema      []Column `json:"inputSchema,omitempty"`
}

// Column is one column of a table or input schema.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TableSummary is the summary metadata for a table.
type TableSummary struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Description            string `json:"description,omitempty"`
	Version                int64  `json:"version,omitempty"`
	LastUpdateDateTime     string `json:"lastUpdateDateTime,omitempty"`
	CreatedByUsername      string `json:"createdByUsername,omitempty"`
	LastModifiedByUsername string `json:"lastModifiedByUsername,omitempty"`
	TimePartitioning       string `json:"timePartitioning,omitempty"`
	PushEndpointURL        string `json:"pushEndpointUrl,omitempty"`
}

// TableDetail is the detail metadata for a table. The input schema does not
// include the mandatory __time column in the current Polaris version.
type TableDetail struct {
	TableSummary
	Status             string   `json:"status,omitempty"`
	TotalDataSizeBytes int64    `json:"totalDataSize,omitempty"`
	TotalRows          int64    `json:"totalRows,omitempty"`
	InputSchema        []Column `json:"inputSchema,omitempty"`
}

// TableSchema is the query schema of one table as returned by the Schemas API.
type TableSchema struct {
	Columns []Column `json:"columns"`
}

// Listing endpoints wrap their result in a values envelope.
type tableSummaryList struct {
	Values []TableSummary `json:"values"`
}

type tableDetailList struct {
	Values []TableDetail `json:"values"`
}

// Project is one Polaris project. Queries execute within the context of a
// project.
type Project struct {
	Metadata ProjectMetadata `json:"metadata"`
	Spec     ProjectSpec     `json:"spec"`
	Status   ProjectStatus   `json:"status"`
}

// ProjectMetadata identifies a project.
type ProjectMetadata struct {
	Name string `json:"name"`
	UID  string `json:"uid"`
}

// ProjectSpec is the desired configuration of a project.
type ProjectSpec struct {
	Plan         string `json:"plan"`
	DesiredState string `json:"desiredState,omitempty"`
}

// ProjectStatus is the observed state of a project.
type ProjectStatus struct {
	State        string `json:"state"`
	CurrentBytes int64  `json:"currentBytes"`
	MaxBytes     int64  `json:"maxBytes"`
}

// Row is one SQL result row, keyed by column name. Numeric values are
// json.Number so long values survive the trip through JSON.
type Row map[string]interface{}

// SQLResult is the result of a SQL query. Columns preserves the column order
// of the first result row; it is empty when the query returned no rows, since
// the row-object response format carries no schema of its own.
type SQLResult struct {
	Columns []string
	Rows    []Row
}

// GetRowCount returns how many rows in the SQLResult
func (r *SQLResult) GetRowCount() int {
	return len(r.Rows)
}

// GetColumnCount returns how many columns in the SQLResult
func (r *SQLResult) GetColumnCount() int {
	return len(r.Columns)
}

// GetColumnName returns column name given column index
func (r *SQLResult) GetColumnName(columnIndex int) string {
	return r.Columns[columnIndex]
}

// Get returns a SQLResult entry given row index and column index
func (r *SQLResult) Get(rowIndex int, columnIndex int) interface{} {
	return r.Rows[rowIndex][r.Columns[columnIndex]]
}

// GetString returns a SQLResult string entry given row index and column index
func (r *SQLResult) GetString(rowIndex int, columnIndex int) string {
	return r.Get(rowIndex, columnIndex).(string)
}

// GetInt returns a SQLResult int entry given row index and column index
func (r *SQLResult) GetInt(rowIndex int, columnIndex int) int32 {
	val, _ := r.Get(rowIndex, columnIndex).(json.Number).Int64()
	return int32(val)
}

// GetLong returns a SQLResult long entry given row index and column index
func (r *SQLResult) GetLong(rowIndex int, columnIndex int) int64 {
	val, _ := r.Get(rowIndex, columnIndex).(json.Number).Int64()
	return val
}

// GetFloat returns a SQLResult float entry given row index and column index
func (r *SQLResult) GetFloat(rowIndex int, columnIndex int) float32 {
	val, _ := r.Get(rowIndex, columnIndex).(json.Number).Float64()
	return float32(val)
}

// GetDouble returns a SQLResult double entry given row index and column index
func (r *SQLResult) GetDouble(rowIndex int, columnIndex int) float64 {
	val, _ := r.Get(rowIndex, columnIndex).(json.Number).Float64()
	return val
}
