package polaris

import "fmt"

var summaryLabels = []ColumnLabel{
	{Key: "name", Header: "Name"},
	{Key: "id", Header: "ID"},
	{Key: "version", Header: "Version"},
	{Key: "lastUpdateDateTime", Header: "Last Update"},
	{Key: "lastModifiedByUsername", Header: "Updated By"},
	{Key: "createdByUsername", Header: "Created By"},
	{Key: "timePartitioning", Header: "Time Partitioning"},
	{Key: "pushEndpointUrl", Header: "Push Endpoint"},
}

var detailLabels = append(summaryLabels[:len(summaryLabels):len(summaryLabels)],
	ColumnLabel{Key: "status", Header: "Status"},
	ColumnLabel{Key: "totalDataSize", Header: "Data Size (bytes)"},
	ColumnLabel{Key: "totalRows", Header: "Row Count"},
)

var schemaLabels = []ColumnLabel{
	{Key: "name", Header: "Name"},
	{Key: "type", Header: "Type"},
}

// Table is a client-side handle for one Polaris table, obtained from
// Client.CreateTable, Client.TableForName or Client.TableForID.
type Table struct {
	client *Client
	name   string
	id     string
	schema []Column
}

func newTable(client *Client, name, id string) *Table {
	return &Table{client: client, name: name, id: id}
}

// Client returns the client this table belongs to.
func (t *Table) Client() *Client {
	return t.client
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// ID returns the server-assigned table ID.
func (t *Table) ID() string {
	return t.id
}

// Description returns the table description.
func (t *Table) Description() (string, error) {
	info, err := t.client.ResolveTableName(t.name)
	if err != nil {
		return "", err
	}
	return info.Description, nil
}

// Summary returns the summary metadata for this table.
func (t *Table) Summary() (*TableSummary, error) {
	return t.client.GetTableSummary(t.id)
}

// Details returns the detail metadata for this table.
func (t *Table) Details() (*TableDetail, error) {
	return t.client.GetTableDetail(t.id)
}

// InputSchema returns the input schema used by the push API. Note that the
// input schema does not include the mandatory __time column in the current
// Polaris version.
func (t *Table) InputSchema() ([]Column, error) {
	details, err := t.Details()
	if err != nil {
		return nil, err
	}
	return details.InputSchema, nil
}

// Schema returns the query schema for this table, cached after the first
// call.
func (t *Table) Schema() ([]Column, error) {
	if t.schema != nil {
		return t.schema, nil
	}
	schemas, err := t.client.Schemas()
	if err != nil {
		return nil, err
	}
	schema, ok := schemas[t.name]
	if !ok {
		return nil, &NotFoundError{What: fmt.Sprintf("schema for table %q", t.name)}
	}
	t.schema = schema.Columns
	return t.schema, nil
}

// Insert pushes one or more rows to the table using the push API. The rows
// must match the table's input schema.
func (t *Table) Insert(rows []map[string]interface{}) error {
	return t.client.PushEvents(t.id, rows)
}

// Drop drops this table and all its data.
//
// Note that it may take Polaris a while to actually delete the table. If you
// want to immediately create a new one, poll Exists until it returns false.
// After this call the handle remains valid, but the only useful operation is
// Exists.
func (t *Table) Drop() error {
	return t.client.DropTable(t.id)
}

// Exists checks if the table still exists. Use this after dropping a table to
// detect when Polaris has completed the deletion process.
func (t *Table) Exists() (bool, error) {
	_, err := t.Details()
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// EnablePush enables push streaming for this table.
func (t *Table) EnablePush() error {
	return t.client.EnablePushForTable(t.id)
}

// DisablePush disables push streaming for this table.
func (t *Table) DisablePush() error {
	return t.client.DisablePushForTable(t.id)
}

// IsPushEnabled reports whether the table has a push endpoint.
func (t *Table) IsPushEnabled() (bool, error) {
	details, err := t.Details()
	if err != nil {
		return false, err
	}
	return details.PushEndpointURL != "", nil
}

func (t *Table) display() *Display {
	return t.client.Show().Display()
}

// ShowSummary displays the summary metadata as a key/value table.
func (t *Table) ShowSummary() error {
	summary, err := t.Summary()
	if err != nil {
		return err
	}
	obj, err := objectToMap(summary)
	if err != nil {
		return err
	}
	t.display().ShowObject(obj, summaryLabels)
	return nil
}

// ShowDetails displays the detail metadata as a key/value table.
func (t *Table) ShowDetails() error {
	details, err := t.Details()
	if err != nil {
		return err
	}
	obj, err := objectToMap(details)
	if err != nil {
		return err
	}
	t.display().ShowObject(obj, detailLabels)
	return nil
}

// ShowInputSchema displays the table input schema.
func (t *Table) ShowInputSchema() error {
	schema, err := t.InputSchema()
	if err != nil {
		return err
	}
	if len(schema) == 0 {
		return nil
	}
	objs, err := columnsToMaps(schema)
	if err != nil {
		return err
	}
	t.display().ShowObjectList(objs, schemaLabels)
	return nil
}

// ShowSchema displays the table query schema.
func (t *Table) ShowSchema() error {
	schema, err := t.Schema()
	if err != nil {
		return err
	}
	if len(schema) == 0 {
		return nil
	}
	objs, err := columnsToMaps(schema)
	if err != nil {
		return err
	}
	t.display().ShowObjectList(objs, schemaLabels)
	return nil
}

func columnsToMaps(columns []Column) ([]map[string]interface{}, error) {
	objs := make([]map[string]interface{}, 0, len(columns))
	for i := range columns {
		obj, err := objectToMap(&columns[i])
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}
