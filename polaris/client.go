package polaris

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	log "github.com/sirupsen/logrus"
)

const (
	reqTables     = "/tables"
	reqTable      = reqTables + "/%s"
	reqSchemas    = "/schemas"
	reqProjects   = "/projects"
	reqQuery      = reqProjects + "/%s/query/sql"
	reqEvents     = "/events/%s"
	reqEnablePush = reqTable + "/ingestion/streaming"
)

// DefaultProjectName is the name Polaris gives the project created with a
// new organization.
const DefaultProjectName = "default"

// Client is a connection to a Polaris organization, normally created through
// calls to NewWithConfig or NewFromProfile.
type Client struct {
	transport      clientTransport
	tokens         *tokenSource
	compressEvents bool

	mu        sync.Mutex
	projectID string
	show      *Show
}

// Trace turns request logging on or off.
func (c *Client) Trace(flag bool) {
	c.transport.setTrace(flag)
}

// RenewToken renews the temporary OAuth token using the client ID and secret
// for this client. Normally done automatically internally, most clients never
// need to call this method.
//
// See https://docs.imply.io/polaris/oauth/
func (c *Client) RenewToken() error {
	return c.tokens.renew()
}

//-------- Tables --------

// CreateTable creates a table.
//
// Calls POST /v1/tables
//
// See https://docs.imply.io/polaris/api-create-table/
func (c *Client) CreateTable(table TableRequest) (*Table, error) {
	if strings.TrimSpace(table.Name) == "" {
		return nil, fmt.Errorf("table name is required")
	}
	body, err := json.Marshal(table)
	if err != nil {
		return nil, err
	}
	resp, err := c.transport.execute(&restRequest{
		method: http.MethodPost,
		path:   reqTables,
		body:   body,
	})
	if err != nil {
		log.Errorf("Unable to create table %s, Error: %v", table.Name, err)
		return nil, err
	}
	var detail TableDetail
	if err = decodeJSONWithNumber(resp.body, &detail); err != nil {
		return nil, fmt.Errorf("unable to decode create table response: %v", err)
	}
	return newTable(c, detail.Name, detail.ID), nil
}

// DropTable drops a table given its table ID.
//
// Polaris returns OK even if the table does not exist. Check for existence
// using GetTableSummary before dropping if your app needs to distinguish
// these two cases.
func (c *Client) DropTable(tableID string) error {
	_, err := c.transport.execute(&restRequest{
		method: http.MethodDelete,
		path:   reqTable,
		args:   []string{tableID},
	})
	return err
}

// ListTableSummaries returns the summary information for all tables.
//
// Calls GET /v1/tables?detail=summary
//
// See https://docs.imply.io/polaris/TablesApi/#list-available-tables
func (c *Client) ListTableSummaries() ([]TableSummary, error) {
	resp, err := c.transport.execute(&restRequest{
		method: http.MethodGet,
		path:   reqTables,
		params: url.Values{"detail": {"summary"}},
	})
	if err != nil {
		return nil, err
	}
	var list tableSummaryList
	if err = decodeJSONWithNumber(resp.body, &list); err != nil {
		return nil, fmt.Errorf("unable to decode table list: %v", err)
	}
	return list.Values, nil
}

// ListTableDetails returns the detail information for all tables.
//
// Calls GET /v1/tables?detail=detailed
func (c *Client) ListTableDetails() ([]TableDetail, error) {
	resp, err := c.transport.execute(&restRequest{
		method: http.MethodGet,
		path:   reqTables,
		params: url.Values{"detail": {"detailed"}},
	})
	if err != nil {
		return nil, err
	}
	var list tableDetailList
	if err = decodeJSONWithNumber(resp.body, &list); err != nil {
		return nil, fmt.Errorf("unable to decode table list: %v", err)
	}
	return list.Values, nil
}

// ResolveTableName returns table summary information given a table name, or
// a NotFoundError if the table is not defined.
//
// Calls GET /v1/tables?name={tableName}
//
// See https://docs.imply.io/polaris/api-table-id/
func (c *Client) ResolveTableName(tableName string) (*TableSummary, error) {
	resp, err := c.transport.execute(&restRequest{
		method: http.MethodGet,
		path:   reqTables,
		params: url.Values{"name": {tableName}},
	})
	if err != nil {
		return nil, err
	}
	var list tableSummaryList
	if err = decodeJSONWithNumber(resp.body, &list); err != nil {
		return nil, fmt.Errorf("unable to decode table list: %v", err)
	}
	if len(list.Values) == 0 {
		return nil, &NotFoundError{What: fmt.Sprintf("table %q", tableName)}
	}
	return &list.Values[0], nil
}

// TableID returns the ID for a table given the table name.
func (c *Client) TableID(tableName string) (string, error) {
	info, err := c.ResolveTableName(tableName)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// GetTableSummary returns the summary metadata for a table.
//
// Calls GET /v1/tables/{tableID}?detail=summary
//
// See https://docs.imply.io/polaris/TablesApi/#get-a-tables-metadata
func (c *Client) GetTableSummary(tableID string) (*TableSummary, error) {
	resp, err := c.transport.execute(&restRequest{
		method: http.MethodGet,
		path:   reqTable,
		args:   []string{tableID},
		params: url.Values{"detail": {"summary"}},
	})
	if err != nil {
		return nil, err
	}
	var summary TableSummary
	if err = decodeJSONWithNumber(resp.body, &summary); err != nil {
		return nil, fmt.Errorf("unable to decode table summary: %v", err)
	}
	return &summary, nil
}

// GetTableDetail returns the detail metadata for a table.
//
// Calls GET /v1/tables/{tableID}?detail=detailed
func (c *Client) GetTableDetail(tableID string) (*TableDetail, error) {
	resp, err := c.transport.execute(&restRequest{
		method: http.MethodGet,
		path:   reqTable,
		args:   []string{tableID},
		params: url.Values{"detail": {"detailed"}},
	})
	if err != nil {
		return nil, err
	}
	var detail TableDetail
	if err = decodeJSONWithNumber(resp.body, &detail); err != nil {
		return nil, fmt.Errorf("unable to decode table detail: %v", err)
	}
	return &detail, nil
}

// TableForName returns a Table handle for a table given its name. Returns a
// NotFoundError if the name is undefined.
func (c *Client) TableForName(tableName string) (*Table, error) {
	info, err := c.ResolveTableName(tableName)
	if err != nil {
		return nil, err
	}
	return newTable(c, info.Name, info.ID), nil
}

// TableForID returns a Table handle for a table given its ID.
func (c *Client) TableForID(tableID string) (*Table, error) {
	summary, err := c.GetTableSummary(tableID)
	if err != nil {
		return nil, err
	}
	return newTable(c, summary.Name, summary.ID), nil
}

// Schemas returns the query schemas for all tables, keyed by table name.
//
// Calls GET /v1/schemas
//
// See https://docs.imply.io/polaris/SchemasApi/#get-table-schemas
func (c *Client) Schemas() (map[string]TableSchema, error) {
	resp, err := c.transport.execute(&restRequest{
		method: http.MethodGet,
		path:   reqSchemas,
	})
	if err != nil {
		return nil, err
	}
	var schemas map[string]TableSchema
	if err = decodeJSONWithNumber(resp.body, &schemas); err != nil {
		return nil, fmt.Errorf("unable to decode schemas: %v", err)
	}
	return schemas, nil
}

//-------- Events --------

// PushEvents pushes (inserts) events into a table using its input schema.
//
// Each event must include the __time column, along with the other columns
// defined in the input schema. Events older than the current retention window
// are silently ignored by Polaris. A nil or empty batch is a no-op.
//
// The wire format is line-delimited JSON (https://jsonlines.org/).
//
// See https://docs.imply.io/polaris/api-stream/
func (c *Client) PushEvents(tableID string, events []map[string]interface{}) error {
	if len(events) == 0 {
		return nil
	}
	var lines bytes.Buffer
	encoder := json.NewEncoder(&lines)
	for _, event := range events {
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("unable to encode event: %v", err)
		}
	}
	req := &restRequest{
		method: http.MethodPost,
		path:   reqEvents,
		args:   []string{tableID},
		body:   lines.Bytes(),
	}
	if c.compressEvents {
		var compressed bytes.Buffer
		zw := gzip.NewWriter(&compressed)
		if _, err := zw.Write(lines.Bytes()); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		req.body = compressed.Bytes()
		req.header = map[string]string{"Content-Encoding": "gzip"}
	}
	_, err := c.transport.execute(req)
	if err != nil {
		log.Errorf("Unable to push events to table %s, Error: %v", tableID, err)
	}
	return err
}

// EnablePushForTable enables push streaming for a table.
func (c *Client) EnablePushForTable(tableID string) error {
	_, err := c.transport.execute(&restRequest{
		method: http.MethodPost,
		path:   reqEnablePush,
		args:   []string{tableID},
	})
	return err
}

// DisablePushForTable disables push streaming for a table.
func (c *Client) DisablePushForTable(tableID string) error {
	_, err := c.transport.execute(&restRequest{
		method: http.MethodDelete,
		path:   reqEnablePush,
		args:   []string{tableID},
	})
	return err
}

//-------- Projects --------

// Projects returns the list of projects.
//
// Calls GET /v1/projects
//
// See https://docs.imply.io/polaris/api-query/#get-project-id
func (c *Client) Projects() ([]Project, error) {
	resp, err := c.transport.execute(&restRequest{
		method: http.MethodGet,
		path:   reqProjects,
	})
	if err != nil {
		return nil, err
	}
	var projects []Project
	if err = decodeJSONWithNumber(resp.body, &projects); err != nil {
		return nil, fmt.Errorf("unable to decode projects: %v", err)
	}
	return projects, nil
}

// Project returns the project with the given name, matched case-insensitively,
// or a NotFoundError if no project has that name.
func (c *Client) Project(projectName string) (*Project, error) {
	projects, err := c.Projects()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if strings.EqualFold(projects[i].Metadata.Name, projectName) {
			return &projects[i], nil
		}
	}
	return nil, &NotFoundError{What: fmt.Sprintf("project %q", projectName)}
}

// DefaultProject returns the project Polaris creates with a new organization.
func (c *Client) DefaultProject() (*Project, error) {
	return c.Project(DefaultProjectName)
}

// SetProject selects the project used for SQL queries.
func (c *Client) SetProject(projectName string) error {
	proj, err := c.Project(projectName)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.projectID = proj.Metadata.UID
	c.mu.Unlock()
	return nil
}

// inferProject picks the query project when the caller never set one: a lone
// project wins, else the default project.
func (c *Client) inferProject() (string, error) {
	projects, err := c.Projects()
	if err != nil {
		return "", err
	}
	if len(projects) == 0 {
		return "", &NotFoundError{What: "any project"}
	}
	if len(projects) == 1 {
		return projects[0].Metadata.UID, nil
	}
	for i := range projects {
		if projects[i].Metadata.Name == DefaultProjectName {
			return projects[i].Metadata.UID, nil
		}
	}
	return "", fmt.Errorf("more than one project defined: call SetProject to pick one")
}

func (c *Client) queryProjectID() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.projectID != "" {
		return c.projectID, nil
	}
	projectID, err := c.inferProject()
	if err != nil {
		return "", err
	}
	c.projectID = projectID
	return projectID, nil
}

//-------- SQL --------

// ExecuteSQL executes a Druid SQL query and returns the results.
//
// Queries execute within the context of a project. This method uses the
// project selected with SetProject, else the lone or default project.
//
// Calls POST /v1/projects/{projectID}/query/sql
//
// The result schema comes from the first row object: a query that returns no
// rows yields a SQLResult with empty Columns, so the "LIMIT 0" trick does not
// reveal the schema through this API.
//
// See https://docs.imply.io/polaris/api-query/
func (c *Client) ExecuteSQL(stmt string) (*SQLResult, error) {
	projectID, err := c.queryProjectID()
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(map[string]string{"query": stmt})
	if err != nil {
		return nil, err
	}
	resp, err := c.transport.execute(&restRequest{
		method: http.MethodPost,
		path:   reqQuery,
		args:   []string{projectID},
		body:   body,
	})
	if err != nil {
		log.Errorf("Caught exception to execute SQL query %s, Error: %v", stmt, err)
		return nil, err
	}
	var rows []Row
	if err = decodeJSONWithNumber(resp.body, &rows); err != nil {
		return nil, fmt.Errorf("unable to decode query response: %v", err)
	}
	columns, err := firstRowColumns(resp.body)
	if err != nil {
		return nil, fmt.Errorf("unable to read query response columns: %v", err)
	}
	return &SQLResult{Columns: columns, Rows: rows}, nil
}

// ExecuteSQLWithParams executes a Druid SQL query with ? placeholders bound
// to the given values on the client side.
func (c *Client) ExecuteSQLWithParams(stmt string, params []interface{}) (*SQLResult, error) {
	if len(params) == 0 {
		return c.ExecuteSQL(stmt)
	}
	query, err := formatQuery(stmt, params)
	if err != nil {
		return nil, err
	}
	return c.ExecuteSQL(query)
}
