package gormpolaris

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/implydata/polaris-client-go/polaris"
)

var errReadOnly = errors.New("polaris is read-only through SQL; ingest rows with the push API")

type connector struct {
	client *polaris.Client
}

func newConnector(client *polaris.Client) *connector {
	return &connector{client: client}
}

func (c *connector) Connect(context.Context) (driver.Conn, error) {
	return &polarisConn{client: c.client}, nil
}

func (c *connector) Driver() driver.Driver {
	return polarisDriver{}
}

type polarisDriver struct{}

func (polarisDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("polaris driver requires a Connector")
}

type polarisConn struct {
	client *polaris.Client
}

func (c *polarisConn) Prepare(query string) (driver.Stmt, error) {
	return &polarisStmt{conn: c, query: query}, nil
}

func (c *polarisConn) Close() error {
	return nil
}

func (c *polarisConn) Begin() (driver.Tx, error) {
	return nil, errReadOnly
}

func (c *polarisConn) PrepareContext(_ context.Context, query string) (driver.Stmt, error) {
	return c.Prepare(query)
}

func (c *polarisConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if !isReadQuery(query) {
		return nil, errReadOnly
	}
	_, err := c.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return polarisResult{rowsAffected: 0}, nil
}

func (c *polarisConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return c.query(ctx, query, args)
}

func (c *polarisConn) query(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if ctx != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}
	result, err := c.client.ExecuteSQLWithParams(query, namedValuesToInterfaces(args))
	if err != nil {
		return nil, err
	}
	return newResultRows(result), nil
}

type polarisStmt struct {
	conn  *polarisConn
	query string
}

func (s *polarisStmt) Close() error {
	return nil
}

func (s *polarisStmt) NumInput() int {
	return -1
}

func (s *polarisStmt) Exec(args []driver.Value) (driver.Result, error) {
	if !isReadQuery(s.query) {
		return nil, errReadOnly
	}
	return s.conn.ExecContext(context.Background(), s.query, valuesToNamed(args))
}

func (s *polarisStmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.conn.QueryContext(context.Background(), s.query, valuesToNamed(args))
}

type polarisResult struct {
	rowsAffected int64
}

func (r polarisResult) LastInsertId() (int64, error) {
	return 0, errReadOnly
}

func (r polarisResult) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

func namedValuesToInterfaces(args []driver.NamedValue) []interface{} {
	if len(args) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(args))
	for _, arg := range args {
		values = append(values, arg.Value)
	}
	return values
}

func valuesToNamed(args []driver.Value) []driver.NamedValue {
	if len(args) == 0 {
		return nil
	}
	named := make([]driver.NamedValue, 0, len(args))
	for i, arg := range args {
		named = append(named, driver.NamedValue{Ordinal: i + 1, Value: arg})
	}
	return named
}

func isReadQuery(query string) bool {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return false
	}
	upper := strings.ToUpper(trimmed)
	return strings.HasPrefix(upper, "SELECT") ||
		strings.HasPrefix(upper, "WITH") ||
		strings.HasPrefix(upper, "EXPLAIN") ||
		strings.HasPrefix(upper, "SHOW")
}
