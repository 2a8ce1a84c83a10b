package gormpolaris

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/implydata/polaris-client-go/polaris"
)

// newQueryTestClient starts a mock Polaris that serves the token endpoint, a
// single-project listing, and the given SQL query handler.
func newQueryTestClient(t *testing.T, queryHandler http.HandlerFunc) *polaris.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v1/projects", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `[{"metadata":{"name":"default","uid":"proj-1"},"spec":{"plan":"free"},"status":{"state":"RUNNING"}}]`)
	})
	if queryHandler != nil {
		mux.HandleFunc("/v1/projects/proj-1/query/sql", queryHandler)
	}
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	client, err := polaris.NewWithConfig(&polaris.ClientConfig{
		Org:           "test",
		ClientID:      "id",
		ClientSecret:  "secret",
		APIEndpoint:   ts.URL + "/v1",
		TokenEndpoint: ts.URL + "/token",
	})
	require.NoError(t, err)
	return client
}

func TestPolarisDriverOpenRequiresConnector(t *testing.T) {
	_, err := polarisDriver{}.Open("")
	require.Error(t, err)
}

func TestConnectorAndConnBasics(t *testing.T) {
	connector := newConnector(&polaris.Client{})
	driverConn, err := connector.Connect(context.Background())
	require.NoError(t, err)

	conn, ok := driverConn.(*polarisConn)
	require.True(t, ok)
	require.NotNil(t, connector.Driver())

	_, err = conn.Prepare("select 1")
	require.NoError(t, err)
	_, err = conn.PrepareContext(context.Background(), "select 1")
	require.NoError(t, err)
	require.NoError(t, conn.Close())
	_, err = conn.Begin()
	require.ErrorIs(t, err, errReadOnly)
}

func TestIsReadQuery(t *testing.T) {
	require.True(t, isReadQuery("SELECT * FROM foo"))
	require.True(t, isReadQuery("with t as (select 1) select * from t"))
	require.True(t, isReadQuery("EXPLAIN PLAN FOR select * from foo"))
	require.True(t, isReadQuery("show tables"))
	require.False(t, isReadQuery("insert into foo values (1)"))
	require.False(t, isReadQuery(""))
}

func TestNamedValueConversionHelpers(t *testing.T) {
	values := valuesToNamed([]driver.Value{"a", 2})
	require.Len(t, values, 2)
	require.Equal(t, 1, values[0].Ordinal)
	require.Equal(t, "a", values[0].Value)

	interfaces := namedValuesToInterfaces(values)
	require.Equal(t, []interface{}{"a", 2}, interfaces)

	require.Nil(t, valuesToNamed(nil))
	require.Nil(t, namedValuesToInterfaces(nil))
}

func TestPolarisConnExecContextReadOnly(t *testing.T) {
	conn := &polarisConn{}
	_, err := conn.ExecContext(context.Background(), "delete from foo", nil)
	require.ErrorIs(t, err, errReadOnly)
}

func TestPolarisConnQueryContextCanceled(t *testing.T) {
	conn := &polarisConn{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conn.QueryContext(ctx, "select * from foo", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPolarisConnExecContextCanceled(t *testing.T) {
	conn := &polarisConn{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conn.ExecContext(ctx, "select * from foo", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPolarisStmtExecReadOnly(t *testing.T) {
	stmt := &polarisStmt{query: "update foo set bar = 1"}
	_, err := stmt.Exec(nil)
	require.ErrorIs(t, err, errReadOnly)
}

func TestPolarisResultMethods(t *testing.T) {
	result := polarisResult{rowsAffected: 5}
	_, err := result.LastInsertId()
	require.ErrorIs(t, err, errReadOnly)
	rows, err := result.RowsAffected()
	require.NoError(t, err)
	require.Equal(t, int64(5), rows)
}

func TestPolarisConnQueryRows(t *testing.T) {
	client := newQueryTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `[{"id":1,"name":"alpha"},{"id":2,"name":"beta"}]`)
	})

	driverConn, err := newConnector(client).Connect(context.Background())
	require.NoError(t, err)

	conn, ok := driverConn.(*polarisConn)
	require.True(t, ok)
	stmt, err := conn.Prepare("select * from events limit 2")
	require.NoError(t, err)

	stmtTyped, ok := stmt.(*polarisStmt)
	require.True(t, ok)
	require.Equal(t, -1, stmt.NumInput())

	rows, err := stmtTyped.Query(nil)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name"}, rows.Columns())

	dest := make([]driver.Value, 2)
	require.NoError(t, rows.Next(dest))
	require.Equal(t, int64(1), dest[0])
	require.Equal(t, "alpha", dest[1])
	require.NoError(t, rows.Next(dest))
	require.Equal(t, int64(2), dest[0])
	require.Equal(t, "beta", dest[1])
	require.NoError(t, rows.Close())

	result, err := stmtTyped.Exec(nil)
	require.NoError(t, err)
	affected, err := result.RowsAffected()
	require.NoError(t, err)
	require.Equal(t, int64(0), affected)

	require.NoError(t, stmt.Close())
	require.NoError(t, conn.Close())
}

func TestPolarisConnQueryError(t *testing.T) {
	client := newQueryTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintln(w, `{"error":{"code":"InvalidInput","message":"SQL parse failed"}}`)
	})

	driverConn, err := newConnector(client).Connect(context.Background())
	require.NoError(t, err)

	conn, ok := driverConn.(*polarisConn)
	require.True(t, ok)

	_, err = conn.QueryContext(context.Background(), "select * from events", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "SQL parse failed")
}
