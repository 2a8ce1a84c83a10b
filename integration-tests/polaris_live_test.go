package main

import (
	"fmt"
	"os"
	"testing"
	"time"

	polaris "github.com/implydata/polaris-client-go/polaris"
	"github.com/stretchr/testify/assert"
)

// These tests run against a live Polaris organization and are skipped unless
// POLARIS_ORG, POLARIS_CLIENT_ID and POLARIS_CLIENT_SECRET are set.
func livePolarisClient(t *testing.T) *polaris.Client {
	t.Helper()
	org := os.Getenv("POLARIS_ORG")
	clientID := os.Getenv("POLARIS_CLIENT_ID")
	clientSecret := os.Getenv("POLARIS_CLIENT_SECRET")
	if org == "" || clientID == "" || clientSecret == "" {
		t.Skip("POLARIS_ORG, POLARIS_CLIENT_ID and POLARIS_CLIENT_SECRET are not set")
	}
	client, err := polaris.New(org, clientID, clientSecret)
	assert.Nil(t, err)
	return client
}

func TestLiveListTables(t *testing.T) {
	client := livePolarisClient(t)
	tables, err := client.ListTableSummaries()
	assert.Nil(t, err)
	for _, table := range tables {
		assert.NotEmpty(t, table.ID)
		assert.NotEmpty(t, table.Name)
	}
}

func TestLiveProjects(t *testing.T) {
	client := livePolarisClient(t)
	projects, err := client.Projects()
	assert.Nil(t, err)
	assert.NotEmpty(t, projects)
}

func TestLivePushAndQuery(t *testing.T) {
	client := livePolarisClient(t)
	tableName := fmt.Sprintf("go-client-it-%d", time.Now().Unix())

	table, err := client.CreateTable(polaris.TableRequest{Name: tableName})
	assert.Nil(t, err)
	defer func() {
		assert.Nil(t, table.Drop())
	}()

	now := time.Now().UTC().Format(time.RFC3339)
	err = table.Insert([]map[string]interface{}{
		{"__time": now, "user": "it-user", "clicks": 1},
	})
	assert.Nil(t, err)

	// Streaming ingestion is asynchronous, so only assert the query runs.
	result, err := client.ExecuteSQL(fmt.Sprintf(`select count(*) as cnt from "%s"`, tableName))
	assert.Nil(t, err)
	assert.NotNil(t, result)
}

func TestLiveTokenRenewal(t *testing.T) {
	client := livePolarisClient(t)
	assert.Nil(t, client.RenewToken())
	_, err := client.ListTableSummaries()
	assert.Nil(t, err)
}
