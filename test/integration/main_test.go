package integration_test

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"testing"

	"hireflow_backend/test/helpers"

	"github.com/stretchr/testify/require"
)

// Shared server for the whole suite.
var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer starts the shared test server on first use. Tests are
// skipped entirely when DATABASE_URL is not set, so the suite stays green
// on machines without a Postgres instance.
func GetTestServer(t *testing.T) *helpers.TestServer {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	serverOnce.Do(func() {
		os.Setenv("SERVER_ENV", "test")
		if os.Getenv("JWT_SECRET") == "" {
			os.Setenv("JWT_SECRET", "integration_test_secret_12345")
		}

		log.Println("--- initializing test server ---")
		globalTestServer = helpers.NewTestServer(t)
		globalTestServer.ClearTables()
		log.Println("--- test server ready ---")
	})
	return globalTestServer
}

// extractField pulls one top-level string field out of a JSON response body.
func extractField(t *testing.T, body, field string) string {
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	value, ok := payload[field].(string)
	require.True(t, ok, "response has no string field %q: %s", field, body)
	return value
}

func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		globalTestServer.Close()
	}

	os.Exit(code)
}
