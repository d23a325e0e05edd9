package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScriptsCreateServiceTables(t *testing.T) {
	scripts, err := Scripts()
	require.NoError(t, err)
	require.NotEmpty(t, scripts)

	all := strings.Join(scripts, "\n")
	for _, table := range []string{"products", "idempotency_keys", "audit_logs"} {
		require.Contains(t, all, "CREATE TABLE IF NOT EXISTS "+table)
	}
	require.Contains(t, all, "UNIQUE (sku)")
}
