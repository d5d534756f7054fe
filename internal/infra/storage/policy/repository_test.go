package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Колонки, которые репозиторий называет в select и в ON CONFLICT DO UPDATE.
// Расхождение со схемой ломает каждый Upsert на этапе парсинга запроса.
var repositoryColumns = []string{
	"trainer_id",
	"buffer_active",
	"buffer_minutes_before",
	"buffer_minutes_after",
	"notice_active",
	"notice_minutes_minimum",
	"horizon_active",
	"horizon_max_days",
	"updated_at",
}

func TestSchemaCoversRepositoryColumns(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_init.up.sql"))
	require.NoError(t, err)

	sql := string(raw)
	start := strings.Index(sql, "CREATE TABLE booking_policies")
	require.NotEqual(t, -1, start, "booking_policies table missing from migration")

	end := strings.Index(sql[start:], ");")
	require.NotEqual(t, -1, end)
	table := sql[start : start+end]

	for _, column := range repositoryColumns {
		require.Contains(t, table, column, "booking_policies lacks column %q used by the repository", column)
	}
}
