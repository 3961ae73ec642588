package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solireserve/migrations"
)

func TestEveryUpHasADown(t *testing.T) {
	entries, err := fs.ReadDir(migrations.Postgres, migrations.PostgresDir)
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}

	for _, entry := range entries {
		name := entry.Name()

		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}
