package sqlite

import (
	"context"
	"testing"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/sqlite/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestStore(t *testing.T) *SqlStore {
	t.Helper()

	store, err := NewSqlStore(InMemory, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	require.NoError(t, NewMigrator(store, zaptest.NewLogger(t)).Up(context.Background(), migrations.All))
	return store
}

func TestNewSqlStore(t *testing.T) {
	store, err := NewSqlStore(InMemory, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer store.Close()

	v, err := store.userVersion()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestMigrator_Up(t *testing.T) {
	store, err := NewSqlStore(InMemory, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer store.Close()

	migrator := NewMigrator(store, zaptest.NewLogger(t))
	require.NoError(t, migrator.Up(context.Background(), migrations.All))

	v, err := store.userVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	names, err := store.tableNames()
	require.NoError(t, err)
	assert.Contains(t, names, "locations")
	assert.Contains(t, names, "policy_definitions")
	assert.Contains(t, names, "policy_assignments")

	// applying again is a no-op
	require.NoError(t, migrator.Up(context.Background(), migrations.All))

	v, err = store.userVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestSqlStore_Flush(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.DB.ExecContext(ctx,
		`INSERT INTO locations (id, name, display_name, geography) VALUES (?, ?, ?, ?)`,
		"0000000000000001", "westeurope", "West Europe", "Europe")
	require.NoError(t, err)

	store.Flush(ctx)

	var count int
	require.NoError(t, store.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM locations`))
	assert.Equal(t, 0, count)
}

func TestScriptVersion(t *testing.T) {
	v, err := scriptVersion("0002_create_policies.sql")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = scriptVersion("create_policies.sql")
	require.Error(t, err)
}
