package status

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pro/internal/application/migration"
)

func TestFileStore_LoadSinArchivoDevuelveDefault(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "status.json"))

	st, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, migration.DefaultStatus(), st)
	assert.False(t, st.DecimalMigrationComplete)
	assert.Equal(t, "1.0.0", st.MigrationVersion)
}

func TestFileStore_SaveLuegoLoadRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "status.json"))

	saved := migration.Status{
		UUIDMigrationComplete:    true,
		DecimalMigrationComplete: true,
		MigrationVersion:         "2.0.0",
		LastMigrationAttempt:     "2026-08-30T10:00:00Z",
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestFileStore_SaveCreaDirectorioIntermedio(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "anidado", "status.json"))

	require.NoError(t, store.Save(migration.DefaultStatus()))

	st, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", st.MigrationVersion)
}

func TestFileStore_SaveSobrescribeEstadoAnterior(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "status.json"))

	first := migration.DefaultStatus()
	require.NoError(t, store.Save(first))

	second := first
	second.DecimalMigrationComplete = true
	second.MigrationVersion = "2.0.0"
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.DecimalMigrationComplete)
	assert.Equal(t, "2.0.0", loaded.MigrationVersion)
}
