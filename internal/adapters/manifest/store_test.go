package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.sortd.dev/envboot/internal/adapters/manifest"
	"go.sortd.dev/envboot/internal/core/domain"
)

func newStore(t *testing.T) (*manifest.Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	store, err := manifest.NewStore(path)
	require.NoError(t, err)
	return store, path
}

func sampleManifest() domain.Manifest {
	return domain.ParseManifest("numpy==2.1.0\npillow==11.0.0\ntransformers==4.46.1\n")
}

func TestStore_Write(t *testing.T) {
	store, path := newStore(t)

	info, changed, err := store.Write(sampleManifest())
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, 3, info.PackageCount)
	assert.NotEmpty(t, info.ContentHash)
	assert.False(t, info.Timestamp.IsZero())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "requirements", data)
}

func TestStore_Write_Overwrites(t *testing.T) {
	store, path := newStore(t)

	// Simulate stale content from a previous tool.
	require.NoError(t, os.WriteFile(path, []byte("stale==0.0.1\nleftover==9.9.9\n"), 0o600))

	_, _, err := store.Write(domain.ParseManifest("numpy==2.1.0\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "numpy==2.1.0\n", string(data))
}

func TestStore_Write_UnchangedHash(t *testing.T) {
	store, _ := newStore(t)

	_, changed, err := store.Write(sampleManifest())
	require.NoError(t, err)
	assert.True(t, changed)

	_, changed, err = store.Write(sampleManifest())
	require.NoError(t, err)
	assert.False(t, changed, "identical content should report unchanged")

	_, changed, err = store.Write(domain.ParseManifest("numpy==2.2.0\n"))
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestStore_StatePersists(t *testing.T) {
	store, path := newStore(t)

	info, _, err := store.Write(sampleManifest())
	require.NoError(t, err)

	// A fresh store over the same directory picks up the previous export.
	reopened, err := manifest.NewStore(path)
	require.NoError(t, err)

	_, changed, err := reopened.Write(sampleManifest())
	require.NoError(t, err)
	assert.False(t, changed)

	stateData, err := os.ReadFile(filepath.Join(filepath.Dir(path), manifest.StateFilename))
	require.NoError(t, err)
	assert.Contains(t, string(stateData), info.ContentHash)
}

func TestStore_CorruptedState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.StateFilename), []byte("{not json"), 0o600))

	store, err := manifest.NewStore(path)
	require.NoError(t, err)

	// Corrupted state only costs the "unchanged" report.
	_, changed, err := store.Write(sampleManifest())
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestStore_Read(t *testing.T) {
	store, _ := newStore(t)

	m, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, m.Packages, "missing manifest reads as empty")

	_, _, err = store.Write(sampleManifest())
	require.NoError(t, err)

	m, err = store.Read()
	require.NoError(t, err)
	require.Len(t, m.Packages, 3)

	version, ok := m.Lookup("numpy")
	assert.True(t, ok)
	assert.Equal(t, "2.1.0", version)
}
