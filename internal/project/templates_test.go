package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leilaShen/BoxStack/internal/model"
)

func TestTemplates_SaveLoadRoundTrip(t *testing.T) {
	store := model.NewTemplateStore()
	store.Add(model.NewManifestTemplate("Standard run", "weekly mix",
		[]model.BoxRequest{model.NewBoxRequest("Carton", 510, 290, 210, 12)},
		[]model.Container{model.NewContainer("Cage", 1500, 1500, 800, 2)},
		model.DefaultSettings()))

	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, SaveTemplates(path, store))

	loaded, err := LoadTemplates(path)
	require.NoError(t, err)
	assert.Equal(t, store, loaded)
}

func TestLoadTemplates_MissingFileReturnsEmptyStore(t *testing.T) {
	loaded, err := LoadTemplates(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.NotNil(t, loaded.Templates)
	assert.Empty(t, loaded.Templates)
}

func TestLoadTemplates_NilSliceBecomesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	loaded, err := LoadTemplates(path)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Templates)
}

func TestLoadTemplates_CorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := LoadTemplates(path)
	assert.Error(t, err)
}
