package offers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "offers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalog(t, `[
		{"id": 1, "title": "Backend Intern", "company": "Acme", "description": "Work on APIs"},
		{"offer_id": "ext-1", "job_title": "SRE", "description_text": "Keep things running"}
	]`)

	records, err := LoadCatalog(path, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadCatalogSkipsInvalidRecords(t *testing.T) {
	// Second record has no description under any alias; third has no title.
	path := writeCatalog(t, `[
		{"id": 1, "title": "Backend Intern", "description": "Work on APIs"},
		{"id": 2, "title": "No Description"},
		{"id": 3, "description": "No title"}
	]`)

	records, err := LoadCatalog(path, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Backend Intern", Resolve(records[0], FieldTitle))
}

func TestLoadCatalogEmptyIsNotAnError(t *testing.T) {
	path := writeCatalog(t, `[]`)

	records, err := LoadCatalog(path, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadCatalogErrors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
		require.Error(t, err)
		var catErr *CatalogError
		require.ErrorAs(t, err, &catErr)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		path := writeCatalog(t, `{"not": "an array"`)
		_, err := LoadCatalog(path, zap.NewNop())
		require.Error(t, err)
	})
}
