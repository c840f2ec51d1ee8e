package localization_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizendesk/backend/internal/localization"
)

func writeCatalogues(t *testing.T, catalogues map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range catalogues {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLocalizer_Get(t *testing.T) {
	dir := writeCatalogues(t, map[string]string{
		"en.json": `{"complaint.received": "Complaint received", "rate.limited": "Too many requests"}`,
		"sw.json": `{"complaint.received": "Malalamiko yamepokelewa"}`,
	})

	l, err := localization.NewLocalizer(dir)
	require.NoError(t, err)

	assert.Equal(t, "Complaint received", l.Get("en", "complaint.received"))
	assert.Equal(t, "Malalamiko yamepokelewa", l.Get("sw", "complaint.received"))

	// Missing Swahili entries fall back to English, then to the key.
	assert.Equal(t, "Too many requests", l.Get("sw", "rate.limited"))
	assert.Equal(t, "no.such.key", l.Get("sw", "no.such.key"))

	// Unknown language codes behave like English.
	assert.Equal(t, "Complaint received", l.Get("fr", "complaint.received"))
}

func TestLocalizer_Supported(t *testing.T) {
	dir := writeCatalogues(t, map[string]string{
		"en.json": `{}`,
		"sw.json": `{}`,
	})

	l, err := localization.NewLocalizer(dir)
	require.NoError(t, err)

	assert.True(t, l.Supported("en"))
	assert.True(t, l.Supported("sw"))
	assert.False(t, l.Supported("fr"))
}

func TestNewLocalizer_RequiresEnglish(t *testing.T) {
	dir := writeCatalogues(t, map[string]string{
		"sw.json": `{}`,
	})

	_, err := localization.NewLocalizer(dir)
	assert.Error(t, err)
}

func TestNewLocalizer_RejectsMalformedCatalogue(t *testing.T) {
	dir := writeCatalogues(t, map[string]string{
		"en.json": `{not json`,
	})

	_, err := localization.NewLocalizer(dir)
	assert.Error(t, err)
}
