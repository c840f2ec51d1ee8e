package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/storage/storagetest"
)

func TestSplitArticle(t *testing.T) {
	title, content := splitArticle("# Legal aid clinics\n\nThe office is opening clinics.")
	assert.Equal(t, "Legal aid clinics", title)
	assert.Equal(t, "The office is opening clinics.", content)

	title, content = splitArticle("Plain title\nBody line")
	assert.Equal(t, "Plain title", title)
	assert.Equal(t, "Body line", content)

	title, content = splitArticle("Only a title")
	assert.Equal(t, "Only a title", title)
	assert.Empty(t, content)
}

func TestImportNews_PairsLanguages(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("clinics.en.md", "# Legal aid clinics\n\nOpening in three counties.")
	write("clinics.sw.md", "# Kliniki za msaada\n\nZinafunguliwa katika kaunti tatu.")
	write("notice.en.md", "# Office notice\n\nEnglish only.")
	write("orphan.sw.md", "# Bila Kiingereza\n\nNo English sibling.")
	write("ignored.pdf", "binary")

	var created []*models.NewsArticle
	storageMock := new(storagetest.MockStorage)
	storageMock.On("CreateArticle", mock.AnythingOfType("*models.NewsArticle")).
		Run(func(args mock.Arguments) { created = append(created, args.Get(0).(*models.NewsArticle)) }).
		Return(nil)

	count, err := importNews(storageMock, dir)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, created, 2)

	byTitle := make(map[string]*models.NewsArticle, len(created))
	for _, article := range created {
		assert.Equal(t, models.ArticleDraft, article.Status)
		byTitle[article.TitleEn] = article
	}
	require.Contains(t, byTitle, "Legal aid clinics")
	assert.Equal(t, "Kliniki za msaada", byTitle["Legal aid clinics"].TitleSw)
	require.Contains(t, byTitle, "Office notice")
	assert.Empty(t, byTitle["Office notice"].TitleSw)
}
