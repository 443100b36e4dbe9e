package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mydoc/internal/domain"
)

func TestSortDocumentsFoldersFirst(t *testing.T) {
	docs := []domain.Document{
		{ID: 1, Title: "b.txt", ItemType: domain.ItemTypeFile},
		{ID: 2, Title: "zeta", ItemType: domain.ItemTypeFolder},
		{ID: 3, Title: "A.txt", ItemType: domain.ItemTypeFile},
		{ID: 4, Title: "Alpha", ItemType: domain.ItemTypeFolder},
		{ID: 5, Title: "banana", ItemType: domain.ItemTypeFolder},
	}

	SortDocuments(docs, language.English)

	assert.Equal(t, []string{"Alpha", "banana", "zeta", "A.txt", "b.txt"}, listingTitles(docs))
}

func TestSortDocumentsIsStable(t *testing.T) {
	docs := []domain.Document{
		{ID: 1, Title: "same", ItemType: domain.ItemTypeFile},
		{ID: 2, Title: "same", ItemType: domain.ItemTypeFile},
		{ID: 3, Title: "same", ItemType: domain.ItemTypeFile},
	}

	SortDocuments(docs, language.English)

	assert.Equal(t, int64(1), docs[0].ID)
	assert.Equal(t, int64(2), docs[1].ID)
	assert.Equal(t, int64(3), docs[2].ID)
}

func TestSortDocumentsOrderingProperty(t *testing.T) {
	docs := []domain.Document{
		{Title: "Éclair", ItemType: domain.ItemTypeFile},
		{Title: "eclipse", ItemType: domain.ItemTypeFolder},
		{Title: "Zebra", ItemType: domain.ItemTypeFile},
		{Title: "apple", ItemType: domain.ItemTypeFile},
		{Title: "Dog", ItemType: domain.ItemTypeFolder},
		{Title: "cat", ItemType: domain.ItemTypeFolder},
		{Title: "édition", ItemType: domain.ItemTypeFile},
	}

	SortDocuments(docs, language.French)

	col := collate.New(language.French)
	seenFile := false
	for i, d := range docs {
		if !d.IsFolder() {
			seenFile = true
		}
		assert.False(t, seenFile && d.IsFolder(), "folder %q after a file", d.Title)
		if i > 0 && docs[i-1].IsFolder() == d.IsFolder() {
			assert.LessOrEqual(t, col.CompareString(docs[i-1].Title, d.Title), 0)
		}
	}
}
