package service

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mydoc/internal/domain"
)

// SortDocuments orders docs in place: folders first, then by title under the
// collation rules of tag. Equal titles keep their relative order.
func SortDocuments(docs []domain.Document, tag language.Tag) {
	col := collate.New(tag)
	slices.SortStableFunc(docs, func(a, b domain.Document) int {
		if a.IsFolder() != b.IsFolder() {
			if a.IsFolder() {
				return -1
			}
			return 1
		}
		return col.CompareString(a.Title, b.Title)
	})
}
