package service

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mydoc/internal/domain"
	"mydoc/internal/session"
)

const maxTitleLength = 255

var (
	errCreateInBin    = errors.New("items cannot be created in the Bin")
	errCreateInSearch = errors.New("clear the search before creating items")
	errListingStale   = errors.New("the contents of this folder have not loaded, refresh and try again")
	errTitleHasSlash  = errors.New("must not contain '/'")
)

// validateTitle trims title and checks it can name a document.
func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	err := validation.Validate(title,
		validation.Required,
		validation.RuneLength(1, maxTitleLength),
		validation.By(func(value interface{}) error {
			if strings.Contains(value.(string), "/") {
				return errTitleHasSlash
			}
			return nil
		}),
	)
	if err != nil {
		return title, &domain.ValidationError{Field: "title", Err: err}
	}
	return title, nil
}

// checkCreatable rejects creation unless the listing on screen holds the
// siblings of the new item.
func checkCreatable(snap session.Snapshot) error {
	switch {
	case snap.View.Mode == session.ModeBin:
		return &domain.ValidationError{Err: errCreateInBin}
	case snap.View.Mode == session.ModeSearch:
		return &domain.ValidationError{Err: errCreateInSearch}
	case !snap.Current:
		return &domain.ValidationError{Err: errListingStale}
	}
	return nil
}

// findDuplicate looks for a sibling of the same type with the same title,
// ignoring case. It only inspects the listing already on screen.
func findDuplicate(listing []domain.Document, title string, itemType domain.ItemType) error {
	for _, doc := range listing {
		if doc.ItemType == itemType && doc.SameName(title) {
			return &domain.DuplicateNameError{Title: title, ItemType: itemType}
		}
	}
	return nil
}
