package domain

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

type ItemType string

const (
	ItemTypeFolder ItemType = "folder"
	ItemTypeFile   ItemType = "file"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeFolder || t == ItemTypeFile
}

// Document is a folder or file as returned by the document service.
type Document struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	ItemType   ItemType   `json:"itemType"`
	ParentID   *int64     `json:"parentId"`
	FileSizeKB *int64     `json:"fileSizeKb"`
	StorageURL *string    `json:"s3Url"`
	CreatedBy  *string    `json:"createdBy"`
	CreatedAt  *time.Time `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt"`
}

func (d Document) IsFolder() bool {
	return d.ItemType == ItemTypeFolder
}

// InBin reports whether the document has been soft-deleted.
func (d Document) InBin() bool {
	return d.DeletedAt != nil
}

// SameName compares titles the way sibling uniqueness is checked: case-insensitively.
func (d Document) SameName(title string) bool {
	return strings.EqualFold(d.Title, title)
}

var errNoLocalName = errors.New("cannot be used as a local file name")

// LocalName is the file name a download of d gets in the working directory.
// Titles come from the server, so any directory part is dropped.
func (d Document) LocalName() (string, error) {
	name := filepath.Base(filepath.Clean(d.Title))
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return "", &ValidationError{Field: "title", Err: errNoLocalName}
	}
	return name, nil
}

// CreateDocumentRequest is the body of POST /api/documents.
type CreateDocumentRequest struct {
	Title      string   `json:"title"`
	ItemType   ItemType `json:"itemType"`
	ParentID   *int64   `json:"parentId"`
	FileSizeKB *int64   `json:"fileSizeKb,omitempty"`
}

// SizeInKB converts a byte count to the rounded kilobyte value stored on file records.
func SizeInKB(bytes int64) int64 {
	return (bytes + 512) / 1024
}
