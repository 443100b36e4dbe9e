// Package service implements the document workflows: listing and navigation,
// moving items to and from the Bin, and creating folders and files.
package service

import (
	"context"

	"mydoc/internal/domain"
)

// DocumentStore is the remote document service.
type DocumentStore interface {
	ListRoot(ctx context.Context) ([]domain.Document, error)
	ListByParent(ctx context.Context, folderID int64) ([]domain.Document, error)
	ListByTitle(ctx context.Context, query string) ([]domain.Document, error)
	ListBin(ctx context.Context) ([]domain.Document, error)
	CreateFolder(ctx context.Context, title string, parentID *int64) (*domain.Document, error)
	CreateFile(ctx context.Context, title string, fileSizeKB int64, parentID *int64) (*domain.Document, domain.UploadTarget, error)
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}
