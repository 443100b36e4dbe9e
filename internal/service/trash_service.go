package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mydoc/internal/domain"
	"mydoc/internal/format"
	"mydoc/internal/logger"
)

// TrashService moves documents to the Bin and back.
type TrashService struct {
	store   DocumentStore
	listing *ListingService
	logger  *zap.Logger
}

func NewTrashService(store DocumentStore, listing *ListingService, log *zap.Logger) *TrashService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TrashService{store: store, listing: listing, logger: log}
}

// Delete soft-deletes doc and reloads the listing.
func (s *TrashService) Delete(ctx context.Context, doc domain.Document) domain.Outcome {
	label := itemLabel(doc)
	if err := s.store.Delete(ctx, doc.ID); err != nil {
		s.logger.Warn("delete failed", zap.Int64(logger.FieldDocumentID, doc.ID), zap.Error(err))
		return domain.FailureFrom("Failed to Delete Document", label+" has not been deleted", err)
	}

	return domain.Success{
		Title:      "Successful Deletion",
		Message:    label + " has been moved to Bin",
		RefreshErr: s.listing.Refresh(ctx),
	}
}

// Restore takes doc out of the Bin and reloads the listing.
func (s *TrashService) Restore(ctx context.Context, doc domain.Document) domain.Outcome {
	label := itemLabel(doc)
	if err := s.store.Restore(ctx, doc.ID); err != nil {
		s.logger.Warn("restore failed", zap.Int64(logger.FieldDocumentID, doc.ID), zap.Error(err))
		return domain.FailureFrom("Failed to Restore Document", label+" has not been restored", err)
	}

	return domain.Success{
		Title:      "Successful Restoration",
		Message:    label + " has been restored",
		RefreshErr: s.listing.Refresh(ctx),
	}
}

// itemLabel renders "Folder Photos" or "File a.txt".
func itemLabel(doc domain.Document) string {
	return fmt.Sprintf("%s %s", format.TitleCase(string(doc.ItemType)), doc.Title)
}
