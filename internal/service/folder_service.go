package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mydoc/internal/domain"
	"mydoc/internal/logger"
	"mydoc/internal/session"
)

// FolderService creates folders in the current folder.
type FolderService struct {
	store   DocumentStore
	state   *session.State
	listing *ListingService
	logger  *zap.Logger
}

func NewFolderService(store DocumentStore, state *session.State, listing *ListingService, log *zap.Logger) *FolderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FolderService{
		store:   store,
		state:   state,
		listing: listing,
		logger:  log,
	}
}

// CreateFolder creates a folder named title unless a folder with that name
// is already listed. The duplicate check never reaches the network.
func (s *FolderService) CreateFolder(ctx context.Context, title string) domain.Outcome {
	title, err := validateTitle(title)
	if err != nil {
		return domain.FailureFrom("Invalid Folder Name", err.Error(), err)
	}
	snap := s.state.Snapshot()
	if err := checkCreatable(snap); err != nil {
		return domain.FailureFrom("Folder Creation Unavailable", err.Error(), err)
	}
	if err := findDuplicate(snap.Listing, title, domain.ItemTypeFolder); err != nil {
		return domain.FailureFrom("Folder Already Exists",
			fmt.Sprintf("A folder named %q already exists in this location", title), err)
	}

	doc, err := s.store.CreateFolder(ctx, title, snap.FolderID)
	if err != nil {
		s.logger.Warn("create folder failed", zap.String(logger.FieldTitle, title), zap.Error(err))
		return domain.FailureFrom("Folder Creation Unsuccessful",
			fmt.Sprintf("Folder %s creation failed. Please try again", title), err)
	}
	s.logger.Info("folder created",
		zap.Int64(logger.FieldDocumentID, doc.ID),
		zap.String(logger.FieldTitle, title))

	return domain.Success{
		Title:      "Folder Added",
		Message:    fmt.Sprintf("Folder %s has been successfully added", title),
		RefreshErr: s.listing.Refresh(ctx),
	}
}
