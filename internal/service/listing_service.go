package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"mydoc/internal/domain"
	"mydoc/internal/logger"
	"mydoc/internal/session"
)

var (
	ErrNotAFolder    = errors.New("not a folder")
	ErrAmbiguousName = errors.New("more than one item has this name, use #id")
)

// ListingService keeps the current listing in step with the navigation state.
type ListingService struct {
	store  DocumentStore
	state  *session.State
	locale language.Tag
	logger *zap.Logger
}

func NewListingService(store DocumentStore, state *session.State, locale language.Tag, log *zap.Logger) *ListingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ListingService{
		store:  store,
		state:  state,
		locale: locale,
		logger: log,
	}
}

// Refresh fetches the listing for the current view, sorts it and installs it.
// On failure the previous listing stays in place.
func (s *ListingService) Refresh(ctx context.Context) error {
	fetch := s.state.BeginFetch()

	docs, err := s.fetch(ctx, fetch.View)
	if err != nil {
		s.logger.Warn("listing refresh failed",
			zap.String(logger.FieldMode, fetch.View.Mode.String()),
			zap.Error(err))
		return err
	}
	SortDocuments(docs, s.locale)

	if !s.state.ReplaceListing(fetch.Token, docs) {
		s.logger.Debug("discarding stale listing",
			zap.String(logger.FieldMode, fetch.View.Mode.String()),
			zap.Uint64(logger.FieldToken, fetch.Token))
		return nil
	}
	s.logger.Debug("listing refreshed",
		zap.String(logger.FieldMode, fetch.View.Mode.String()),
		zap.Int(logger.FieldCount, len(docs)))
	return nil
}

func (s *ListingService) fetch(ctx context.Context, view session.View) ([]domain.Document, error) {
	switch view.Mode {
	case session.ModeSearch:
		return s.store.ListByTitle(ctx, view.Query)
	case session.ModeBin:
		return s.store.ListBin(ctx)
	case session.ModeFolder:
		return s.store.ListByParent(ctx, view.FolderID)
	default:
		return s.store.ListRoot(ctx)
	}
}

// Home returns to the root folder.
func (s *ListingService) Home(ctx context.Context) error {
	s.state.GoHome()
	return s.Refresh(ctx)
}

// Bin shows the soft-deleted items.
func (s *ListingService) Bin(ctx context.Context) error {
	s.state.OpenBin()
	return s.Refresh(ctx)
}

// OpenFolder descends into doc, which must be a folder of the current listing.
func (s *ListingService) OpenFolder(ctx context.Context, doc domain.Document) error {
	if !doc.IsFolder() {
		return &domain.ValidationError{Field: doc.Title, Err: ErrNotAFolder}
	}
	if err := s.state.EnterFolder(doc.ID, doc.Title); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// JumpTo selects an earlier breadcrumb entry.
func (s *ListingService) JumpTo(ctx context.Context, index int) error {
	if err := s.state.JumpTo(index); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Up moves to the parent folder of the current one.
func (s *ListingService) Up(ctx context.Context) error {
	path := s.state.Path()
	if len(path) < 2 {
		return s.Home(ctx)
	}
	return s.JumpTo(ctx, len(path)-2)
}

// Search lists items whose title contains query. A blank query ends the search.
func (s *ListingService) Search(ctx context.Context, query string) error {
	s.state.SetQuery(query)
	return s.Refresh(ctx)
}

// NavigatePath goes home and then opens each slash-separated folder name in turn.
func (s *ListingService) NavigatePath(ctx context.Context, path string) error {
	if err := s.Home(ctx); err != nil {
		return err
	}
	for _, name := range strings.Split(path, "/") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		doc, err := s.Find(name)
		if err != nil {
			return err
		}
		if err := s.OpenFolder(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// Find resolves a reference against the current listing: "#<id>" matches an
// id, anything else a title, case-insensitively.
func (s *ListingService) Find(ref string) (domain.Document, error) {
	listing := s.state.Listing()

	if idText, ok := strings.CutPrefix(ref, "#"); ok {
		id, err := strconv.ParseInt(idText, 10, 64)
		if err != nil {
			return domain.Document{}, &domain.ValidationError{Field: "id", Err: err}
		}
		for _, doc := range listing {
			if doc.ID == id {
				return doc, nil
			}
		}
		return domain.Document{}, &domain.NotFoundError{Resource: "item", ID: ref}
	}

	var matches []domain.Document
	for _, doc := range listing {
		if doc.SameName(ref) {
			matches = append(matches, doc)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Document{}, &domain.NotFoundError{Resource: "item", ID: strconv.Quote(ref)}
	case 1:
		return matches[0], nil
	default:
		return domain.Document{}, &domain.ValidationError{Field: ref, Err: ErrAmbiguousName}
	}
}
