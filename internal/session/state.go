// Package session holds the navigation state shared by every view of one
// user session.
package session

import (
	"errors"
	"strings"
	"sync"

	"mydoc/internal/domain"
)

var (
	ErrBinNotNavigable = errors.New("items in the Bin cannot be opened")
	ErrSearchActive    = errors.New("clear the search before opening folders")
	ErrNoBreadcrumb    = errors.New("no such breadcrumb entry")
)

type Mode int

const (
	ModeRoot Mode = iota
	ModeFolder
	ModeBin
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeFolder:
		return "folder"
	case ModeBin:
		return "bin"
	case ModeSearch:
		return "search"
	default:
		return "root"
	}
}

// View is what the listing should currently show.
type View struct {
	Mode     Mode
	FolderID int64
	Query    string
}

// Fetch ties a listing request to the view it was issued for.
type Fetch struct {
	Token uint64
	View  View
}

// Snapshot is a consistent copy of the state. Current reports whether
// Listing was fetched for View; it is false after navigating somewhere whose
// listing has not loaded yet.
type Snapshot struct {
	View        View
	Current     bool
	Listing     []domain.Document
	FolderID    *int64
	FolderTitle string
	Path        []domain.Breadcrumb
}

// State is the single owner of navigation state. It is safe for concurrent
// use; readers always get copies.
type State struct {
	mu          sync.RWMutex
	listing     []domain.Document
	listingView *View
	folderID    *int64
	folderTitle string
	inBin       bool
	query       string
	path        []domain.Breadcrumb
	generation  uint64
}

// New returns a state positioned at the root with an empty listing.
func New() *State {
	return &State{
		folderTitle: domain.RootTitle,
		path:        []domain.Breadcrumb{domain.RootBreadcrumb()},
	}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		View:        s.view(),
		Current:     s.current(),
		Listing:     s.listingCopy(),
		FolderID:    copyID(s.folderID),
		FolderTitle: s.folderTitle,
		Path:        s.pathCopy(),
	}
}

func (s *State) Listing() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listingCopy()
}

func (s *State) Path() []domain.Breadcrumb {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pathCopy()
}

func (s *State) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view()
}

// FolderID is the folder new items are created in; nil means the root.
func (s *State) FolderID() *int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyID(s.folderID)
}

func (s *State) FolderTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folderTitle
}

// view resolves the mode. An active query takes precedence over the Bin,
// which takes precedence over the folder.
func (s *State) view() View {
	switch {
	case s.query != "":
		return View{Mode: ModeSearch, Query: s.query}
	case s.inBin:
		return View{Mode: ModeBin}
	case s.folderID != nil:
		return View{Mode: ModeFolder, FolderID: *s.folderID}
	default:
		return View{Mode: ModeRoot}
	}
}

// current reports whether the listing belongs to the view now selected.
func (s *State) current() bool {
	return s.listingView != nil && *s.listingView == s.view()
}

// GoHome resets to the root with a single breadcrumb entry and clears any search.
func (s *State) GoHome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folderID = nil
	s.folderTitle = domain.RootTitle
	s.inBin = false
	s.query = ""
	s.path = []domain.Breadcrumb{domain.RootBreadcrumb()}
	s.generation++
}

// OpenBin switches to the Bin. The breadcrumb is left as it was.
func (s *State) OpenBin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folderID = nil
	s.folderTitle = domain.BinTitle
	s.inBin = true
	s.query = ""
	s.generation++
}

// EnterFolder descends into a child of the current folder.
func (s *State) EnterFolder(id int64, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.query != "":
		return &domain.ValidationError{Err: ErrSearchActive}
	case s.inBin:
		return &domain.ValidationError{Err: ErrBinNotNavigable}
	}
	s.folderID = &id
	s.folderTitle = title
	s.path = append(s.pathCopy(), domain.Breadcrumb{FolderID: copyID(&id), Title: title})
	s.generation++
	return nil
}

// JumpTo selects breadcrumb entry index, truncating the path after it.
func (s *State) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inBin {
		return &domain.ValidationError{Field: "breadcrumb", Err: ErrBinNotNavigable}
	}
	if index < 0 || index >= len(s.path) {
		return &domain.ValidationError{Field: "breadcrumb", Err: ErrNoBreadcrumb}
	}
	crumb := s.path[index]
	s.path = s.pathCopy()[:index+1]
	s.folderID = copyID(crumb.FolderID)
	s.folderTitle = crumb.Title
	s.query = ""
	s.generation++
	return nil
}

// SetQuery starts a search, or ends it when q is blank.
func (s *State) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = strings.TrimSpace(q)
	s.generation++
}

// BeginFetch issues a token for a listing request of the current view.
// Starting a fetch invalidates every earlier one.
func (s *State) BeginFetch() Fetch {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return Fetch{Token: s.generation, View: s.view()}
}

// ReplaceListing installs docs if token is still the latest. It reports
// whether the listing was replaced.
func (s *State) ReplaceListing(token uint64, docs []domain.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.generation {
		return false
	}
	s.listing = append(make([]domain.Document, 0, len(docs)), docs...)
	view := s.view()
	s.listingView = &view
	return true
}

func (s *State) listingCopy() []domain.Document {
	return append(make([]domain.Document, 0, len(s.listing)), s.listing...)
}

func (s *State) pathCopy() []domain.Breadcrumb {
	out := make([]domain.Breadcrumb, len(s.path))
	for i, c := range s.path {
		out[i] = domain.Breadcrumb{FolderID: copyID(c.FolderID), Title: c.Title}
	}
	return out
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
