package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"mydoc/internal/domain"
	"mydoc/internal/fakeapi"
	"mydoc/internal/repository"
	"mydoc/internal/service/s3"
	"mydoc/internal/session"
)

type testEnv struct {
	srv     *fakeapi.Server
	state   *session.State
	listing *ListingService
	trash   *TrashService
	folders *FolderService
	files   *FileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)

	log := zap.NewNop()
	store := repository.NewDocumentRepository(srv.URL, 5*time.Second, log)
	state := session.New()
	listing := NewListingService(store, state, language.English, log)
	return &testEnv{
		srv:     srv,
		state:   state,
		listing: listing,
		trash:   NewTrashService(store, listing, log),
		folders: NewFolderService(store, state, listing, log),
		files: NewFileService(store, state, listing,
			s3.NewPresignedUploader(nil, 5*time.Second, log),
			s3.NewClient(s3.Config{}, nil, log),
			DefaultMaxFileSize, log),
	}
}

// load refreshes the current view and clears the request log.
func (e *testEnv) load(t *testing.T) {
	t.Helper()
	require.NoError(t, e.listing.Refresh(context.Background()))
	e.srv.ResetRequests()
}

func listingTitles(docs []domain.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Title
	}
	return out
}

func requireSuccess(t *testing.T, o domain.Outcome) domain.Success {
	t.Helper()
	s, ok := o.(domain.Success)
	require.Truef(t, ok, "expected success, got %#v", o)
	return s
}

func requireFailure(t *testing.T, o domain.Outcome) domain.Failure {
	t.Helper()
	f, ok := o.(domain.Failure)
	require.Truef(t, ok, "expected failure, got %#v", o)
	return f
}
