// Package fakeapi serves an in-memory document service for tests.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mydoc/internal/domain"
)

// Op names an endpoint for failure injection.
type Op string

const (
	OpListRoot   Op = "list_root"
	OpListFolder Op = "list_folder"
	OpSearch     Op = "search"
	OpListBin    Op = "list_bin"
	OpCreate     Op = "create"
	OpDelete     Op = "delete"
	OpRestore    Op = "restore"
	OpUpload     Op = "upload"
	OpDownload   Op = "download"
)

// Request is a recorded call.
type Request struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	RequestID   string
}

type storedObject struct {
	data        []byte
	contentType string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	docs     map[int64]*domain.Document
	objects  map[int64]storedObject
	nextID   int64
	requests []Request
	failures map[Op]int
	now      func() time.Time
}

// New starts a server. The caller closes it.
func New() *Server {
	s := &Server{
		docs:     make(map[int64]*domain.Document),
		objects:  make(map[int64]storedObject),
		nextID:   1,
		failures: make(map[Op]int),
		now:      time.Now,
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Route("/api/documents", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/bin", s.handleListBin)
		r.Delete("/{id}", s.handleDelete)
		r.Patch("/{id}/restore", s.handleRestore)
	})
	r.Put("/uploads/{id}", s.handleUpload)
	r.Get("/objects/{id}", s.handleDownload)
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-Id"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// AddFolder stores a folder directly, bypassing the request log.
func (s *Server) AddFolder(title string, parentID *int64) domain.Document {
	return s.add(title, domain.ItemTypeFolder, parentID, nil)
}

// AddFile stores a file with its content.
func (s *Server) AddFile(title string, parentID *int64, content []byte) domain.Document {
	return s.add(title, domain.ItemTypeFile, parentID, content)
}

func (s *Server) add(title string, itemType domain.ItemType, parentID *int64, content []byte) domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.insert(title, itemType, parentID)
	if itemType == domain.ItemTypeFile {
		kb := domain.SizeInKB(int64(len(content)))
		doc.FileSizeKB = &kb
		s.objects[doc.ID] = storedObject{data: content, contentType: "application/octet-stream"}
	}
	return *doc
}

func (s *Server) insert(title string, itemType domain.ItemType, parentID *int64) *domain.Document {
	now := s.now().UTC()
	owner := "tester"
	doc := &domain.Document{
		ID:        s.nextID,
		Title:     title,
		ItemType:  itemType,
		ParentID:  parentID,
		CreatedBy: &owner,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	if itemType == domain.ItemTypeFile {
		u := fmt.Sprintf("%s/objects/%d", s.URL, doc.ID)
		doc.StorageURL = &u
	}
	s.docs[doc.ID] = doc
	s.nextID++
	return doc
}

// Trash soft-deletes a stored document directly.
func (s *Server) Trash(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[id]; ok {
		now := s.now().UTC()
		doc.DeletedAt = &now
	}
}

// Fail makes every request to op answer with status until Recover is called.
func (s *Server) Fail(op Op, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = status
}

func (s *Server) Recover(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, op)
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// Document returns a stored document by id.
func (s *Server) Document(id int64) (domain.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, false
	}
	return *doc, true
}

// Object returns the bytes uploaded for a file and their content type.
func (s *Server) Object(id int64) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[id]
	return obj.data, obj.contentType, ok
}

func (s *Server) failure(op Op) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.failures[op]
	return status, ok
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	op := OpListRoot
	switch {
	case q.Has("title"):
		op = OpSearch
	case q.Has("parentId"):
		op = OpListFolder
	}
	if status, ok := s.failure(op); ok {
		http.Error(w, "injected failure", status)
		return
	}

	var match func(*domain.Document) bool
	switch op {
	case OpSearch:
		needle := strings.ToLower(q.Get("title"))
		match = func(d *domain.Document) bool {
			return strings.Contains(strings.ToLower(d.Title), needle)
		}
	case OpListFolder:
		parentID, err := strconv.ParseInt(q.Get("parentId"), 10, 64)
		if err != nil {
			http.Error(w, "invalid parentId", http.StatusBadRequest)
			return
		}
		match = func(d *domain.Document) bool {
			return d.ParentID != nil && *d.ParentID == parentID
		}
	default:
		match = func(d *domain.Document) bool { return d.ParentID == nil }
	}

	s.writeDocs(w, func(d *domain.Document) bool { return !d.InBin() && match(d) })
}

func (s *Server) handleListBin(w http.ResponseWriter, r *http.Request) {
	if status, ok := s.failure(OpListBin); ok {
		http.Error(w, "injected failure", status)
		return
	}
	s.writeDocs(w, func(d *domain.Document) bool { return d.InBin() })
}

func (s *Server) writeDocs(w http.ResponseWriter, keep func(*domain.Document) bool) {
	s.mu.Lock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, d := range s.docs {
		if keep(d) {
			docs = append(docs, *d)
		}
	}
	s.mu.Unlock()

	// Newest first, not by title.
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID > docs[j].ID })
	writeJSON(w, http.StatusOK, map[string]any{"data": docs})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if status, ok := s.failure(OpCreate); ok {
		http.Error(w, "injected failure", status)
		return
	}

	var req domain.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" || !req.ItemType.Valid() {
		http.Error(w, "title and itemType are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if req.ParentID != nil {
		if parent, ok := s.docs[*req.ParentID]; !ok || !parent.IsFolder() {
			s.mu.Unlock()
			http.Error(w, "parent folder not found", http.StatusBadRequest)
			return
		}
	}
	doc := s.insert(req.Title, req.ItemType, req.ParentID)
	doc.FileSizeKB = req.FileSizeKB
	created := *doc
	s.mu.Unlock()

	resp := map[string]any{"data": created}
	if created.ItemType == domain.ItemTypeFile {
		resp["uploadUrl"] = fmt.Sprintf("%s/uploads/%d", s.URL, created.ID)
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.setDeleted(w, r, OpDelete, true)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	s.setDeleted(w, r, OpRestore, false)
}

func (s *Server) setDeleted(w http.ResponseWriter, r *http.Request, op Op, deleted bool) {
	if status, ok := s.failure(op); ok {
		http.Error(w, "injected failure", status)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	if doc.InBin() == deleted {
		http.Error(w, "document already in requested state", http.StatusConflict)
		return
	}
	if deleted {
		now := s.now().UTC()
		doc.DeletedAt = &now
	} else {
		doc.DeletedAt = nil
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": *doc})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if status, ok := s.failure(OpUpload); ok {
		http.Error(w, "injected failure", status)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		http.Error(w, "no pending upload", http.StatusForbidden)
		return
	}
	s.objects[id] = storedObject{data: data, contentType: r.Header.Get("Content-Type")}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if status, ok := s.failure(OpDownload); ok {
		http.Error(w, "injected failure", status)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	obj, ok := s.objects[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "object not found", http.StatusNotFound)
		return
	}
	if obj.contentType != "" {
		w.Header().Set("Content-Type", obj.contentType)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.data)))
	w.Write(obj.data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
