package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mydoc/internal/domain"
	"mydoc/internal/logger"
)

const (
	documentsPath  = "/api/documents"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 1024
)

// DocumentRepository talks to the document service over HTTP.
type DocumentRepository struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewDocumentRepository(baseURL string, timeout time.Duration, log *zap.Logger) *DocumentRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

type listResponse struct {
	Data []domain.Document `json:"data"`
}

type createResponse struct {
	Data      domain.Document `json:"data"`
	UploadURL string          `json:"uploadUrl"`
	ExpiresAt *time.Time      `json:"uploadUrlExpiresAt,omitempty"`
}

// ListRoot returns the items that have no parent.
func (r *DocumentRepository) ListRoot(ctx context.Context) ([]domain.Document, error) {
	return r.list(ctx, "list root", documentsPath, nil)
}

// ListByParent returns the children of a folder.
func (r *DocumentRepository) ListByParent(ctx context.Context, folderID int64) ([]domain.Document, error) {
	q := url.Values{"parentId": {strconv.FormatInt(folderID, 10)}}
	return r.list(ctx, "list folder", documentsPath, q)
}

// ListByTitle searches titles containing query. Failures are reported like
// every other listing, as a NetworkError.
func (r *DocumentRepository) ListByTitle(ctx context.Context, query string) ([]domain.Document, error) {
	q := url.Values{"title": {query}}
	return r.list(ctx, "search", documentsPath, q)
}

// ListBin returns the soft-deleted items.
func (r *DocumentRepository) ListBin(ctx context.Context) ([]domain.Document, error) {
	return r.list(ctx, "list bin", documentsPath+"/bin", nil)
}

func (r *DocumentRepository) list(ctx context.Context, op, path string, query url.Values) ([]domain.Document, error) {
	resp, err := r.do(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, &domain.NetworkError{Op: op, StatusCode: resp.StatusCode, Err: statusError(resp)}
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &domain.NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if body.Data == nil {
		body.Data = []domain.Document{}
	}
	return body.Data, nil
}

// CreateFolder creates a folder under parentID, or at the root when parentID is nil.
func (r *DocumentRepository) CreateFolder(ctx context.Context, title string, parentID *int64) (*domain.Document, error) {
	req := domain.CreateDocumentRequest{Title: title, ItemType: domain.ItemTypeFolder, ParentID: parentID}
	created, err := r.create(ctx, req)
	if err != nil {
		return nil, err
	}
	return &created.Data, nil
}

// CreateFile records a file and returns the presigned URL its bytes go to.
func (r *DocumentRepository) CreateFile(ctx context.Context, title string, fileSizeKB int64, parentID *int64) (*domain.Document, domain.UploadTarget, error) {
	req := domain.CreateDocumentRequest{
		Title:      title,
		ItemType:   domain.ItemTypeFile,
		ParentID:   parentID,
		FileSizeKB: &fileSizeKB,
	}
	created, err := r.create(ctx, req)
	if err != nil {
		return nil, domain.UploadTarget{}, err
	}
	if created.UploadURL == "" {
		return nil, domain.UploadTarget{}, &domain.CreateError{
			Title:    title,
			ItemType: domain.ItemTypeFile,
			Err:      errors.New("response carries no upload URL"),
		}
	}
	return &created.Data, domain.UploadTarget{URL: created.UploadURL, ExpiresAt: created.ExpiresAt}, nil
}

func (r *DocumentRepository) create(ctx context.Context, req domain.CreateDocumentRequest) (*createResponse, error) {
	createErr := func(status int, err error) error {
		return &domain.CreateError{Title: req.Title, ItemType: req.ItemType, StatusCode: status, Err: err}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, createErr(0, fmt.Errorf("marshal request: %w", err))
	}

	resp, err := r.do(ctx, "create "+string(req.ItemType), http.MethodPost, documentsPath, nil, payload)
	if err != nil {
		return nil, createErr(0, err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, createErr(resp.StatusCode, statusError(resp))
	}

	var body createResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, createErr(0, fmt.Errorf("decode response: %w", err))
	}
	return &body, nil
}

// Delete moves a document to the Bin. Deleting an item that is already in
// the Bin succeeds.
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	return r.mutate(ctx, "delete", http.MethodDelete, documentsPath+"/"+strconv.FormatInt(id, 10), id)
}

// Restore takes a document out of the Bin. Restoring an item that is not in
// the Bin succeeds.
func (r *DocumentRepository) Restore(ctx context.Context, id int64) error {
	return r.mutate(ctx, "restore", http.MethodPatch, documentsPath+"/"+strconv.FormatInt(id, 10)+"/restore", id)
}

func (r *DocumentRepository) mutate(ctx context.Context, op, method, path string, id int64) error {
	resp, err := r.do(ctx, op, method, path, nil, nil)
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case success(resp.StatusCode), resp.StatusCode == http.StatusConflict:
		io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &domain.NotFoundError{Resource: "document", ID: strconv.FormatInt(id, 10)}
	default:
		return &domain.NetworkError{Op: op, StatusCode: resp.StatusCode, Err: statusError(resp)}
	}
}

func (r *DocumentRepository) do(ctx context.Context, op, method, path string, query url.Values, payload []byte) (*http.Response, error) {
	target := r.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	fields := []zap.Field{
		zap.String(logger.FieldOp, op),
		zap.String(logger.FieldRequestID, requestID),
		zap.String(logger.FieldMethod, method),
		zap.String(logger.FieldURL, target),
		zap.Duration(logger.FieldDuration, time.Since(start)),
	}
	if err != nil {
		r.logger.Warn("document service unreachable", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	r.logger.Debug("document service call", append(fields, zap.Int(logger.FieldStatus, resp.StatusCode))...)
	return resp, nil
}

func success(status int) bool {
	return status >= 200 && status <= 299
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, msg)
}
