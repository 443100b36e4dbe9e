package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"go.uber.org/zap"

	"mydoc/internal/domain"
	"mydoc/internal/format"
	"mydoc/internal/logger"
	"mydoc/internal/service/s3"
	"mydoc/internal/session"
)

const (
	// DefaultMaxFileSize is the largest accepted upload, inclusive.
	DefaultMaxFileSize = 10 * 1024 * 1024
	defaultContentType = "application/octet-stream"
)

// FileService adds files in two steps, metadata then bytes, and streams
// stored files back.
type FileService struct {
	store       DocumentStore
	state       *session.State
	listing     *ListingService
	uploader    s3.Uploader
	downloader  s3.Downloader
	maxFileSize int64
	logger      *zap.Logger
}

func NewFileService(
	store DocumentStore,
	state *session.State,
	listing *ListingService,
	uploader s3.Uploader,
	downloader s3.Downloader,
	maxFileSize int64,
	log *zap.Logger,
) *FileService {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FileService{
		store:       store,
		state:       state,
		listing:     listing,
		uploader:    uploader,
		downloader:  downloader,
		maxFileSize: maxFileSize,
		logger:      log,
	}
}

// CreateFile records upload in the current folder and sends its bytes to the
// returned upload URL. If the record is created but the bytes are not stored,
// the listing is still refreshed and an upload failure is reported.
func (s *FileService) CreateFile(ctx context.Context, upload domain.FileUpload, progress s3.ProgressFunc) domain.Outcome {
	if upload.Size > s.maxFileSize {
		err := &domain.SizeLimitError{Size: upload.Size, Limit: s.maxFileSize}
		return domain.FailureFrom("File Too Large",
			fmt.Sprintf("File size exceeds %s limit. Please select a smaller file.", sizeLimitLabel(s.maxFileSize)), err)
	}
	title, err := validateTitle(upload.Name)
	if err != nil {
		return domain.FailureFrom("Invalid File Name", err.Error(), err)
	}
	snap := s.state.Snapshot()
	if err := checkCreatable(snap); err != nil {
		return domain.FailureFrom("File Upload Unavailable", err.Error(), err)
	}
	if err := findDuplicate(snap.Listing, title, domain.ItemTypeFile); err != nil {
		return domain.FailureFrom("File Already Exists",
			fmt.Sprintf("A file named %q already exists in this location", title), err)
	}

	doc, target, err := s.store.CreateFile(ctx, title, domain.SizeInKB(upload.Size), snap.FolderID)
	if err != nil {
		s.logger.Warn("create file failed", zap.String(logger.FieldTitle, title), zap.Error(err))
		return domain.FailureFrom("File Upload Unsuccessful",
			fmt.Sprintf("File %s upload failed. Please try again", title), err)
	}

	contentType := contentTypeOf(upload)
	if err := s.uploader.Upload(ctx, target, upload.Content, upload.Size, contentType, progress); err != nil {
		s.logger.Warn("file recorded but upload failed",
			zap.Int64(logger.FieldDocumentID, doc.ID),
			zap.String(logger.FieldTitle, title),
			zap.Error(err))
		failure := domain.FailureFrom("File Upload Incomplete",
			fmt.Sprintf("File %s was recorded but its content could not be uploaded. Please try again", title), err)
		if refreshErr := s.listing.Refresh(ctx); refreshErr != nil {
			s.logger.Warn("refresh after partial upload failed", zap.Error(refreshErr))
		}
		return failure
	}
	s.logger.Info("file added",
		zap.Int64(logger.FieldDocumentID, doc.ID),
		zap.String(logger.FieldTitle, title),
		zap.Int64(logger.FieldSize, upload.Size),
		zap.String(logger.FieldContentType, contentType))

	return domain.Success{
		Title:      "File Successfully Added",
		Message:    fmt.Sprintf("File %s has been successfully added", title),
		RefreshErr: s.listing.Refresh(ctx),
	}
}

// Open copies the stored bytes of doc to w.
func (s *FileService) Open(ctx context.Context, doc domain.Document, w io.Writer) domain.Outcome {
	if doc.IsFolder() || doc.StorageURL == nil || *doc.StorageURL == "" {
		err := &domain.ValidationError{Field: doc.Title, Err: fmt.Errorf("%s has no stored content", itemLabel(doc))}
		return domain.FailureFrom("Cannot Open Item", err.Error(), err)
	}

	obj, err := s.downloader.Download(ctx, *doc.StorageURL)
	if err != nil {
		s.logger.Warn("download failed", zap.Int64(logger.FieldDocumentID, doc.ID), zap.Error(err))
		return domain.FailureFrom("File Download Unsuccessful",
			fmt.Sprintf("File %s could not be downloaded. Please try again", doc.Title), err)
	}
	defer obj.Close()

	n, err := io.Copy(w, obj)
	if err != nil {
		return domain.FailureFrom("File Download Unsuccessful",
			fmt.Sprintf("File %s could not be downloaded. Please try again", doc.Title),
			&domain.NetworkError{Op: "download", Err: err})
	}
	kb := domain.SizeInKB(n)
	return domain.Success{
		Title:   "File Downloaded",
		Message: fmt.Sprintf("File %s downloaded (%s)", doc.Title, format.Size(&kb)),
	}
}

func contentTypeOf(upload domain.FileUpload) string {
	if upload.MIMEType != "" {
		return upload.MIMEType
	}
	if t := mime.TypeByExtension(filepath.Ext(upload.Name)); t != "" {
		return t
	}
	return defaultContentType
}

func sizeLimitLabel(limit int64) string {
	const mb = 1024 * 1024
	if limit%mb == 0 {
		return fmt.Sprintf("%dMB", limit/mb)
	}
	kb := domain.SizeInKB(limit)
	return format.Size(&kb)
}
