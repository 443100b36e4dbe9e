package handler

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mydoc/internal/domain"
	"mydoc/internal/service"
	"mydoc/internal/service/s3"
)

// FileHandler serves the upload and download commands.
type FileHandler struct {
	listing     *service.ListingService
	files       *service.FileService
	out         *Renderer
	interactive bool
}

func NewFileHandler(listing *service.ListingService, files *service.FileService, out *Renderer, interactive bool) *FileHandler {
	return &FileHandler{listing: listing, files: files, out: out, interactive: interactive}
}

// Upload adds a local file to the current folder.
func (h *FileHandler) Upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	f, err := os.Open(args[0])
	if err != nil {
		return &domain.ValidationError{Field: "file", Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &domain.ValidationError{Field: "file", Err: err}
	}
	if info.IsDir() {
		return &domain.ValidationError{Field: "file", Err: fmt.Errorf("%s is a directory", args[0])}
	}

	upload := domain.FileUpload{
		Name:    filepath.Base(args[0]),
		Size:    info.Size(),
		Content: f,
	}
	h.out.Outcome(h.files.CreateFile(ctx, upload, h.progress(upload)))
	return nil
}

func (h *FileHandler) progress(upload domain.FileUpload) s3.ProgressFunc {
	if !h.interactive || upload.Size == 0 {
		return nil
	}
	return func(sent int64) {
		h.out.Printf("\rUploading %s: %3d%%", upload.Name, sent*100/upload.Size)
		if sent >= upload.Size {
			h.out.Printf("\n")
		}
	}
}

// Open downloads a file of the current listing to dest, the base name of the
// file's title in the working directory by default, or to the output when
// dest is "-".
func (h *FileHandler) Open(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	doc, err := h.listing.Find(args[0])
	if err != nil {
		return err
	}

	if doc.IsFolder() {
		h.out.Outcome(h.files.Open(ctx, doc, io.Discard))
		return nil
	}

	if len(args) == 2 && args[1] == "-" {
		if outcome := h.files.Open(ctx, doc, h.out.w); !outcome.Succeeded() {
			h.out.Outcome(outcome)
		}
		return nil
	}
	var dest string
	if len(args) == 2 {
		dest = args[1]
	} else if dest, err = doc.LocalName(); err != nil {
		return err
	}

	f, err := os.Create(dest)
	if err != nil {
		return &domain.ValidationError{Field: "dest", Err: err}
	}
	outcome := h.files.Open(ctx, doc, f)
	if err := f.Close(); err != nil && outcome.Succeeded() {
		return err
	}
	if !outcome.Succeeded() {
		os.Remove(dest)
	}
	h.out.Outcome(outcome)
	return nil
}
