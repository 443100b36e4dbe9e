package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork       = errors.New("network error")
	ErrCreate        = errors.New("create failed")
	ErrUpload        = errors.New("upload failed")
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate name")
	ErrSizeLimit     = errors.New("size limit exceeded")
	ErrValidation    = errors.New("validation failed")
)

// NetworkError is returned when the document service cannot be reached or
// answers with a non-success status.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": network error"
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// CreateError is returned when the service refuses to create a document.
type CreateError struct {
	Title      string
	ItemType   ItemType
	StatusCode int
	Err        error
}

func (e *CreateError) Error() string {
	msg := fmt.Sprintf("create %s %q", e.ItemType, e.Title)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CreateError) Unwrap() error { return e.Err }

func (e *CreateError) Is(target error) bool { return target == ErrCreate }

// UploadError is returned when object storage rejects the file bytes.
type UploadError struct {
	StatusCode int
	Err        error
}

func (e *UploadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upload: status %d", e.StatusCode)
	}
	if e.Err != nil {
		return "upload: " + e.Err.Error()
	}
	return "upload failed"
}

func (e *UploadError) Unwrap() error { return e.Err }

func (e *UploadError) Is(target error) bool { return target == ErrUpload }

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateNameError is raised locally, before any request, when a sibling of
// the same type already carries the title.
type DuplicateNameError struct {
	Title    string
	ItemType ItemType
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a %s named %q already exists in this location", e.ItemType, e.Title)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

type SizeLimitError struct {
	Size  int64
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("file size %d exceeds limit of %d bytes", e.Size, e.Limit)
}

func (e *SizeLimitError) Is(target error) bool { return target == ErrSizeLimit }

// ValidationError reports input rejected before any request is sent.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
