package domain

import "errors"

// Outcome is the user-facing result of a workflow: either Success or Failure.
type Outcome interface {
	outcome()
	Heading() string
	Text() string
	Succeeded() bool
}

type Success struct {
	Title   string
	Message string
	// RefreshErr is set when the mutation went through but the listing
	// could not be reloaded afterwards.
	RefreshErr error
}

func (Success) outcome()          {}
func (s Success) Heading() string { return s.Title }
func (s Success) Text() string    { return s.Message }
func (Success) Succeeded() bool   { return true }

type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureNetwork
	FailureCreate
	FailureUpload
	FailureNotFound
	FailureDuplicateName
	FailureSizeLimit
	FailureInvalid
)

func (k FailureKind) String() string {
	switch k {
	case FailureNetwork:
		return "network"
	case FailureCreate:
		return "create"
	case FailureUpload:
		return "upload"
	case FailureNotFound:
		return "not_found"
	case FailureDuplicateName:
		return "duplicate_name"
	case FailureSizeLimit:
		return "size_limit"
	case FailureInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

type Failure struct {
	Kind    FailureKind
	Title   string
	Message string
	Err     error
}

func (Failure) outcome()          {}
func (f Failure) Heading() string { return f.Title }
func (f Failure) Text() string    { return f.Message }
func (Failure) Succeeded() bool   { return false }

// FailureKindOf maps an error from the taxonomy to its failure kind.
func FailureKindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureUnknown
	case errors.Is(err, ErrDuplicateName):
		return FailureDuplicateName
	case errors.Is(err, ErrSizeLimit):
		return FailureSizeLimit
	case errors.Is(err, ErrValidation):
		return FailureInvalid
	case errors.Is(err, ErrNotFound):
		return FailureNotFound
	case errors.Is(err, ErrUpload):
		return FailureUpload
	case errors.Is(err, ErrCreate):
		return FailureCreate
	case errors.Is(err, ErrNetwork):
		return FailureNetwork
	default:
		return FailureUnknown
	}
}

// FailureFrom builds a Failure whose kind is derived from err.
func FailureFrom(title, message string, err error) Failure {
	return Failure{Kind: FailureKindOf(err), Title: title, Message: message, Err: err}
}
