package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, FailureUnknown},
		{"plain", errors.New("boom"), FailureUnknown},
		{"network", &NetworkError{Op: "list root", StatusCode: 500}, FailureNetwork},
		{"wrapped network", fmt.Errorf("refresh: %w", &NetworkError{Op: "search"}), FailureNetwork},
		{"create", &CreateError{Title: "Reports", ItemType: ItemTypeFolder}, FailureCreate},
		{"upload", &UploadError{StatusCode: 403}, FailureUpload},
		{"not found", &NotFoundError{Resource: "document", ID: "7"}, FailureNotFound},
		{"duplicate", &DuplicateNameError{Title: "a", ItemType: ItemTypeFile}, FailureDuplicateName},
		{"size", &SizeLimitError{Size: 2, Limit: 1}, FailureSizeLimit},
		{"validation", &ValidationError{Field: "title", Err: errors.New("cannot be blank")}, FailureInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FailureKindOf(tt.err))
		})
	}
}

func TestCreateErrorCarriesTitle(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&CreateError{Title: "Reports", ItemType: ItemTypeFolder, Err: cause})

	assert.ErrorIs(t, err, ErrCreate)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"Reports"`)
}

func TestOutcomeVariants(t *testing.T) {
	outcomes := []Outcome{
		Success{Title: "Folder Added", Message: "Folder a has been successfully added"},
		FailureFrom("Folder Already Exists", "exists", &DuplicateNameError{Title: "a", ItemType: ItemTypeFolder}),
	}

	var successes, failures int
	for _, o := range outcomes {
		switch v := o.(type) {
		case Success:
			successes++
			assert.True(t, v.Succeeded())
		case Failure:
			failures++
			assert.False(t, v.Succeeded())
			assert.Equal(t, FailureDuplicateName, v.Kind)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
}

func TestSizeInKB(t *testing.T) {
	assert.Equal(t, int64(0), SizeInKB(0))
	assert.Equal(t, int64(0), SizeInKB(511))
	assert.Equal(t, int64(1), SizeInKB(512))
	assert.Equal(t, int64(1), SizeInKB(1535))
	assert.Equal(t, int64(2), SizeInKB(1536))
	assert.Equal(t, int64(10240), SizeInKB(10*1024*1024))
}

func TestDocumentFromServiceJSON(t *testing.T) {
	payload := `{
		"id": 12,
		"title": "beach.jpg",
		"itemType": "file",
		"parentId": 3,
		"fileSizeKb": 240,
		"s3Url": "https://docs.s3.amazonaws.com/12/beach.jpg",
		"createdBy": "ana",
		"createdAt": "2024-03-01T10:00:00Z",
		"updatedAt": "2024-03-02T10:00:00Z",
		"deletedAt": null
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(payload), &doc))

	assert.False(t, doc.IsFolder())
	assert.False(t, doc.InBin())
	require.NotNil(t, doc.ParentID)
	assert.Equal(t, int64(3), *doc.ParentID)
	require.NotNil(t, doc.StorageURL)
	assert.Equal(t, "https://docs.s3.amazonaws.com/12/beach.jpg", *doc.StorageURL)
	assert.True(t, doc.SameName("BEACH.JPG"))
}

func TestBreadcrumbRoot(t *testing.T) {
	root := RootBreadcrumb()
	assert.True(t, root.IsRoot())
	assert.Equal(t, "Home", root.Title)
}

func TestDocumentLocalName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"report.pdf", "report.pdf"},
		{"../escaped.txt", "escaped.txt"},
		{"/etc/passwd", "passwd"},
		{"a/b/../c.txt", "c.txt"},
		{"notes/", "notes"},
	}
	for _, tt := range tests {
		name, err := Document{Title: tt.title}.LocalName()
		require.NoError(t, err, tt.title)
		assert.Equal(t, tt.want, name, tt.title)
	}

	for _, title := range []string{"", ".", "..", "/", "a/.."} {
		_, err := Document{Title: title}.LocalName()
		assert.ErrorIs(t, err, ErrValidation, title)
	}
}
