package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mydoc/internal/domain"
	"mydoc/internal/fakeapi"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in, dir, name string
	}{
		{"Reports", "", "Reports"},
		{"/Work/Reports/", "Work", "Reports"},
		{"a/b/c.txt", "a/b", "c.txt"},
	}
	for _, tt := range tests {
		dir, name := splitPath(tt.in)
		assert.Equal(t, tt.dir, dir, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
	}
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestCommandsAgainstService(t *testing.T) {
	chdir(t, t.TempDir())
	srv := fakeapi.New()
	defer srv.Close()
	work := srv.AddFolder("Work", nil)

	require.NoError(t, runCommand(t, "--api-url", srv.URL, "mkdir", "Work/Reports"))
	reports, ok := srv.Document(2)
	require.True(t, ok)
	assert.Equal(t, "Reports", reports.Title)
	require.NotNil(t, reports.ParentID)
	assert.Equal(t, work.ID, *reports.ParentID)

	err := runCommand(t, "--api-url", srv.URL, "mkdir", "work/reports")
	assert.ErrorIs(t, err, errOutcomeFailed)

	local := filepath.Join(t.TempDir(), "plan.txt")
	require.NoError(t, os.WriteFile(local, []byte("plan"), 0o600))
	require.NoError(t, runCommand(t, "--api-url", srv.URL, "upload", local, "Work/Reports"))
	data, _, ok := srv.Object(3)
	require.True(t, ok)
	assert.Equal(t, "plan", string(data))

	require.NoError(t, runCommand(t, "--api-url", srv.URL, "open", "Work/Reports/plan.txt", "-o", "copy.txt"))
	copied, err := os.ReadFile("copy.txt")
	require.NoError(t, err)
	assert.Equal(t, "plan", string(copied))

	require.NoError(t, runCommand(t, "--api-url", srv.URL, "rm", "Work/Reports/plan.txt"))
	doc, _ := srv.Document(3)
	assert.True(t, doc.InBin())

	require.NoError(t, runCommand(t, "--api-url", srv.URL, "restore", "plan.txt"))
	doc, _ = srv.Document(3)
	assert.False(t, doc.InBin())

	require.NoError(t, runCommand(t, "--api-url", srv.URL, "ls", "Work"))
	require.NoError(t, runCommand(t, "--api-url", srv.URL, "search", "plan"))
	require.NoError(t, runCommand(t, "--api-url", srv.URL, "bin"))

	assert.Error(t, runCommand(t, "--api-url", srv.URL, "ls", "Missing"))
}

func TestOpenDefaultsToBaseName(t *testing.T) {
	root := t.TempDir()
	work := filepath.Join(root, "work")
	require.NoError(t, os.Mkdir(work, 0o700))
	chdir(t, work)
	srv := fakeapi.New()
	defer srv.Close()
	escaped := srv.AddFile("../escaped.txt", nil, []byte("data"))
	dots := srv.AddFile("..", nil, []byte("data"))

	require.NoError(t, runCommand(t, "--api-url", srv.URL, "open", fmt.Sprintf("#%d", escaped.ID)))
	_, err := os.Stat(filepath.Join(root, "escaped.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	data, err := os.ReadFile(filepath.Join(work, "escaped.txt"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	err = runCommand(t, "--api-url", srv.URL, "open", fmt.Sprintf("#%d", dots.ID))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
