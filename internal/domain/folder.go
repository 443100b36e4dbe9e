package domain

const (
	RootTitle = "Home"
	BinTitle  = "Bin"
)

// Breadcrumb is one step of the path from the root to the current folder.
// FolderID is nil for the root entry.
type Breadcrumb struct {
	FolderID *int64 `json:"folderId"`
	Title    string `json:"title"`
}

func RootBreadcrumb() Breadcrumb {
	return Breadcrumb{Title: RootTitle}
}

func (b Breadcrumb) IsRoot() bool {
	return b.FolderID == nil
}
