package handler

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/disiqueira/gotree/v3"
	"golang.org/x/term"

	"mydoc/internal/domain"
	"mydoc/internal/format"
	"mydoc/internal/session"
)

const crumbSeparator = " › "

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Renderer draws listings, breadcrumbs and outcome boxes.
type Renderer struct {
	w   io.Writer
	now func() time.Time

	success lipgloss.Style
	failure lipgloss.Style
	heading lipgloss.Style
	folder  lipgloss.Style
	faint   lipgloss.Style
	warn    lipgloss.Style
}

// NewRenderer writes to w. Colors are only emitted when w is a color terminal.
func NewRenderer(w io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(w)
	box := lr.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return &Renderer{
		w:       w,
		now:     time.Now,
		success: box.BorderForeground(lipgloss.Color("#5fff87")),
		failure: box.BorderForeground(lipgloss.Color("#ff5f5f")),
		heading: lr.NewStyle().Bold(true),
		folder:  lr.NewStyle().Foreground(lipgloss.Color("#5fafff")).Bold(true),
		faint:   lr.NewStyle().Faint(true),
		warn:    lr.NewStyle().Foreground(lipgloss.Color("#ffd75f")),
	}
}

func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// Outcome draws a success or failure box.
func (r *Renderer) Outcome(o domain.Outcome) {
	var style lipgloss.Style
	var notes []string
	switch v := o.(type) {
	case domain.Success:
		style = r.success
		if v.RefreshErr != nil {
			notes = append(notes, r.warn.Render("The listing could not be refreshed: "+v.RefreshErr.Error()))
		}
	case domain.Failure:
		style = r.failure
		if v.Kind == domain.FailureNetwork && v.Err != nil && v.Err.Error() != v.Message {
			notes = append(notes, r.faint.Render(v.Err.Error()))
		}
	default:
		return
	}

	lines := append([]string{r.heading.Render(o.Heading()), o.Text()}, notes...)
	fmt.Fprintln(r.w, style.Render(strings.Join(lines, "\n")))
}

// Error draws err as a failure box under title.
func (r *Renderer) Error(title string, err error) {
	r.Outcome(domain.FailureFrom(title, err.Error(), err))
}

// Listing draws the current listing as a table.
func (r *Renderer) Listing(snap session.Snapshot) {
	fmt.Fprintln(r.w, r.heading.Render(r.Location(snap)))
	if len(snap.Listing) == 0 {
		fmt.Fprintln(r.w, r.faint.Render(emptyMessage(snap.View)))
		return
	}

	dateHeader := "Updated"
	if snap.View.Mode == session.ModeBin {
		dateHeader = "Deleted"
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Title", dateHeader, "Size", "Owner")
	for _, doc := range snap.Listing {
		date := doc.UpdatedAt
		if snap.View.Mode == session.ModeBin {
			date = doc.DeletedAt
		}
		t.Row(
			"#"+strconv.FormatInt(doc.ID, 10),
			r.title(doc),
			format.Date(date, r.now()),
			format.Size(doc.FileSizeKB),
			format.Text(doc.CreatedBy),
		)
	}
	fmt.Fprintln(r.w, t.String())
	fmt.Fprintln(r.w, r.faint.Render(summary(snap.Listing)))
}

// Tree draws the breadcrumb chain with the listing under the current folder.
func (r *Renderer) Tree(snap session.Snapshot) {
	var root, leaf gotree.Tree
	switch snap.View.Mode {
	case session.ModeBin:
		root = gotree.New(domain.BinTitle)
		leaf = root
	case session.ModeSearch:
		root = gotree.New(fmt.Sprintf("Search %q", snap.View.Query))
		leaf = root
	default:
		root = gotree.New(snap.Path[0].Title)
		leaf = root
		for _, crumb := range snap.Path[1:] {
			leaf = leaf.Add(crumb.Title + "/")
		}
	}
	for _, doc := range snap.Listing {
		leaf.Add(r.title(doc))
	}
	fmt.Fprint(r.w, root.Print())
}

// Path draws the breadcrumb entries with their indices.
func (r *Renderer) Path(snap session.Snapshot) {
	if snap.View.Mode == session.ModeBin {
		fmt.Fprintln(r.w, r.faint.Render("The breadcrumb is not available in the Bin"))
		return
	}
	for i, crumb := range snap.Path {
		marker := " "
		if i == len(snap.Path)-1 {
			marker = "*"
		}
		fmt.Fprintf(r.w, "%s %d  %s\n", marker, i, crumb.Title)
	}
}

// Location is the breadcrumb line, or the Bin or search heading.
func (r *Renderer) Location(snap session.Snapshot) string {
	switch snap.View.Mode {
	case session.ModeBin:
		return domain.BinTitle
	case session.ModeSearch:
		return fmt.Sprintf("Search results for %q", snap.View.Query)
	}
	titles := make([]string, len(snap.Path))
	for i, crumb := range snap.Path {
		titles[i] = crumb.Title
	}
	return strings.Join(titles, crumbSeparator)
}

func (r *Renderer) Prompt(snap session.Snapshot) string {
	return r.Location(snap) + "> "
}

func (r *Renderer) title(doc domain.Document) string {
	if doc.IsFolder() {
		return r.folder.Render(doc.Title + "/")
	}
	return doc.Title
}

func emptyMessage(view session.View) string {
	switch view.Mode {
	case session.ModeBin:
		return "The Bin is empty"
	case session.ModeSearch:
		return "No documents match the search"
	default:
		return "This folder is empty"
	}
}

func summary(docs []domain.Document) string {
	folders := 0
	for _, doc := range docs {
		if doc.IsFolder() {
			folders++
		}
	}
	files := len(docs) - folders
	return fmt.Sprintf("%d %s, %d %s", folders, format.Plural(folders, "folder"), files, format.Plural(files, "file"))
}
