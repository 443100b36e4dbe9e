package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"mydoc/internal/service"
	"mydoc/internal/session"
)

// FolderHandler serves navigation, search and folder creation commands.
type FolderHandler struct {
	listing *service.ListingService
	folders *service.FolderService
	state   *session.State
	out     *Renderer
}

func NewFolderHandler(listing *service.ListingService, folders *service.FolderService, state *session.State, out *Renderer) *FolderHandler {
	return &FolderHandler{listing: listing, folders: folders, state: state, out: out}
}

func (h *FolderHandler) List(ctx context.Context, args []string) error {
	h.out.Listing(h.state.Snapshot())
	return nil
}

func (h *FolderHandler) Refresh(ctx context.Context, args []string) error {
	return h.show(h.listing.Refresh(ctx))
}

func (h *FolderHandler) Tree(ctx context.Context, args []string) error {
	h.out.Tree(h.state.Snapshot())
	return nil
}

func (h *FolderHandler) Path(ctx context.Context, args []string) error {
	h.out.Path(h.state.Snapshot())
	return nil
}

// ChangeDir opens a folder of the current listing. ".." goes up one level
// and "/" goes home.
func (h *FolderHandler) ChangeDir(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	switch ref := args[0]; ref {
	case "/", "~":
		return h.show(h.listing.Home(ctx))
	case "..":
		return h.show(h.listing.Up(ctx))
	default:
		doc, err := h.listing.Find(ref)
		if err != nil {
			return err
		}
		return h.show(h.listing.OpenFolder(ctx, doc))
	}
}

func (h *FolderHandler) Home(ctx context.Context, args []string) error {
	return h.show(h.listing.Home(ctx))
}

func (h *FolderHandler) Jump(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("breadcrumb index must be a number: %w", err)
	}
	return h.show(h.listing.JumpTo(ctx, index))
}

func (h *FolderHandler) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return errUsage
	}
	return h.show(h.listing.Search(ctx, query))
}

func (h *FolderHandler) ClearSearch(ctx context.Context, args []string) error {
	return h.show(h.listing.Search(ctx, ""))
}

func (h *FolderHandler) MakeDir(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	h.out.Outcome(h.folders.CreateFolder(ctx, strings.Join(args, " ")))
	return nil
}

// show renders the listing after a navigation, or the error that stopped it.
func (h *FolderHandler) show(err error) error {
	if err != nil {
		return err
	}
	h.out.Listing(h.state.Snapshot())
	return nil
}
