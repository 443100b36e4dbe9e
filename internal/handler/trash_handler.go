package handler

import (
	"context"
	"fmt"

	"mydoc/internal/domain"
	"mydoc/internal/service"
	"mydoc/internal/session"
)

// TrashHandler serves the Bin commands.
type TrashHandler struct {
	listing *service.ListingService
	trash   *service.TrashService
	state   *session.State
	out     *Renderer
}

func NewTrashHandler(listing *service.ListingService, trash *service.TrashService, state *session.State, out *Renderer) *TrashHandler {
	return &TrashHandler{listing: listing, trash: trash, state: state, out: out}
}

func (h *TrashHandler) Bin(ctx context.Context, args []string) error {
	if err := h.listing.Bin(ctx); err != nil {
		return err
	}
	h.out.Listing(h.state.Snapshot())
	return nil
}

// Remove moves an item of the current listing to the Bin.
func (h *TrashHandler) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	doc, err := h.listing.Find(args[0])
	if err != nil {
		return err
	}
	if doc.InBin() {
		return &domain.ValidationError{Field: doc.Title, Err: fmt.Errorf("already in the Bin")}
	}
	h.out.Outcome(h.trash.Delete(ctx, doc))
	return nil
}

// Restore takes an item of the Bin listing back out.
func (h *TrashHandler) Restore(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	doc, err := h.listing.Find(args[0])
	if err != nil {
		return err
	}
	if !doc.InBin() {
		return &domain.ValidationError{Field: doc.Title, Err: fmt.Errorf("not in the Bin")}
	}
	h.out.Outcome(h.trash.Restore(ctx, doc))
	return nil
}
