package app

import (
	"context"

	"bodycomp/internal/domain"
)

// Editor tracks one entry form. It is idle until Begin selects an entry to
// edit; the next successful Submit updates that entry and returns the form to
// idle. While idle, Submit adds a new entry.
type Editor struct {
	entries *EntryService
	target  string
}

// NewEditor returns an idle Editor over entries.
func NewEditor(entries *EntryService) *Editor {
	return &Editor{entries: entries}
}

// Begin starts editing the entry with the given ID and returns it so the form
// can be prefilled. It replaces any edit already in progress.
func (e *Editor) Begin(id string) (domain.Entry, error) {
	entry, err := e.entries.Get(id)
	if err != nil {
		return domain.Entry{}, err
	}
	e.target = id
	return entry, nil
}

// Cancel abandons the edit in progress, if any.
func (e *Editor) Cancel() {
	e.target = ""
}

// Editing returns the ID of the entry being edited.
func (e *Editor) Editing() (string, bool) {
	return e.target, e.target != ""
}

// Submit stores raw: as an update of the edited entry while editing, as a new
// entry otherwise. A failed submit keeps the form in its current state.
func (e *Editor) Submit(ctx context.Context, raw domain.RawEntry) (domain.Entry, int, error) {
	if e.target == "" {
		return e.entries.Add(ctx, raw)
	}
	entry, idx, err := e.entries.Update(ctx, e.target, raw)
	if err != nil {
		return domain.Entry{}, -1, err
	}
	e.target = ""
	return entry, idx, nil
}
