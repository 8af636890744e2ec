// Package app holds the application services and business logic.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"bodycomp/internal/domain"

	"github.com/google/uuid"
)

// EntriesKey is the blob store key the entry collection is saved under.
const EntriesKey = "entries"

// Recorder receives store events. A nil Recorder is allowed.
type Recorder interface {
	Mutation(op string, err error)
	EntryCount(n int)
}

// EntryService owns the ordered entry collection and keeps it in sync with
// the blob store after every mutation.
type EntryService struct {
	mu      sync.Mutex
	store   domain.BlobStore
	entries []domain.Entry
	strict  bool
	rec     Recorder
	newID   func() string
}

// Option configures an EntryService.
type Option func(*EntryService)

// WithStrictDerivation makes Add and Update reject waist/neck pairs the Navy
// formula cannot use instead of storing the entry without derived fields.
func WithStrictDerivation(strict bool) Option {
	return func(s *EntryService) { s.strict = strict }
}

// WithRecorder reports mutations to rec.
func WithRecorder(rec Recorder) Option {
	return func(s *EntryService) { s.rec = rec }
}

// NewEntryService creates an EntryService backed by the given blob store.
// The collection starts empty; call Load to read the stored one.
func NewEntryService(store domain.BlobStore, opts ...Option) *EntryService {
	s := &EntryService{
		store: store,
		newID: func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// MergeResult reports what Merge did.
type MergeResult struct {
	Added    int `json:"added"`
	Replaced int `json:"replaced"`
	Total    int `json:"total"`
}

// Load replaces the in-memory collection with the stored one. Stored entries
// without a valid, unique ID are given one; the IDs are written back on the
// next save.
func (s *EntryService) Load(ctx context.Context) error {
	data, err := s.store.GetBlob(ctx, EntriesKey)
	if err != nil {
		return fmt.Errorf("%w: load: %v", domain.ErrPersistence, err)
	}
	var entries []domain.Entry
	if len(data) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("%w: decode stored entries: %v", domain.ErrPersistence, err)
		}
	}
	seen := make(map[string]bool, len(entries))
	for i := range entries {
		id, ok := canonicalID(entries[i].ID)
		if !ok || seen[id] {
			id = s.newID()
		}
		entries[i].ID = id
		seen[id] = true
	}
	domain.SortEntries(entries)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.recordCount()
	return nil
}

// List returns a copy of the collection in date order.
func (s *EntryService) List() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given ID.
func (s *EntryService) Get(id string) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Entry{}, domain.ErrEntryNotFound
	}
	return s.entries[i], nil
}

// Latest returns the most recent entry, used to prefill the entry form.
func (s *EntryService) Latest() (domain.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return domain.Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Add derives and stores a new entry and returns it with its position in the
// ordered collection.
func (s *EntryService) Add(ctx context.Context, raw domain.RawEntry) (domain.Entry, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.derive(raw)
	if err != nil {
		return domain.Entry{}, -1, s.fail("add", err)
	}
	if s.indexOfDate(raw.Date, "") >= 0 {
		return domain.Entry{}, -1, s.fail("add", fmt.Errorf("%w: %s", domain.ErrDuplicateDate, raw.Date))
	}
	entry.ID = s.newID()

	next := s.clone(len(s.entries) + 1)
	next = append(next, entry)
	domain.SortEntries(next)

	if err := s.commit(ctx, next); err != nil {
		return domain.Entry{}, -1, s.fail("add", err)
	}
	s.succeed("add")
	return entry, s.indexOf(entry.ID), nil
}

// Update replaces the entry with the given ID by a freshly derived one. The
// entry keeps its ID; its date may change as long as no other entry uses it.
func (s *EntryService) Update(ctx context.Context, id string, raw domain.RawEntry) (domain.Entry, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Entry{}, -1, s.fail("update", domain.ErrEntryNotFound)
	}
	entry, err := s.derive(raw)
	if err != nil {
		return domain.Entry{}, -1, s.fail("update", err)
	}
	if s.indexOfDate(raw.Date, id) >= 0 {
		return domain.Entry{}, -1, s.fail("update", fmt.Errorf("%w: %s", domain.ErrDuplicateDate, raw.Date))
	}
	entry.ID = id

	next := s.clone(len(s.entries))
	next[i] = entry
	domain.SortEntries(next)

	if err := s.commit(ctx, next); err != nil {
		return domain.Entry{}, -1, s.fail("update", err)
	}
	s.succeed("update")
	return entry, s.indexOf(id), nil
}

// Delete removes the entry with the given ID. An unknown ID is a no-op and
// reports false.
func (s *EntryService) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	next := s.clone(len(s.entries) - 1)
	next = append(next[:i], next[i+1:]...)
	domain.SortEntries(next)

	if err := s.commit(ctx, next); err != nil {
		return false, s.fail("delete", err)
	}
	s.succeed("delete")
	return true, nil
}

// Merge reconciles incoming entries with the collection by date. An incoming
// entry whose date is already present replaces the stored entry wholesale,
// keeping only the stored ID. Imported derived fields are trusted as they
// are and not recomputed. Later incoming entries win over earlier ones with
// the same date, so merging the same set twice changes nothing. An incoming
// ID is kept only when it is a UUID not already in use.
func (s *EntryService) Merge(ctx context.Context, incoming []domain.Entry) (MergeResult, error) {
	for i, e := range incoming {
		if e.Date == "" {
			return MergeResult{}, s.fail("merge", fmt.Errorf("%w: record %d has no date", domain.ErrInvalidImportFormat, i))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.clone(len(s.entries) + len(incoming))
	byDate := make(map[string]int, len(next))
	ids := make(map[string]bool, len(next))
	for i, e := range next {
		byDate[e.Date] = i
		ids[e.ID] = true
	}

	var res MergeResult
	for _, in := range incoming {
		if i, ok := byDate[in.Date]; ok {
			in.ID = next[i].ID
			next[i] = in
			res.Replaced++
			continue
		}
		id, ok := canonicalID(in.ID)
		if !ok || ids[id] {
			id = s.newID()
		}
		in.ID = id
		ids[id] = true
		byDate[in.Date] = len(next)
		next = append(next, in)
		res.Added++
	}
	domain.SortEntries(next)
	res.Total = len(next)

	if err := s.commit(ctx, next); err != nil {
		return MergeResult{}, s.fail("merge", err)
	}
	s.succeed("merge")
	return res, nil
}

// canonicalID returns id in canonical UUID form, or false when id is not a
// UUID.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func (s *EntryService) derive(raw domain.RawEntry) (domain.Entry, error) {
	if err := raw.Validate(); err != nil {
		return domain.Entry{}, err
	}
	if s.strict {
		return domain.DeriveStrict(raw)
	}
	return domain.Derive(raw), nil
}

// commit saves next and, only if that succeeds, makes it the collection.
func (s *EntryService) commit(ctx context.Context, next []domain.Entry) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: encode entries: %v", domain.ErrPersistence, err)
	}
	if err := s.store.PutBlob(ctx, EntriesKey, data); err != nil {
		return fmt.Errorf("%w: save: %v", domain.ErrPersistence, err)
	}
	s.entries = next
	s.recordCount()
	return nil
}

func (s *EntryService) clone(capacity int) []domain.Entry {
	if capacity < len(s.entries) {
		capacity = len(s.entries)
	}
	out := make([]domain.Entry, len(s.entries), capacity)
	copy(out, s.entries)
	return out
}

func (s *EntryService) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// indexOfDate finds an entry dated date other than the one with ID except.
func (s *EntryService) indexOfDate(date, except string) int {
	for i, e := range s.entries {
		if e.Date == date && e.ID != except {
			return i
		}
	}
	return -1
}

func (s *EntryService) fail(op string, err error) error {
	if s.rec != nil {
		s.rec.Mutation(op, err)
	}
	return err
}

func (s *EntryService) succeed(op string) {
	if s.rec != nil {
		s.rec.Mutation(op, nil)
	}
}

func (s *EntryService) recordCount() {
	if s.rec != nil {
		s.rec.EntryCount(len(s.entries))
	}
}
