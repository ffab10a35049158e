package maps

import (
	"fmt"

	"github.com/google/uuid"
)

// Storer is the persistence capability the library runs on. Satisfied
// by storage.FileStore[*Record].
type Storer interface {
	Save(string, *Record) error
	Get(string) *Record
	GetAll() map[string]*Record
}

// ErrNotFound reports an unknown map id.
var ErrNotFound = fmt.Errorf("map record not found")

// Library is the map-record surface exposed to collaborators: create,
// read, update, and query by visibility. Persistence failures surface
// to the caller untouched; the core does not retry.
type Library struct {
	store Storer
}

func NewLibrary(store Storer) *Library {
	return &Library{store: store}
}

// Create validates and persists a new record, returning its id.
func (l *Library) Create(r *Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("validating map record: %w", err)
	}

	id := uuid.New().String()
	if err := l.store.Save(id, r); err != nil {
		return "", fmt.Errorf("saving map record: %w", err)
	}
	return id, nil
}

// Get returns the record with the given id.
func (l *Library) Get(id string) (*Record, error) {
	r := l.store.Get(id)
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// Update overwrites an existing record.
func (l *Library) Update(id string, r *Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("validating map record: %w", err)
	}
	if l.store.Get(id) == nil {
		return ErrNotFound
	}
	if err := l.store.Save(id, r); err != nil {
		return fmt.Errorf("saving map record: %w", err)
	}
	return nil
}

// FindByName returns the first record whose name matches. Names are
// not unique; create distinct names when lookup by name matters.
func (l *Library) FindByName(name string) (string, *Record, error) {
	for id, r := range l.store.GetAll() {
		if r.Name == name {
			return id, r, nil
		}
	}
	return "", nil, ErrNotFound
}

// Query returns ids of records matching the visibility flag.
func (l *Library) Query(public bool) []string {
	var ids []string
	for id, r := range l.store.GetAll() {
		if r.Public == public {
			ids = append(ids, id)
		}
	}
	return ids
}
