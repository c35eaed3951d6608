package repos

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/sundayezeilo/repohub/internal/errx"
	"github.com/sundayezeilo/repohub/internal/idgen"
)

// idLength is the length of the canonical 8-4-4-4-12 text form.
const idLength = 36

var (
	ErrInvalidID = errors.New("invalid repository id")
	ErrNotFound  = errors.New("repository not found")
)

// Store holds the ordered collection of repositories.
//
// Update, Delete and Like report errx.Invalid when the id is not a
// well-formed UUID and errx.NotFound when no repository carries it. Syntax is
// always checked before existence.
type Store interface {
	List(ctx context.Context) ([]Repository, error)
	Create(ctx context.Context, in Input) (Repository, error)
	Update(ctx context.Context, id string, in Input) (Repository, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (Repository, error)
}

// StoreConfig holds configuration for the store.
type StoreConfig struct {
	IDGenerator idgen.Generator
}

// MemoryStore is a Store kept in process memory. Insertion order is list
// order. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Repository
	ids   idgen.Generator
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store. A nil config, or a nil IDGenerator,
// selects UUID v4 identifiers.
func NewMemoryStore(config *StoreConfig) *MemoryStore {
	if config == nil {
		config = &StoreConfig{}
	}

	ids := config.IDGenerator
	if ids == nil {
		ids = idgen.NewV4()
	}

	return &MemoryStore{
		items: []Repository{},
		ids:   ids,
	}
}

// ParseID parses the canonical 36-character hyphenated form of a UUID, in
// either case. The other spellings uuid.Parse tolerates (braces, a urn:uuid:
// prefix, bare hex) are rejected.
func ParseID(s string) (uuid.UUID, error) {
	if len(s) != idLength {
		return uuid.Nil, ErrInvalidID
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Repository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Repository, len(s.items))
	for i, r := range s.items {
		out[i] = r.clone()
	}
	return out, nil
}

func (s *MemoryStore) Create(_ context.Context, in Input) (Repository, error) {
	const op = "repos.store.Create"

	id, err := s.ids.Generate()
	if err != nil {
		return Repository{}, errx.E(op, errx.Internal, err)
	}

	r := Repository{
		ID:    id,
		Title: in.Title,
		URL:   in.URL,
		Techs: cloneTechs(in.Techs),
	}

	s.mu.Lock()
	s.items = append(s.items, r)
	s.mu.Unlock()

	return r.clone(), nil
}

// Update replaces the title, url and techs of the repository in place. The id,
// position and like count are kept.
func (s *MemoryStore) Update(_ context.Context, rawID string, in Input) (Repository, error) {
	const op = "repos.store.Update"

	id, err := ParseID(rawID)
	if err != nil {
		return Repository{}, errx.E(op, errx.Invalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Repository{}, errx.E(op, errx.NotFound, ErrNotFound)
	}

	s.items[i] = Repository{
		ID:    id,
		Title: in.Title,
		URL:   in.URL,
		Techs: cloneTechs(in.Techs),
		Likes: s.items[i].Likes,
	}
	return s.items[i].clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, rawID string) error {
	const op = "repos.store.Delete"

	id, err := ParseID(rawID)
	if err != nil {
		return errx.E(op, errx.Invalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errx.E(op, errx.NotFound, ErrNotFound)
	}

	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *MemoryStore) Like(_ context.Context, rawID string) (Repository, error) {
	const op = "repos.store.Like"

	id, err := ParseID(rawID)
	if err != nil {
		return Repository{}, errx.E(op, errx.Invalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Repository{}, errx.E(op, errx.NotFound, ErrNotFound)
	}

	s.items[i].Likes++
	return s.items[i].clone(), nil
}

// indexOf returns the position of the repository with the given id, or -1.
// The caller must hold s.mu.
func (s *MemoryStore) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.items, func(r Repository) bool {
		return r.ID == id
	})
}
