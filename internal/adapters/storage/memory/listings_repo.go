package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"petpatrol/internal/domain/listings"
)

// ListingsStore guarda mascotas y posts en memoria. Las escrituras de una
// transacción quedan en staging hasta Commit; los ids se consumen aunque
// haya rollback, igual que una secuencia de Postgres.
type ListingsStore struct {
	mu sync.RWMutex

	nextPetID  int64
	nextPostID int64

	pets  map[int64]listings.Pet
	posts map[int64]listings.Post
}

var _ listings.Store = (*ListingsStore)(nil)

func NewListingsStore() *ListingsStore {
	return &ListingsStore{
		pets:  make(map[int64]listings.Pet),
		posts: make(map[int64]listings.Post),
	}
}

func (s *ListingsStore) BeginTx(ctx context.Context) (listings.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &listingsTx{
		store: s,
		pets:  make(map[int64]listings.Pet),
		posts: make(map[int64]listings.Post),
	}, nil
}

// Counts devuelve cuántas mascotas y posts confirmados hay.
func (s *ListingsStore) Counts() (pets, posts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pets), len(s.posts)
}

func (s *ListingsStore) List(ctx context.Context, f listings.ListFilter) ([]listings.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]listings.Listing, 0)
	for _, post := range s.posts {
		pet := s.pets[post.PetID]
		if !matches(f, post, pet) {
			continue
		}
		out = append(out, listings.Listing{Post: post, Pet: pet})
	}

	// Más recientes primero, igual que el adapter postgres.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Post.CreatedAt.Equal(out[j].Post.CreatedAt) {
			return out[i].Post.CreatedAt.After(out[j].Post.CreatedAt)
		}
		return out[i].Post.ID > out[j].Post.ID
	})

	if f.Offset >= len(out) {
		return []listings.Listing{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func matches(f listings.ListFilter, post listings.Post, pet listings.Pet) bool {
	switch {
	case f.DistrictID != 0 && pet.DistrictID != f.DistrictID:
		return false
	case f.AgeID != 0 && pet.AgeID != f.AgeID:
		return false
	case f.SexID != 0 && pet.SexID != f.SexID:
		return false
	case f.SizeID != 0 && pet.SizeID != f.SizeID:
		return false
	case f.TypeID != 0 && pet.TypeID != f.TypeID:
		return false
	case f.Category != 0 && post.Category != f.Category:
		return false
	case f.UserID != 0 && post.UserID != f.UserID:
		return false
	}
	return true
}

func (s *ListingsStore) GetByPostID(ctx context.Context, postID int64) (listings.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[postID]
	if !ok {
		return listings.Listing{}, listings.ErrNotFound
	}
	return listings.Listing{Post: post, Pet: s.pets[post.PetID]}, nil
}

var errTxDone = errors.New("transaction already committed or rolled back")

type listingsTx struct {
	store *ListingsStore
	done  bool

	pets  map[int64]listings.Pet
	posts map[int64]listings.Post
}

func (tx *listingsTx) InsertPet(ctx context.Context, p listings.Pet) (int64, error) {
	if err := tx.usable(ctx); err != nil {
		return 0, err
	}
	tx.store.mu.Lock()
	tx.store.nextPetID++
	p.ID = tx.store.nextPetID
	tx.store.mu.Unlock()

	p.PostID = nil
	tx.pets[p.ID] = p
	return p.ID, nil
}

func (tx *listingsTx) InsertPost(ctx context.Context, p listings.Post) (int64, error) {
	if err := tx.usable(ctx); err != nil {
		return 0, err
	}
	if _, ok := tx.pets[p.PetID]; !ok {
		return 0, errors.New("post references unknown mascota_id")
	}
	tx.store.mu.Lock()
	tx.store.nextPostID++
	p.ID = tx.store.nextPostID
	tx.store.mu.Unlock()

	tx.posts[p.ID] = p
	return p.ID, nil
}

func (tx *listingsTx) LinkPet(ctx context.Context, petID, postID int64) error {
	if err := tx.usable(ctx); err != nil {
		return err
	}
	p, ok := tx.pets[petID]
	if !ok {
		return errors.New("mascota not found in transaction")
	}
	if _, ok := tx.posts[postID]; !ok {
		return errors.New("post not found in transaction")
	}
	p.PostID = &postID
	tx.pets[petID] = p
	return nil
}

func (tx *listingsTx) Commit() error {
	if tx.done {
		return errTxDone
	}
	tx.done = true

	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	for id, p := range tx.pets {
		tx.store.pets[id] = p
	}
	for id, p := range tx.posts {
		tx.store.posts[id] = p
	}
	return nil
}

func (tx *listingsTx) Rollback() error {
	tx.done = true
	tx.pets = nil
	tx.posts = nil
	return nil
}

func (tx *listingsTx) usable(ctx context.Context) error {
	if tx.done {
		return errTxDone
	}
	return ctx.Err()
}
