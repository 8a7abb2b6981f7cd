package api_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercado-service/internal/media"
	"mercado-service/internal/model"
	"mercado-service/internal/repository"
)

// memStore backs the in-memory repositories used by the handler tests.
type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]model.User
	items     map[uuid.UUID]model.Item
	passwords map[uuid.UUID]model.Password
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]model.User{},
		items:     map[uuid.UUID]model.Item{},
		passwords: map[uuid.UUID]model.Password{},
	}
}

func (s *memStore) owner(id uuid.UUID) model.Owner {
	u := s.users[id]
	return model.Owner{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, PhotoPath: u.PhotoPath}
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(_ context.Context, user *model.User) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}

	created := *user
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.s.users[created.ID] = created

	return &created, nil
}

func (r memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r memUserRepo) Update(_ context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = patch.LastName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PhotoPath != nil {
		u.PhotoPath = patch.PhotoPath
	}
	r.s.users[id] = u

	return &u, nil
}

type memItemRepo struct{ s *memStore }

func (r memItemRepo) Create(_ context.Context, item *model.Item) (*model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *item
	created.ID = uuid.New()
	created.Owner = r.s.owner(item.UserID)
	r.s.items[created.ID] = created

	return &created, nil
}

func (r memItemRepo) FindAll(_ context.Context, ownerID *uuid.UUID) ([]model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []model.Item{}
	for _, it := range r.s.items {
		if ownerID == nil || it.UserID == *ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r memItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	it, ok := r.s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &it, nil
}

func (r memItemRepo) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	it, err := r.FindByID(ctx, id)
	if err != nil || it.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	return it, nil
}

func (r memItemRepo) UpdateOwned(_ context.Context, id, ownerID uuid.UUID, patch model.ItemPatch) (*model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	it, ok := r.s.items[id]
	if !ok || it.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		it.Title = *patch.Title
	}
	if patch.Description != nil {
		it.Description = patch.Description
	}
	if patch.PhotoPath != nil {
		it.PhotoPath = patch.PhotoPath
	}
	if patch.Price != nil {
		it.Price = *patch.Price
	}
	r.s.items[id] = it

	return &it, nil
}

func (r memItemRepo) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	it, ok := r.s.items[id]
	if !ok || it.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	delete(r.s.items, id)

	return &it, nil
}

type memPasswordRepo struct{ s *memStore }

func (r memPasswordRepo) Create(_ context.Context, password *model.Password) (*model.Password, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *password
	created.ID = uuid.New()
	created.Owner = r.s.owner(password.UserID)
	r.s.passwords[created.ID] = created

	return &created, nil
}

func (r memPasswordRepo) FindAll(_ context.Context, ownerID uuid.UUID) ([]model.Password, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []model.Password{}
	for _, p := range r.s.passwords {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memPasswordRepo) FindOwned(_ context.Context, id, ownerID uuid.UUID) (*model.Password, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.passwords[id]
	if !ok || p.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r memPasswordRepo) UpdateOwned(_ context.Context, id, ownerID uuid.UUID, patch model.PasswordPatch) (*model.Password, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.passwords[id]
	if !ok || p.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	if patch.Website != nil {
		p.Website = *patch.Website
	}
	if patch.Username != nil {
		p.Username = *patch.Username
	}
	if patch.Value != nil {
		p.Value = *patch.Value
	}
	if patch.LogoPath != nil {
		p.LogoPath = patch.LogoPath
	}
	r.s.passwords[id] = p

	return &p, nil
}

func (r memPasswordRepo) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) (*model.Password, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.passwords[id]
	if !ok || p.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	delete(r.s.passwords, id)

	return &p, nil
}

// memImageHost keeps uploaded assets in memory.
type memImageHost struct {
	mu     sync.Mutex
	assets map[string][]byte
}

func (h *memImageHost) Upload(_ context.Context, asset media.Asset, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.assets[asset.ID] = data
	return fmt.Sprintf("http://img.test/upload/%s%s", asset.ID, asset.Ext), nil
}

func (h *memImageHost) Destroy(_ context.Context, assetID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.assets[assetID]; !ok {
		return media.ErrAssetNotFound
	}
	delete(h.assets, assetID)
	return nil
}

// recordingRelay runs the real relay against memImageHost and remembers
// which URLs it produced and released.
type recordingRelay struct {
	relay *media.Relay

	mu      sync.Mutex
	uploads []string
	deletes []string
}

func newRecordingRelay() *recordingRelay {
	return &recordingRelay{relay: media.NewRelay(&memImageHost{assets: map[string][]byte{}})}
}

func (r *recordingRelay) Upload(ctx context.Context, localPath string) (string, error) {
	remoteURL, err := r.relay.Upload(ctx, localPath)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.uploads = append(r.uploads, remoteURL)
	return remoteURL, nil
}

func (r *recordingRelay) DeleteByURL(ctx context.Context, remoteURL string) {
	r.relay.DeleteByURL(ctx, remoteURL)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.deletes = append(r.deletes, remoteURL)
}

func (r *recordingRelay) counts() (uploads, deletes int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.uploads), len(r.deletes)
}
