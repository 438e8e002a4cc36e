package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Favorites = append([]string(nil), u.Favorites...)
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, up ports.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.NationalID != nil {
		u.NationalID = *up.NationalID
	}
	if up.Phone != nil {
		u.Phone = *up.Phone
	}
	if up.AvatarURL != nil {
		u.AvatarURL = *up.AvatarURL
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) AddFavorite(_ context.Context, id, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, f := range u.Favorites {
		if f == projectID {
			return nil
		}
	}
	u.Favorites = append(u.Favorites, projectID)
	return nil
}

func (r *stubUserRepo) RemoveFavorite(_ context.Context, id, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.Favorites[:0]
	for _, f := range u.Favorites {
		if f != projectID {
			kept = append(kept, f)
		}
	}
	u.Favorites = kept
	return nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.User
	for _, u := range r.byID {
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, f.Page, f.Limit), int64(len(all)), nil
}

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Project
	order   []string
	fundErr error
	funded  map[string]int64
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[string]*domain.Project), funded: make(map[string]int64)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.byID[p.ID] = &c
	r.order = append(r.order, p.ID)
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	c := *p
	return &c, nil
}

func (r *stubProjectRepo) List(_ context.Context, f ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := map[string]bool{}
	for _, id := range f.IDs {
		ids[id] = true
	}
	var all []*domain.Project
	for _, id := range r.order {
		p := r.byID[id]
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Search)) {
			continue
		}
		if len(ids) > 0 && !ids[p.ID] {
			continue
		}
		c := *p
		all = append(all, &c)
	}
	return paginate(all, f.Page, f.Limit), int64(len(all)), nil
}

func (r *stubProjectRepo) AddFunds(_ context.Context, id string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fundErr != nil {
		return r.fundErr
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.MoneyReached += amount
	r.funded[id] += amount
	return nil
}

// ---------------------------------------------------------------------------
// Storage, tokens, resets
// ---------------------------------------------------------------------------

type stubStore struct {
	objects map[string][]byte
	putErr  error
	deleted []string
}

func newStubStore() *stubStore {
	return &stubStore{objects: make(map[string][]byte)}
}

func (s *stubStore) Put(_ context.Context, key string, up ports.Upload) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	b, err := io.ReadAll(up.Body)
	if err != nil {
		return "", err
	}
	s.objects[key] = b
	return "https://cdn.example.com/" + key, nil
}

func (s *stubStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	if _, ok := s.objects[key]; !ok {
		return "", errors.New("no such key")
	}
	return fmt.Sprintf("https://signed.example.com/%s?ttl=%d", key, int(ttl.Seconds())), nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

type stubIssuer struct {
	err error
}

func (i *stubIssuer) Issue(u *domain.User) (string, time.Time, error) {
	if i.err != nil {
		return "", time.Time{}, i.err
	}
	return "token-" + u.ID, time.Now().Add(time.Hour), nil
}

type stubVerifier struct {
	identities map[string]*domain.Identity
	calls      int
}

func (v *stubVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	v.calls++
	if token == "" {
		return nil, domain.ErrNoToken
	}
	id, ok := v.identities[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return id, nil
}

type stubResetStore struct {
	tokens map[string]string
}

func newStubResetStore() *stubResetStore {
	return &stubResetStore{tokens: make(map[string]string)}
}

func (s *stubResetStore) Save(_ context.Context, token, userID string) error {
	s.tokens[token] = userID
	return nil
}

func (s *stubResetStore) Consume(_ context.Context, token string) (string, error) {
	id, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.tokens, token)
	return id, nil
}
