package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/personal-color/internal/domain"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

// MemoryStore keeps users, analyses and audit logs in-process. It backs the
// "memory" store driver and the use case tests.
type MemoryStore struct {
	mu       sync.RWMutex
	now      func() time.Time
	users    map[uint]models.User
	analyses map[uint]models.ColorAnalysis
	audits   []models.AuditLog

	nextUserID     uint
	nextAnalysisID uint
	nextAuditID    uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:      time.Now,
		users:    make(map[uint]models.User),
		analyses: make(map[uint]models.ColorAnalysis),
	}
}

// Users returns a view implementing the user repository.
func (m *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{m: m}
}

// Analyses returns a view implementing the analysis repository.
func (m *MemoryStore) Analyses() *MemoryAnalysisRepository {
	return &MemoryAnalysisRepository{m: m}
}

// Audits returns a view implementing the audit repository.
func (m *MemoryStore) Audits() *MemoryAuditRepository {
	return &MemoryAuditRepository{m: m}
}

// ===============================
// Users
// ===============================

type MemoryUserRepository struct {
	m *MemoryStore
}

func (r *MemoryUserRepository) Create(_ context.Context, u *models.User) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}

	m.nextUserID++
	u.ID = m.nextUserID
	now := m.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	m.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	u, ok := r.m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r *MemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *MemoryUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *MemoryUserRepository) find(match func(models.User) bool) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, u := range r.m.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryUserRepository) Update(_ context.Context, u *models.User) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, other := range m.users {
		if id != u.ID && (other.Email == u.Email || other.Username == u.Username) {
			return domain.ErrDuplicate
		}
	}

	current.Email = u.Email
	current.Username = u.Username
	current.PasswordHash = u.PasswordHash
	current.Name = u.Name
	current.Active = u.Active
	current.UpdatedAt = m.now()
	m.users[u.ID] = current
	return nil
}

func (r *MemoryUserRepository) TouchLastLogin(_ context.Context, id uint, at time.Time) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.LastLoginAt = &at
	m.users[id] = u
	return nil
}

// ===============================
// Analyses
// ===============================

type MemoryAnalysisRepository struct {
	m *MemoryStore
}

func (r *MemoryAnalysisRepository) Create(_ context.Context, a *models.ColorAnalysis) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[a.UserID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range m.analyses {
		if existing.StoredFileName == a.StoredFileName {
			return domain.ErrDuplicate
		}
	}

	m.nextAnalysisID++
	a.ID = m.nextAnalysisID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = m.now()
	}
	m.analyses[a.ID] = cloneAnalysis(*a)
	return nil
}

func (r *MemoryAnalysisRepository) GetByID(_ context.Context, id uint) (*models.ColorAnalysis, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	a, ok := r.m.analyses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneAnalysis(a)
	return &out, nil
}

func (r *MemoryAnalysisRepository) Latest(_ context.Context, userID uint) (*models.ColorAnalysis, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	items := r.m.byUser(userID)
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return &items[0], nil
}

func (r *MemoryAnalysisRepository) ListByUser(
	_ context.Context,
	userID uint,
	offset int,
	limit int,
) ([]models.ColorAnalysis, int64, error) {

	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	items := r.m.byUser(userID)
	total := int64(len(items))

	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []models.ColorAnalysis{}, total, nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end], total, nil
}

func (r *MemoryAnalysisRepository) Delete(_ context.Context, id uint) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.analyses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.analyses, id)
	return nil
}

func (r *MemoryAnalysisRepository) CountByColorType(
	_ context.Context,
	userID uint,
) (map[models.ColorType]int64, error) {

	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make(map[models.ColorType]int64)
	for _, a := range r.m.analyses {
		if a.UserID == userID {
			out[a.ColorType]++
		}
	}
	return out, nil
}

// byUser returns copies ordered by created_at DESC, id DESC. Callers hold the lock.
func (m *MemoryStore) byUser(userID uint) []models.ColorAnalysis {
	out := make([]models.ColorAnalysis, 0)
	for _, a := range m.analyses {
		if a.UserID == userID {
			out = append(out, cloneAnalysis(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func cloneAnalysis(a models.ColorAnalysis) models.ColorAnalysis {
	if a.DominantColors != nil {
		a.DominantColors = append([]string(nil), a.DominantColors...)
	}
	if a.ThumbnailFileName != nil {
		name := *a.ThumbnailFileName
		a.ThumbnailFileName = &name
	}
	return a
}

// ===============================
// Audit
// ===============================

type MemoryAuditRepository struct {
	m *MemoryStore
}

func (r *MemoryAuditRepository) Save(_ context.Context, entry *models.AuditLog) error {
	m := r.m
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextAuditID++
	entry.ID = m.nextAuditID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = m.now()
	}
	m.audits = append(m.audits, *entry)
	return nil
}

func (r *MemoryAuditRepository) ListByUser(_ context.Context, userID uint, limit int) ([]models.AuditLog, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]models.AuditLog, 0)
	for i := len(r.m.audits) - 1; i >= 0; i-- {
		e := r.m.audits[i]
		if e.UserID != nil && *e.UserID == userID {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}
