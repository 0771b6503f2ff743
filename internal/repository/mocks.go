package repository

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/domain"
)

type MockUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int64]*domain.User),
	}
}

func (m *MockUserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return domain.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

type MockRefactoringRepository struct {
	mu      sync.RWMutex
	records []domain.Refactoring
	nextID  int64

	// для проверки write-behind в тестах
	CreateErr error
}

func NewMockRefactoringRepository() *MockRefactoringRepository {
	return &MockRefactoringRepository{nextID: 1}
}

func (m *MockRefactoringRepository) Create(ctx context.Context, r *domain.Refactoring) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return m.CreateErr
	}

	r.ID = m.nextID
	m.nextID++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	m.records = append(m.records, *r)
	return nil
}

func (m *MockRefactoringRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Refactoring, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Refactoring
	// записи добавляются по порядку, отдаём с конца
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		if m.records[i].UserID == userID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *MockRefactoringRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, r := range m.records {
		if r.UserID == userID {
			count++
		}
	}
	return count, nil
}

var (
	_ UserRepository        = (*MockUserRepository)(nil)
	_ RefactoringRepository = (*MockRefactoringRepository)(nil)
)
