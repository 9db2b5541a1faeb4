package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/kseleznev/url-alias/internal/models"
	"github.com/kseleznev/url-alias/internal/repository"
)

// MockAccountRepository implements repository.AccountRepository for testing
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
	nextID   int64
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*models.Account),
		nextID:   1,
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[account.Username]; exists {
		return repository.ErrUsernameTaken
	}

	account.ID = m.nextID
	account.CreatedAt = time.Now().UTC()
	m.nextID++

	stored := *account
	m.accounts[account.Username] = &stored
	return nil
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, exists := m.accounts[username]
	if !exists {
		return nil, repository.ErrAccountNotFound
	}

	copied := *account
	return &copied, nil
}

// MockAliasRepository implements repository.AliasRepository for testing.
// Хранит копии записей, поэтому безопасен при конкурентных тестах.
type MockAliasRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*models.Alias
	byCode map[string]int64
	nextID int64
}

func NewMockAliasRepository() *MockAliasRepository {
	return &MockAliasRepository{
		byID:   make(map[int64]*models.Alias),
		byCode: make(map[string]int64),
		nextID: 1,
	}
}

func (m *MockAliasRepository) Create(ctx context.Context, alias *models.Alias) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byCode[alias.ShortCode]; exists {
		return repository.ErrCodeExists
	}

	alias.ID = m.nextID
	m.nextID++

	stored := *alias
	m.byID[stored.ID] = &stored
	m.byCode[stored.ShortCode] = stored.ID
	return nil
}

func (m *MockAliasRepository) GetByCode(ctx context.Context, code string) (*models.Alias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, exists := m.byCode[code]
	if !exists {
		return nil, repository.ErrAliasNotFound
	}

	copied := *m.byID[id]
	return &copied, nil
}

func (m *MockAliasRepository) Deactivate(ctx context.Context, id, ownerID int64) (*models.Alias, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	alias, exists := m.byID[id]
	if !exists || alias.OwnerID != ownerID {
		return nil, repository.ErrAliasNotFound
	}

	alias.IsActive = false
	copied := *alias
	return &copied, nil
}

func (m *MockAliasRepository) ListByOwner(ctx context.Context, ownerID int64, activeOnly bool, skip, limit int) ([]*models.Alias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var aliases []*models.Alias
	for id := int64(1); id < m.nextID; id++ {
		alias, exists := m.byID[id]
		if !exists || alias.OwnerID != ownerID {
			continue
		}
		if activeOnly && !alias.IsActive {
			continue
		}
		copied := *alias
		aliases = append(aliases, &copied)
	}

	if limit <= 0 {
		return aliases, nil
	}
	if skip >= len(aliases) {
		return nil, nil
	}
	aliases = aliases[skip:]
	if len(aliases) > limit {
		aliases = aliases[:limit]
	}
	return aliases, nil
}

// IncrementClicks атомарно увеличивает счётчик алиаса.
func (m *MockAliasRepository) IncrementClicks(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alias, exists := m.byID[id]
	if !exists {
		return repository.ErrAliasNotFound
	}
	alias.ClicksCount++
	return nil
}

// ClicksCount возвращает текущее значение счётчика алиаса.
func (m *MockAliasRepository) ClicksCount(id int64) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if alias, exists := m.byID[id]; exists {
		return alias.ClicksCount
	}
	return 0
}

// MockClickRepository implements repository.ClickRepository for testing.
// Инкремент счётчика и добавление события выполняются под одним мьютексом,
// моделируя транзакционную запись настоящего хранилища.
type MockClickRepository struct {
	mu      sync.Mutex
	aliases *MockAliasRepository
	clicks  map[int64][]*models.Click
}

func NewMockClickRepository(aliases *MockAliasRepository) *MockClickRepository {
	return &MockClickRepository{
		aliases: aliases,
		clicks:  make(map[int64][]*models.Click),
	}
}

func (m *MockClickRepository) RecordRedirect(ctx context.Context, click *models.Click) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.aliases.IncrementClicks(click.AliasID); err != nil {
		return err
	}

	stored := *click
	m.clicks[click.AliasID] = append(m.clicks[click.AliasID], &stored)
	return nil
}

func (m *MockClickRepository) CountSince(ctx context.Context, aliasID int64, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, click := range m.clicks[aliasID] {
		if !click.ClickedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// Seed добавляет событие клика напрямую, минуя счётчик.
func (m *MockClickRepository) Seed(aliasID int64, clickedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clicks[aliasID] = append(m.clicks[aliasID], &models.Click{
		AliasID:   aliasID,
		ClickedAt: clickedAt,
	})
}

// Recorded возвращает число записанных событий для алиаса.
func (m *MockClickRepository) Recorded(aliasID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clicks[aliasID])
}
