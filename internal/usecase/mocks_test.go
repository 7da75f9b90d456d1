//go:build !integration

// File: internal/usecase/mocks_test.go
package usecase_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"shopping-list-bot/internal/domain"
	"shopping-list-bot/internal/domain/model"
	"shopping-list-bot/internal/domain/ports/repository"
	"shopping-list-bot/internal/infra/metrics"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

var (
	metricsOnce sync.Once
	metricsReg  = prometheus.NewRegistry()
)

// storeErrors reads store_call_errors_total for op.
func storeErrors(t *testing.T, op string) float64 {
	t.Helper()
	metricsOnce.Do(func() { metrics.MustRegisterWith(metricsReg) })
	families, err := metricsReg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "store_call_errors_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "op" && lp.GetValue() == op {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

// ---- Mock UserRepository ----

// MockUserRepo is an in-memory user store. Set a Func field to override a method.
type MockUserRepo struct {
	mu    sync.Mutex
	users map[int64]*model.User

	CreateCalls int

	FindByTelegramIDFunc func(ctx context.Context, tgID int64) (*model.User, error)
	CreateFunc           func(ctx context.Context, u *model.User) (bool, error)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{users: make(map[int64]*model.User)}
}

func (m *MockUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	if m.FindByTelegramIDFunc != nil {
		return m.FindByTelegramIDFunc(ctx, tgID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) (bool, error) {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.TelegramID]; ok {
		return false, nil
	}
	cp := *u
	m.users[u.TelegramID] = &cp
	return true, nil
}

func (m *MockUserRepo) CountUsers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// ---- Mock ItemRepository ----

type MockItemRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []*model.ShoppingItem

	InsertFunc      func(ctx context.Context, it *model.ShoppingItem) error
	ListByOwnerFunc func(ctx context.Context, ownerID int64) ([]*model.ShoppingItem, error)
}

var _ repository.ItemRepository = (*MockItemRepo)(nil)

func NewMockItemRepo() *MockItemRepo { return &MockItemRepo{} }

func (m *MockItemRepo) Insert(ctx context.Context, it *model.ShoppingItem) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, it)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	it.ID = m.nextID
	it.CreatedAt = time.Now()
	cp := *it
	m.items = append(m.items, &cp)
	return nil
}

func (m *MockItemRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*model.ShoppingItem, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.ShoppingItem
	for _, it := range m.items {
		if it.OwnerID == ownerID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockItemRepo) deleteWhere(match func(*model.ShoppingItem) bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	var n int64
	for _, it := range m.items {
		if match(it) {
			n++
			continue
		}
		kept = append(kept, it)
	}
	m.items = kept
	return n
}

func (m *MockItemRepo) DeleteByID(ctx context.Context, ownerID, id int64) (int64, error) {
	return m.deleteWhere(func(it *model.ShoppingItem) bool { return it.OwnerID == ownerID && it.ID == id }), nil
}

func (m *MockItemRepo) DeleteByName(ctx context.Context, ownerID int64, name string) (int64, error) {
	return m.deleteWhere(func(it *model.ShoppingItem) bool { return it.OwnerID == ownerID && it.Name == name }), nil
}

func (m *MockItemRepo) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	return m.deleteWhere(func(it *model.ShoppingItem) bool { return it.OwnerID == ownerID }), nil
}
