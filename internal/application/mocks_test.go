//go:build !integration

package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"shopping-list-bot/internal/application"
	"shopping-list-bot/internal/domain"
	"shopping-list-bot/internal/domain/model"
	"shopping-list-bot/internal/infra/i18n"
)

// ---- Mock user use case ----

type mockUserUC struct {
	mu         sync.Mutex
	registered map[int64]int

	EnsureRegisteredFunc func(ctx context.Context, tgID int64, name, username string) (bool, error)
}

func newMockUserUC() *mockUserUC { return &mockUserUC{registered: map[int64]int{}} }

func (m *mockUserUC) EnsureRegistered(ctx context.Context, tgID int64, name, username string) (bool, error) {
	if m.EnsureRegisteredFunc != nil {
		return m.EnsureRegisteredFunc(ctx, tgID, name, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registered[tgID]++
	return m.registered[tgID] == 1, nil
}

// ---- Mock list use case ----

// mockListUC keeps items in memory with the same validation as the real use case.
type mockListUC struct {
	mu     sync.Mutex
	nextID int64
	items  []*model.ShoppingItem
	calls  map[string]int

	AddItemFunc    func(ctx context.Context, ownerID int64, name string, quantity int) (*model.ShoppingItem, error)
	ListItemsFunc  func(ctx context.Context, ownerID int64) ([]*model.ShoppingItem, error)
	DeleteItemFunc func(ctx context.Context, ownerID int64, sel model.ItemSelector) (int64, error)
	ClearItemsFunc func(ctx context.Context, ownerID int64) (int64, error)
}

func newMockListUC() *mockListUC { return &mockListUC{calls: map[string]int{}} }

func (m *mockListUC) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockListUC) record(op string) {
	m.mu.Lock()
	m.calls[op]++
	m.mu.Unlock()
}

func (m *mockListUC) AddItem(ctx context.Context, ownerID int64, name string, quantity int) (*model.ShoppingItem, error) {
	m.record("add")
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, ownerID, name, quantity)
	}
	it, err := model.NewShoppingItem(ownerID, name, quantity)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	it.ID = m.nextID
	cp := *it
	m.items = append(m.items, &cp)
	return it, nil
}

func (m *mockListUC) ListItems(ctx context.Context, ownerID int64) ([]*model.ShoppingItem, error) {
	m.record("list")
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, ownerID)
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
	return out, nil
}

func (m *mockListUC) DeleteItem(ctx context.Context, ownerID int64, sel model.ItemSelector) (int64, error) {
	m.record("delete")
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, ownerID, sel)
	}
	if err := sel.Validate(); err != nil {
		return 0, err
	}
	return m.removeWhere(func(it *model.ShoppingItem) bool {
		if it.OwnerID != ownerID {
			return false
		}
		if sel.IsByID() {
			return it.ID == sel.ID
		}
		return it.Name == sel.Name
	}), nil
}

func (m *mockListUC) ClearItems(ctx context.Context, ownerID int64) (int64, error) {
	m.record("clear")
	if m.ClearItemsFunc != nil {
		return m.ClearItemsFunc(ctx, ownerID)
	}
	return m.removeWhere(func(it *model.ShoppingItem) bool { return it.OwnerID == ownerID }), nil
}

func (m *mockListUC) removeWhere(match func(*model.ShoppingItem) bool) int64 {
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

// ---- Mock state repository ----

type mockStateRepo struct {
	mu     sync.Mutex
	states map[int64]*model.ConversationState

	GetStateFunc func(ctx context.Context, tgID int64) (*model.ConversationState, error)
	SetStateFunc func(ctx context.Context, tgID int64, st *model.ConversationState) error
}

func newMockStateRepo() *mockStateRepo {
	return &mockStateRepo{states: map[int64]*model.ConversationState{}}
}

func (m *mockStateRepo) GetState(ctx context.Context, tgID int64) (*model.ConversationState, error) {
	if m.GetStateFunc != nil {
		return m.GetStateFunc(ctx, tgID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.states[tgID]; ok {
		cp := *st
		return &cp, nil
	}
	return model.IdleState(), nil
}

func (m *mockStateRepo) SetState(ctx context.Context, tgID int64, st *model.ConversationState) error {
	if m.SetStateFunc != nil {
		return m.SetStateFunc(ctx, tgID, st)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *st
	m.states[tgID] = &cp
	return nil
}

func (m *mockStateRepo) ClearState(ctx context.Context, tgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, tgID)
	return nil
}

// ---- fixture ----

type fixture struct {
	users  *mockUserUC
	lists  *mockListUC
	states *mockStateRepo
	facade *application.BotFacade
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tr, err := i18n.NewTranslator(i18n.LocalesFS, "en")
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	f := &fixture{users: newMockUserUC(), lists: newMockListUC(), states: newMockStateRepo()}
	logger := zerolog.Nop()
	f.facade = application.NewBotFacade(f.users, f.lists, f.states, tr, &logger)
	return f
}

func (f *fixture) send(sender int64, text string) application.Reply {
	return f.facade.HandleMessage(context.Background(), application.Incoming{SenderID: sender, ChatID: sender, Text: text})
}

func (f *fixture) press(sender int64, data string) application.Reply {
	return f.facade.HandleCallback(context.Background(), application.Incoming{SenderID: sender, ChatID: sender}, data)
}

var errStoreDown = domain.ErrStoreUnavailable
