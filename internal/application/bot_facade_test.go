//go:build !integration

package application_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"shopping-list-bot/internal/domain/model"
)

const (
	emptyList   = "Your shopping list is empty."
	notFound    = "Item not found."
	genericFail = "Something went wrong, please try again later."
	numericName = "Item name cannot be just a number. Example: /add 2 Milk"
)

func TestBotFacade_Scenario(t *testing.T) {
	f := newFixture(t)
	const alice = 100

	steps := []struct{ in, want string }{
		{"add 2 Milk", "Added: 2 × Milk"},
		{"list", "1. 2 × Milk"},
		{"delete Milk", "Deleted: Milk"},
		{"list", emptyList},
		{"delete 99", notFound},
	}
	for _, s := range steps {
		if got := f.send(alice, s.in).Text; got != s.want {
			t.Errorf("%q: want %q, got %q", s.in, s.want, got)
		}
	}
}

func TestBotFacade_CommandSyntax(t *testing.T) {
	f := newFixture(t)
	for _, in := range []string{"/add Bread", "/add@shop_bot Eggs", "ADD Tea"} {
		if got := f.send(1, in).Text; !strings.HasPrefix(got, "Added: 1 × ") {
			t.Errorf("%q: expected add confirmation, got %q", in, got)
		}
	}
	want := "1. 1 × Bread\n2. 1 × Eggs\n3. 1 × Tea"
	if diff := cmp.Diff(want, f.send(1, "/list").Text); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestBotFacade_Add(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"add Milk", "Added: 1 × Milk"},
		{"add 3 Green apples", "Added: 3 × Green apples"},
		{"add 5", numericName},
		{"add 2 5", numericName},
		{"add 2 7up", "Added: 2 × 7up"},
		{"add two apples", "Added: 1 × two apples"},
		{"add", "Please specify an item. Example: /add 2 Milk"},
		{"add    ", "Please specify an item. Example: /add 2 Milk"},
		{"add 0 Milk", fmt.Sprintf("Quantity must be a whole number between 1 and %d.", model.MaxQuantity)},
		{"add -2 Milk", fmt.Sprintf("Quantity must be a whole number between 1 and %d.", model.MaxQuantity)},
		{"add 10000 Milk", fmt.Sprintf("Quantity must be a whole number between 1 and %d.", model.MaxQuantity)},
		{"add " + strings.Repeat("x", model.MaxItemNameLength+1), fmt.Sprintf("Item name is too long (max %d characters).", model.MaxItemNameLength)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			f := newFixture(t)
			if got := f.send(1, tc.in).Text; got != tc.want {
				t.Errorf("want %q, got %q", tc.want, got)
			}
		})
	}

	t.Run("invalid input never writes", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add")
		f.send(1, "add 0 Milk")
		f.send(1, "add 5")
		if n := len(f.lists.items); n != 0 {
			t.Errorf("expected no stored items, got %d", n)
		}
	})
}

func TestBotFacade_Delete(t *testing.T) {
	t.Run("by index uses list order", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add Milk")
		f.send(1, "add Bread")
		f.send(1, "add Eggs")

		if got := f.send(1, "delete 2").Text; got != "Deleted: Bread" {
			t.Fatalf("unexpected reply %q", got)
		}
		if got := f.send(1, "list").Text; got != "1. 1 × Milk\n2. 1 × Eggs" {
			t.Errorf("unexpected list %q", got)
		}
	})

	t.Run("by name removes all matches, case-sensitive", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add Milk")
		f.send(1, "add milk")
		f.send(1, "add 2 Milk")

		if got := f.send(1, "delete Milk").Text; got != "Deleted: Milk" {
			t.Fatalf("unexpected reply %q", got)
		}
		if got := f.send(1, "list").Text; got != "1. 1 × milk" {
			t.Errorf("unexpected list %q", got)
		}
	})

	t.Run("missing target does not mutate", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add Milk")
		if got := f.send(1, "delete Bread").Text; got != notFound {
			t.Errorf("unexpected reply %q", got)
		}
		if got := f.send(1, "delete 2").Text; got != notFound {
			t.Errorf("unexpected reply %q", got)
		}
		if got := f.send(1, "list").Text; got != "1. 1 × Milk" {
			t.Errorf("unexpected list %q", got)
		}
	})

	t.Run("index lookup does not issue a delete when out of range", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "delete 99")
		if n := f.lists.count("delete"); n != 0 {
			t.Errorf("expected no delete call, got %d", n)
		}
	})

	t.Run("another sender's items are invisible", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add Milk")
		if got := f.send(2, "delete Milk").Text; got != notFound {
			t.Errorf("unexpected reply %q", got)
		}
		if got := f.send(2, "list").Text; got != emptyList {
			t.Errorf("unexpected list %q", got)
		}
	})

	t.Run("a bare number is always a position, never a name", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add Milk")
		if got := f.send(1, "add 5").Text; got != numericName {
			t.Fatalf("expected numeric name to be refused, got %q", got)
		}
		f.send(1, "add Bread")

		if got := f.send(1, "delete 5").Text; got != notFound {
			t.Errorf("unexpected reply %q", got)
		}
		if got := f.send(1, "delete 1").Text; got != "Deleted: Milk" {
			t.Errorf("unexpected reply %q", got)
		}
		if got := f.send(1, "list").Text; got != "1. 1 × Bread" {
			t.Errorf("unexpected list %q", got)
		}
	})

	t.Run("empty argument shows usage", func(t *testing.T) {
		f := newFixture(t)
		if got := f.send(1, "/delete").Text; !strings.HasPrefix(got, "Please specify the item to delete") {
			t.Errorf("unexpected reply %q", got)
		}
	})
}

func TestBotFacade_ClearAndStart(t *testing.T) {
	f := newFixture(t)
	f.send(1, "add Milk")
	if got := f.send(1, "clear").Text; got != "Your shopping list has been cleared." {
		t.Errorf("unexpected clear reply %q", got)
	}
	if got := f.send(1, "list").Text; got != emptyList {
		t.Errorf("unexpected list %q", got)
	}
	if got := f.send(1, "clear").Text; got != "Your shopping list has been cleared." {
		t.Errorf("clearing an empty list should still confirm, got %q", got)
	}

	first := f.send(7, "/start")
	second := f.send(7, "/start")
	if first.Text != second.Text || len(first.Buttons) == 0 {
		t.Errorf("expected identical greetings with menu, got %+v / %+v", first, second)
	}
	if f.users.registered[7] != 2 {
		t.Errorf("expected EnsureRegistered on every start, got %d", f.users.registered[7])
	}
}

func TestBotFacade_LongList(t *testing.T) {
	f := newFixture(t)
	const total = 25
	for i := 0; i < total; i++ {
		name := fmt.Sprintf("%03d", i) + strings.Repeat("я", model.MaxItemNameLength-3)
		if got := f.send(1, "add "+name).Text; !strings.HasPrefix(got, "Added: 1 × ") {
			t.Fatalf("add %d: unexpected reply %q", i, got)
		}
	}

	got := f.send(1, "list").Text
	if n := utf8.RuneCountInString(got); n > 4096 {
		t.Fatalf("reply is %d runes, Telegram accepts at most 4096", n)
	}

	lines := strings.Split(got, "\n")
	shown := len(lines) - 1
	if shown == 0 || shown == total {
		t.Fatalf("expected a truncated list, got %d item lines", shown)
	}
	if !strings.HasPrefix(lines[0], "1. 1 × 000") || !strings.HasPrefix(lines[shown-1], fmt.Sprintf("%d. 1 × ", shown)) {
		t.Errorf("unexpected item lines around the cut: %q ... %q", lines[0], lines[shown-1])
	}
	digits, ok := strings.CutPrefix(lines[shown], "…and ")
	digits, ok2 := strings.CutSuffix(digits, " more.")
	more, err := strconv.Atoi(digits)
	if !ok || !ok2 || err != nil {
		t.Fatalf("expected trailing more line, got %q", lines[shown])
	}
	if shown+more != total {
		t.Errorf("expected %d shown + %d hidden to cover %d items", shown, more, total)
	}
}

func TestBotFacade_MiscCommands(t *testing.T) {
	f := newFixture(t)
	if got := f.send(1, "/ping").Text; got != "✅ Bot is running" {
		t.Errorf("unexpected ping reply %q", got)
	}
	if got := f.send(1, "/help"); !strings.Contains(got.Text, "/add") || len(got.Buttons) != 3 {
		t.Errorf("unexpected help reply %+v", got)
	}
	if got := f.send(1, "/frobnicate").Text; !strings.HasPrefix(got, "Unknown command") {
		t.Errorf("unexpected reply %q", got)
	}
	if got := f.send(1, "   "); !got.Empty() {
		t.Errorf("expected no reply for blank text, got %+v", got)
	}
	if n := f.lists.count("list") + f.lists.count("add"); n != 0 {
		t.Errorf("expected no store access, got %d calls", n)
	}
}

func TestBotFacade_DeleteFlow(t *testing.T) {
	t.Run("button then free text deletes and resets", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add Milk")
		f.send(1, "add Bread")

		if got := f.press(1, "cmd:delete").Text; got != "Send the name or the number of the item to delete." {
			t.Fatalf("unexpected prompt %q", got)
		}
		if got := f.send(1, "Bread").Text; got != "Deleted: Bread" {
			t.Fatalf("unexpected reply %q", got)
		}
		// Back to idle: plain text is no longer a delete target.
		if got := f.send(1, "Milk").Text; !strings.HasPrefix(got, "Unknown command") {
			t.Errorf("expected idle handling, got %q", got)
		}
	})

	t.Run("target resolves by index too", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add Milk")
		f.press(1, "cmd:delete")
		if got := f.send(1, "1").Text; got != "Deleted: Milk" {
			t.Errorf("unexpected reply %q", got)
		}
	})

	t.Run("state resets even when the target is missing", func(t *testing.T) {
		f := newFixture(t)
		f.press(1, "cmd:delete")
		if got := f.send(1, "Nothing").Text; got != notFound {
			t.Errorf("unexpected reply %q", got)
		}
		st, _ := f.states.GetState(context.Background(), 1)
		if !st.IsIdle() {
			t.Errorf("expected idle state, got %+v", st)
		}
	})

	t.Run("slash command while awaiting runs normally", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add list")
		f.press(1, "cmd:delete")
		if got := f.send(1, "/list").Text; got != "1. 1 × list" {
			t.Errorf("expected list to run, got %q", got)
		}
		if f.lists.count("delete") != 0 {
			t.Error("expected no delete")
		}
	})

	t.Run("bare command word while awaiting is the target", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add list")
		f.send(1, "add Milk")
		f.press(1, "cmd:delete")
		if got := f.send(1, "list").Text; got != "Deleted: list" {
			t.Errorf("expected bare text to be the delete target, got %q", got)
		}
		if got := f.send(1, "list").Text; got != "1. 1 × Milk" {
			t.Errorf("expected idle list afterwards, got %q", got)
		}
	})

	t.Run("cancel resets the flow", func(t *testing.T) {
		f := newFixture(t)
		f.send(1, "add Milk")
		f.press(1, "cmd:delete")
		if got := f.send(1, "/cancel").Text; got != "Cancelled." {
			t.Errorf("unexpected reply %q", got)
		}
		f.send(1, "Milk")
		if f.lists.count("delete") != 0 {
			t.Error("expected no delete after cancel")
		}
	})

	t.Run("flows are per sender", func(t *testing.T) {
		f := newFixture(t)
		f.send(2, "add Milk")
		f.press(1, "cmd:delete")
		if got := f.send(2, "Milk").Text; !strings.HasPrefix(got, "Unknown command") {
			t.Errorf("sender 2 must not inherit sender 1's flow, got %q", got)
		}
	})
}

func TestBotFacade_Callbacks(t *testing.T) {
	f := newFixture(t)
	if got := f.press(1, "cmd:list").Text; got != emptyList {
		t.Errorf("unexpected reply %q", got)
	}
	if got := f.press(1, "cmd:help"); len(got.Buttons) == 0 {
		t.Errorf("expected menu on help, got %+v", got)
	}
	if got := f.press(1, "cmd:unknown"); !got.Empty() {
		t.Errorf("expected no reply for unknown callback, got %+v", got)
	}
}

func TestBotFacade_Failures(t *testing.T) {
	t.Run("store unavailable yields generic reply", func(t *testing.T) {
		f := newFixture(t)
		f.lists.ListItemsFunc = func(ctx context.Context, ownerID int64) ([]*model.ShoppingItem, error) {
			return nil, fmt.Errorf("list_items: %w: %w", errStoreDown, errors.New("dial tcp: refused"))
		}
		for _, in := range []string{"list", "delete 1"} {
			if got := f.send(1, in).Text; got != genericFail {
				t.Errorf("%q: unexpected reply %q", in, got)
			}
		}
	})

	t.Run("unknown errors are generic too", func(t *testing.T) {
		f := newFixture(t)
		f.users.EnsureRegisteredFunc = func(ctx context.Context, tgID int64, name, username string) (bool, error) {
			return false, errors.New("surprise")
		}
		if got := f.send(1, "/start").Text; got != genericFail {
			t.Errorf("unexpected reply %q", got)
		}
	})

	t.Run("state store failure does not block commands", func(t *testing.T) {
		f := newFixture(t)
		f.states.GetStateFunc = func(ctx context.Context, tgID int64) (*model.ConversationState, error) {
			return nil, errors.New("redis down")
		}
		if got := f.send(1, "add Milk").Text; got != "Added: 1 × Milk" {
			t.Errorf("unexpected reply %q", got)
		}
	})

	t.Run("failing to arm the delete flow is reported", func(t *testing.T) {
		f := newFixture(t)
		f.states.SetStateFunc = func(ctx context.Context, tgID int64, st *model.ConversationState) error {
			return errors.New("redis down")
		}
		if got := f.press(1, "cmd:delete").Text; got != genericFail {
			t.Errorf("unexpected reply %q", got)
		}
	})
}
