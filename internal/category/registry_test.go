package category

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prodo-app/prodo/internal/storage"
)

func setupPrefs(t *testing.T) *storage.SQLitePrefs {
	t.Helper()
	prefs, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	t.Cleanup(func() { _ = prefs.Close() })
	return prefs
}

func TestSeedsDefaultsOnFirstOpen(t *testing.T) {
	ctx := context.Background()
	prefs := setupPrefs(t)

	r := Open(ctx, prefs, nil)
	got := r.List()
	if len(got) != 4 || got[0] != "Personal" || got[3] != "Wishlist" {
		t.Fatalf("unexpected seed list: %#v", got)
	}

	// A second open must read the saved list, not reseed.
	r.Delete(ctx, "Shopping")
	again := Open(ctx, prefs, nil)
	if len(again.List()) != 3 {
		t.Fatalf("expected saved list of 3, got %#v", again.List())
	}
}

func TestAddRejectsBlankAndCaseInsensitiveDuplicate(t *testing.T) {
	ctx := context.Background()
	r := Open(ctx, setupPrefs(t), nil)

	if r.Add(ctx, "   ") {
		t.Fatal("expected blank add to fail")
	}
	if !r.Add(ctx, "Errands") {
		t.Fatal("expected add to succeed")
	}
	if r.Add(ctx, "errands") {
		t.Fatal("expected case-insensitive duplicate to fail")
	}

	count := 0
	for _, name := range r.List() {
		if name == "Errands" {
			count++
		}
		if name == "errands" {
			t.Fatal("lower-case variant should not be stored")
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one Errands entry, got %d", count)
	}
}

func TestRenameRules(t *testing.T) {
	ctx := context.Background()
	r := Open(ctx, setupPrefs(t), nil)

	if r.Rename(ctx, "Missing", "Anything") {
		t.Fatal("expected rename of absent category to fail")
	}
	if r.Rename(ctx, "Work", "personal") {
		t.Fatal("expected rename onto existing name to fail")
	}
	if r.Rename(ctx, "Work", "work") {
		t.Fatal("expected same-name rename to fail")
	}
	if !r.Rename(ctx, "Work", "Office") {
		t.Fatal("expected rename to succeed")
	}

	got := r.List()
	if got[1] != "Office" {
		t.Fatalf("expected rename in place, got %#v", got)
	}
}

func TestDeleteCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	r := Open(ctx, setupPrefs(t), nil)

	if !r.Delete(ctx, "wishlist") {
		t.Fatal("expected case-insensitive delete to succeed")
	}
	if r.Delete(ctx, "wishlist") {
		t.Fatal("expected second delete to fail")
	}
	for _, name := range r.List() {
		if name == "Wishlist" {
			t.Fatal("expected Wishlist removed")
		}
	}
}

func TestOrderPreservedAcrossReload(t *testing.T) {
	ctx := context.Background()
	prefs := setupPrefs(t)
	r := Open(ctx, prefs, nil)
	r.Add(ctx, "Zeta")
	r.Add(ctx, "Alpha")

	reloaded := Open(ctx, prefs, nil)
	got := reloaded.List()
	if got[len(got)-2] != "Zeta" || got[len(got)-1] != "Alpha" {
		t.Fatalf("expected first-seen order preserved, got %#v", got)
	}
}
