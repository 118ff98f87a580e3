package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
)

// RunTokenStoreContract verifies that a TokenStore implementation honors
// the interface's documented behavior. Adapter test suites call it with a
// freshly initialized, empty store.
func RunTokenStoreContract(t *testing.T, store TokenStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := store.Load(ctx, "ghost")
		if !errors.Is(err, domain.ErrInstanceNotFound) {
			t.Errorf("expected ErrInstanceNotFound, got %v", err)
		}
	})

	t.Run("SaveLoad", func(t *testing.T) {
		if err := store.Save(ctx, "brewer-1", "have-beans"); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		token, err := store.Load(ctx, "brewer-1")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if token != "have-beans" {
			t.Errorf("Load = %q, want have-beans", token)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := store.Save(ctx, "brewer-1", "no-beans"); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		token, err := store.Load(ctx, "brewer-1")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if token != "no-beans" {
			t.Errorf("Load after overwrite = %q, want no-beans", token)
		}
	})

	t.Run("List", func(t *testing.T) {
		if err := store.Save(ctx, "brewer-2", "have-beans"); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		lookup := make(map[string]bool, len(ids))
		for _, id := range ids {
			lookup[id] = true
		}
		if !lookup["brewer-1"] || !lookup["brewer-2"] {
			t.Errorf("List = %v, want brewer-1 and brewer-2", ids)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "brewer-1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "brewer-1"); !errors.Is(err, domain.ErrInstanceNotFound) {
			t.Errorf("expected ErrInstanceNotFound after delete, got %v", err)
		}
		// Idempotent.
		if err := store.Delete(ctx, "brewer-1"); err != nil {
			t.Errorf("Delete of missing ID failed: %v", err)
		}
	})
}
