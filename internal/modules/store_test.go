package modules

import (
	"path/filepath"
	"testing"

	"github.com/oinkcat/scripting-lang/internal/evaluator"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	st, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func str(v string) *evaluator.String { return &evaluator.String{Value: v} }

func TestStoreSetGet(t *testing.T) {
	st := openTestStore(t, ":memory:")

	if result := st.set(str("greeting"), str("hello")); result != evaluator.NULL {
		t.Fatalf("Set failed: %s", result.Inspect())
	}

	got := st.get(str("greeting"))
	s, ok := got.(*evaluator.String)
	if !ok || s.Value != "hello" {
		t.Errorf("Get returned %s, want \"hello\"", got.Inspect())
	}

	if got := st.get(str("missing")); got != evaluator.NULL {
		t.Errorf("Get of a missing key returned %s, want null", got.Inspect())
	}
}

func TestStoreOverwrite(t *testing.T) {
	st := openTestStore(t, ":memory:")

	st.set(str("counter"), str("1"))
	st.set(str("counter"), str("2"))

	got := st.get(str("counter"))
	if s, ok := got.(*evaluator.String); !ok || s.Value != "2" {
		t.Errorf("got %s, want \"2\"", got.Inspect())
	}
}

func TestStoreHasDelete(t *testing.T) {
	st := openTestStore(t, ":memory:")

	st.set(str("key"), str("value"))
	if st.has(str("key")) != evaluator.TRUE {
		t.Error("Has returned false for a present key")
	}

	if result := st.delete(str("key")); result != evaluator.NULL {
		t.Fatalf("Delete failed: %s", result.Inspect())
	}
	if st.has(str("key")) != evaluator.FALSE {
		t.Error("Has returned true after Delete")
	}
	if st.delete(str("key")) != evaluator.NULL {
		t.Error("Delete of a missing key should be a no-op")
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	first, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	first.set(str("page"), str("2"))
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second := openTestStore(t, path)
	got := second.get(str("page"))
	if s, ok := got.(*evaluator.String); !ok || s.Value != "2" {
		t.Errorf("got %s after reopen, want \"2\"", got.Inspect())
	}
}

func TestStoreModuleSurface(t *testing.T) {
	st := openTestStore(t, ":memory:")
	mod := st.Module()

	for _, name := range []string{"Set", "Get", "Has", "Delete"} {
		if _, ok := mod.Attrs[name]; !ok {
			t.Errorf("module is missing %s", name)
		}
	}

	result := st.set(&evaluator.Number{Value: 1}, str("v"))
	if err, ok := result.(*evaluator.Error); !ok || err.Kind != evaluator.TypeError {
		t.Errorf("non-string key should be a type error, got %s", result.Inspect())
	}
}
