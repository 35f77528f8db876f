package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hammamikhairi/tomatick/internal/logger"
)

func testLog() *logger.Logger { return logger.New(logger.LevelOff, nil) }

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Get("missing"); ok {
		t.Fatal("expected missing key")
	}

	s.Set("a", "1")
	if v, ok := s.Get("a"); !ok || v != "1" {
		t.Fatalf("got %q, %v", v, ok)
	}

	s.Remove("a")
	if _, ok := s.Get("a"); ok {
		t.Fatal("expected removed key to be absent")
	}

	s.Set("b", "2")
	s.Clear()
	if _, ok := s.Get("b"); ok {
		t.Fatal("expected cleared store to be empty")
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s := NewFileStore(path, testLog())
	s.Set("currentMode", "break")
	s.Set("timeLeft.focus", "500")
	s.Remove("timeLeft.focus")

	reopened := NewFileStore(path, testLog())
	if v, ok := reopened.Get("currentMode"); !ok || v != "break" {
		t.Fatalf("got %q, %v", v, ok)
	}
	if _, ok := reopened.Get("timeLeft.focus"); ok {
		t.Fatal("removed key survived reopen")
	}
}

func TestFileStoreToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path, testLog())
	if _, ok := s.Get("anything"); ok {
		t.Fatal("corrupt file must read as empty")
	}

	// The store still works after the corrupt load.
	s.Set("a", "1")
	if v, _ := NewFileStore(path, testLog()).Get("a"); v != "1" {
		t.Fatalf("write after corrupt load lost: %q", v)
	}
}

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	s := NewFileStore(path, testLog())

	if _, ok := s.Get("a"); ok {
		t.Fatal("expected empty store")
	}
	s.Set("a", "1")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected the store file to exist: %v", err)
	}
}

func TestTypedAccessors(t *testing.T) {
	typed := NewTyped(NewMemoryStore(), testLog())

	tests := []struct {
		name  string
		setup func()
		check func(t *testing.T)
	}{
		{
			name:  "int round trip",
			setup: func() { typed.SetInt("n", 42) },
			check: func(t *testing.T) {
				if got := typed.GetInt("n", 0); got != 42 {
					t.Fatalf("got %d", got)
				}
			},
		},
		{
			name:  "malformed int falls back",
			setup: func() { typed.SetString("bad", "forty-two") },
			check: func(t *testing.T) {
				if got := typed.GetInt("bad", 7); got != 7 {
					t.Fatalf("got %d", got)
				}
			},
		},
		{
			name:  "bool round trip",
			setup: func() { typed.SetBool("flag", true) },
			check: func(t *testing.T) {
				if !typed.GetBool("flag", false) {
					t.Fatal("expected true")
				}
			},
		},
		{
			name:  "malformed bool falls back",
			setup: func() { typed.SetString("badflag", "yep") },
			check: func(t *testing.T) {
				if typed.GetBool("badflag", false) {
					t.Fatal("expected fallback false")
				}
			},
		},
		{
			name:  "absent string falls back",
			setup: func() {},
			check: func(t *testing.T) {
				if got := typed.GetString("nope", "dflt"); got != "dflt" {
					t.Fatalf("got %q", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			tt.check(t)
		})
	}
}

func TestTypedJSON(t *testing.T) {
	typed := NewTyped(NewMemoryStore(), testLog())

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	typed.SetJSON("doc", doc{Name: "focus", Count: 3})

	var out doc
	if !typed.GetJSON("doc", &out) {
		t.Fatal("expected stored document")
	}
	if out.Name != "focus" || out.Count != 3 {
		t.Fatalf("got %+v", out)
	}

	typed.SetString("corrupt", "{oops")
	var ignored doc
	if typed.GetJSON("corrupt", &ignored) {
		t.Fatal("corrupt JSON must read as absent")
	}
}
