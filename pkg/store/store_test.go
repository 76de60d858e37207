package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/makjak/blockly-lua/pkg/block"
	"github.com/makjak/blockly-lua/pkg/program"
)

// testStore creates a store with a temp database for testing.
func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(&Config{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func sampleDoc() *program.Document {
	return &program.Document{
		Name: "miner",
		Blocks: []*program.Node{{
			Type:     "turtle_dig",
			ID:       "b1",
			Fields:   map[string]string{"DIRECTION": "digUp"},
			Mutation: &block.Mutation{IsStatement: boolPtr(true)},
			Next: &program.Node{
				Type: "turtle_select",
				ID:   "b2",
				Inputs: map[string]*program.Node{
					"SLOT": {Type: "math_number", ID: "b3", Value: "2"},
				},
			},
		}},
	}
}

func boolPtr(v bool) *bool { return &v }

func TestNew(t *testing.T) {
	s := testStore(t)
	if s.db == nil {
		t.Error("New() db is nil")
	}
	if s.cache == nil {
		t.Error("New() cache is nil")
	}
}

func TestNewWithEnvVar(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "env_test.db")
	t.Setenv(EnvDBPath, dbPath)

	s, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if s.Path() != dbPath {
		t.Errorf("Path() = %v, want %v", s.Path(), dbPath)
	}
}

func TestResolvePathPrefersConfig(t *testing.T) {
	t.Setenv(EnvDBPath, "/from/env.db")
	got, err := ResolvePath(&Config{DBPath: "/from/config.db"})
	if err != nil || got != "/from/config.db" {
		t.Errorf("ResolvePath() = %q, %v", got, err)
	}
}

func TestCreateAndLoad(t *testing.T) {
	s := testStore(t)

	p, err := s.Create("miner", sampleDoc())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID == "" || p.CreatedAt == "" || p.UpdatedAt != p.CreatedAt {
		t.Errorf("Create() = %+v", p)
	}
	if !s.IsCached(p.ID) {
		t.Error("created program not cached")
	}

	// Force a database read.
	s.ClearCache()
	got, err := s.Load(p.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Name != "miner" || got.CreatedAt != p.CreatedAt {
		t.Errorf("Load() = %+v", got)
	}
	if !reflect.DeepEqual(got.Document, sampleDoc()) {
		t.Errorf("document did not round trip:\n got %+v\nwant %+v", got.Document.Blocks[0], sampleDoc().Blocks[0])
	}
	if !s.IsCached(p.ID) {
		t.Error("loaded program not cached")
	}
}

func TestLoadNotFound(t *testing.T) {
	s := testStore(t)
	if _, err := s.Load("missing"); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("Load() error = %v, want ErrProgramNotFound", err)
	}
}

func TestSaveReplaces(t *testing.T) {
	s := testStore(t)
	p, err := s.Create("miner", sampleDoc())
	if err != nil {
		t.Fatal(err)
	}

	p.Name = "digger"
	p.Document.Blocks = p.Document.Blocks[:0]
	p.UpdatedAt = "2026-01-02T03:04:05Z"
	if err := s.Save(p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s.Evict(p.ID)
	got, err := s.Load(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "digger" || len(got.Document.Blocks) != 0 || got.UpdatedAt != p.UpdatedAt {
		t.Errorf("Load() = %+v", got)
	}
	if list, _ := s.List(); len(list) != 1 {
		t.Errorf("List() has %d rows, want 1", len(list))
	}
}

func TestLoadReturnsCopies(t *testing.T) {
	s := testStore(t)
	p, err := s.Create("miner", sampleDoc())
	if err != nil {
		t.Fatal(err)
	}

	// Edits after saving do not reach the cache.
	p.Name = "changed"
	p.Document.Blocks = nil
	got, err := s.Load(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "miner" || !reflect.DeepEqual(got.Document, sampleDoc()) {
		t.Errorf("cached program changed with the caller's copy: %+v", got)
	}

	// Nor do edits to a loaded program.
	got.Document.Blocks[0].Type = "os_clock"
	again, err := s.Load(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Document.Blocks[0].Type == "os_clock" {
		t.Error("Load() returned a shared document")
	}
}

func TestSaveRequiresID(t *testing.T) {
	s := testStore(t)
	if err := s.Save(&Program{Name: "x"}); err == nil {
		t.Error("Save() without id succeeded")
	}
}

func TestListAndFind(t *testing.T) {
	s := testStore(t)
	b, _ := s.Create("beta", sampleDoc())
	a, _ := s.Create("alpha", &program.Document{Blocks: []*program.Node{{Type: "os_clock"}}})
	b2, _ := s.Create("beta", sampleDoc())

	list, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 || list[0].ID != a.ID || list[0].Name != "alpha" {
		t.Errorf("List() = %+v", list)
	}

	ids, err := s.FindByName("beta")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || !contains(ids, b.ID) || !contains(ids, b2.ID) {
		t.Errorf("FindByName() = %v", ids)
	}

	ids, err = s.FindByBlockType("math_number")
	if err != nil {
		t.Fatalf("FindByBlockType() error = %v", err)
	}
	if len(ids) != 2 || contains(ids, a.ID) {
		t.Errorf("FindByBlockType(math_number) = %v", ids)
	}
	ids, _ = s.FindByBlockType("os_clock")
	if len(ids) != 1 || ids[0] != a.ID {
		t.Errorf("FindByBlockType(os_clock) = %v", ids)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	p, _ := s.Create("miner", sampleDoc())

	if err := s.Delete(p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if s.IsCached(p.ID) {
		t.Error("deleted program still cached")
	}
	if _, err := s.Load(p.ID); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("Load() after delete error = %v", err)
	}
	if err := s.Delete(p.ID); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestCacheSize(t *testing.T) {
	s := testStore(t)
	p1, _ := s.Create("one", sampleDoc())
	s.Create("two", sampleDoc())
	if s.CacheSize() != 2 {
		t.Errorf("CacheSize() = %d, want 2", s.CacheSize())
	}
	s.Evict(p1.ID)
	if s.CacheSize() != 1 {
		t.Errorf("CacheSize() after Evict = %d, want 1", s.CacheSize())
	}
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
