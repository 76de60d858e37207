// Package store persists program documents in SQLite, keyed by uuid, with
// an in-memory read cache.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/makjak/blockly-lua/pkg/program"
)

// ErrProgramNotFound indicates the requested program doesn't exist in the database.
var ErrProgramNotFound = errors.New("program not found")

// EnvDBPath names the environment variable consulted when Config.DBPath is empty.
const EnvDBPath = "BLOCKLY_LUA_DB"

const schemaSQL = `CREATE TABLE IF NOT EXISTS programs (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	data       JSON NOT NULL
)`

// Program is a saved document with its bookkeeping.
type Program struct {
	ID        string
	Name      string
	CreatedAt string // RFC3339
	UpdatedAt string // RFC3339
	Document  *program.Document
}

// Summary is a row of List.
type Summary struct {
	ID        string
	Name      string
	UpdatedAt string
}

// cacheEntry keeps the encoded document so every Load hands out its own copy.
type cacheEntry struct {
	program  Program
	data     []byte
	loadedAt time.Time
}

func newCacheEntry(p *Program, data []byte) *cacheEntry {
	e := &cacheEntry{program: *p, data: data, loadedAt: time.Now()}
	e.program.Document = nil
	return e
}

func (e *cacheEntry) decode() (*Program, error) {
	var doc program.Document
	if err := json.Unmarshal(e.data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling program: %w", err)
	}
	p := e.program
	p.Document = &doc
	return &p, nil
}

// Store manages program persistence.
type Store struct {
	db      *sql.DB
	dbPath  string
	cache   map[string]*cacheEntry
	cacheMu sync.RWMutex
}

// Config holds store configuration options.
type Config struct {
	DBPath string // Path to programs.db (defaults to $BLOCKLY_LUA_DB, then ~/.blockly-lua/programs.db)
}

// ResolvePath returns the database path New would open for cfg.
func ResolvePath(cfg *Config) (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	if p := os.Getenv(EnvDBPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, ".blockly-lua", "programs.db"), nil
}

// New opens the store, creating the database and its table if needed.
// If cfg is nil, defaults are used.
func New(cfg *Config) (*Store, error) {
	path, err := ResolvePath(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating programs table: %w", err)
	}

	return &Store{
		db:     db,
		dbPath: path,
		cache:  make(map[string]*cacheEntry),
	}, nil
}

// Path returns the database file in use.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.cacheMu.Lock()
	s.cache = nil
	s.cacheMu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Create saves doc under a new id and returns it.
func (s *Store) Create(name string, doc *program.Document) (*Program, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	p := &Program{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Document:  doc,
	}
	if err := s.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes p, replacing any earlier version with the same id.
func (s *Store) Save(p *Program) error {
	if p.ID == "" {
		return errors.New("saving program: empty id")
	}
	if p.Document == nil {
		p.Document = &program.Document{}
	}
	data, err := json.Marshal(p.Document)
	if err != nil {
		return fmt.Errorf("marshaling program: %w", err)
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if p.UpdatedAt == "" {
		p.UpdatedAt = p.CreatedAt
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO programs (id, name, created_at, updated_at, data) VALUES (?, ?, ?, ?, json(?))",
		p.ID, p.Name, p.CreatedAt, p.UpdatedAt, string(data),
	)
	if err != nil {
		return fmt.Errorf("saving program: %w", err)
	}

	s.cache[p.ID] = newCacheEntry(p, data)
	return nil
}

// Load returns the program with the given id from cache or database. Each
// call returns a fresh copy.
func (s *Store) Load(id string) (*Program, error) {
	s.cacheMu.RLock()
	entry, ok := s.cache[id]
	s.cacheMu.RUnlock()
	if ok {
		return entry.decode()
	}

	p := &Program{ID: id}
	var data string
	err := s.db.QueryRow(
		"SELECT name, created_at, updated_at, data FROM programs WHERE id = ?", id,
	).Scan(&p.Name, &p.CreatedAt, &p.UpdatedAt, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrProgramNotFound, id)
		}
		return nil, fmt.Errorf("querying program: %w", err)
	}

	entry = newCacheEntry(p, []byte(data))
	s.cacheMu.Lock()
	s.cache[id] = entry
	s.cacheMu.Unlock()

	return entry.decode()
}

// Delete removes a program from the database and cache.
func (s *Store) Delete(id string) error {
	s.cacheMu.Lock()
	delete(s.cache, id)
	s.cacheMu.Unlock()

	res, err := s.db.Exec("DELETE FROM programs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrProgramNotFound, id)
	}
	return nil
}

// List returns every stored program ordered by name, then id.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query("SELECT id, name, updated_at FROM programs ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// FindByName returns the ids of programs with the given name.
func (s *Store) FindByName(name string) ([]string, error) {
	rows, err := s.db.Query("SELECT id FROM programs WHERE name = ? ORDER BY id", name)
	if err != nil {
		return nil, fmt.Errorf("querying programs by name: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning program id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindByBlockType returns the ids of programs using a block type anywhere
// in their tree.
func (s *Store) FindByBlockType(typ string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT programs.id FROM programs, json_tree(programs.data)
		 WHERE json_tree.key = 'type' AND json_tree.value = ? ORDER BY programs.id`, typ)
	if err != nil {
		return nil, fmt.Errorf("querying programs by block type: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning program id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CacheSize returns the number of cached programs.
func (s *Store) CacheSize() int {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	return len(s.cache)
}

// Evict removes a program from the cache.
func (s *Store) Evict(id string) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	delete(s.cache, id)
}

// ClearCache removes all entries from the cache.
func (s *Store) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache = make(map[string]*cacheEntry)
}

// IsCached returns whether a program is currently in the cache.
func (s *Store) IsCached(id string) bool {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	_, ok := s.cache[id]
	return ok
}
