package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alfazaa/intake/internal/db"
	"github.com/alfazaa/intake/internal/model"
)

// Store errors. ErrPersistence is retryable; ErrNotInitialized is a lifecycle bug.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrNotInitialized     = errors.New("store not initialized")
	ErrPersistence        = errors.New("persistence failed")
)

// Clock abstracts time retrieval so record timestamps are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator produces record IDs.
type IDGenerator interface {
	New() (string, error)
}

// UUIDv7Generator produces time-ordered UUIDs, unique within and across processes.
type UUIDv7Generator struct{}

func (UUIDv7Generator) New() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Store is the intake record store. It owns one database handle.
type Store struct {
	path  string
	clock Clock
	ids   IDGenerator

	mu sync.RWMutex
	db *sql.DB
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for createdAt.
func WithClock(c Clock) Option { return func(s *Store) { s.clock = c } }

// WithIDGenerator sets the generator used for record IDs.
func WithIDGenerator(g IDGenerator) Option { return func(s *Store) { s.ids = g } }

// New returns a store for the SQLite database at path. Nothing is opened until Initialize.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, clock: RealClock{}, ids: UUIDv7Generator{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Initialize opens the database and brings its schema up to date.
// Calling it on an initialized store is a no-op.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	database, err := db.Open(s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.db = database
	return nil
}

// DB returns the underlying handle, or nil before Initialize.
func (s *Store) DB() *sql.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

func (s *Store) handle() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

// Save finalizes in into a record: it assigns the ID and creation time and
// writes the record. The returned record is what was stored.
func (s *Store) Save(ctx context.Context, in model.Intake) (*model.IntakeRecord, error) {
	database, err := s.handle()
	if err != nil {
		return nil, err
	}

	id, err := s.ids.New()
	if err != nil {
		return nil, fmt.Errorf("%w: generating id: %w", ErrPersistence, err)
	}

	rec := &model.IntakeRecord{
		ID:     id,
		Intake: in.Clone(),
		// Stored with millisecond precision; truncate so the returned record equals a read back.
		CreatedAt: s.clock.Now().UTC().Truncate(time.Millisecond),
	}
	if rec.DamageNotes == nil {
		rec.DamageNotes = []model.DamageNote{}
	}

	if err := InsertRecord(ctx, database, rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return rec, nil
}

// GetAll returns every record, most recent first. An empty store yields an empty slice.
func (s *Store) GetAll(ctx context.Context) ([]model.IntakeRecord, error) {
	database, err := s.handle()
	if err != nil {
		return nil, err
	}

	records, err := ListRecords(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return records, nil
}

// Get returns one record. ErrRecordNotFound is returned unwrapped.
func (s *Store) Get(ctx context.Context, id string) (*model.IntakeRecord, error) {
	database, err := s.handle()
	if err != nil {
		return nil, err
	}

	rec, err := GetRecord(ctx, database, id)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return rec, nil
}

// Shutdown closes the database. It is safe to call more than once, or before Initialize.
func (s *Store) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}
