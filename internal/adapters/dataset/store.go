package dataset

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/okian/innings/internal/domain/model"
	"github.com/okian/innings/pkg/logger"
	"github.com/okian/innings/pkg/metrics"
)

// Tables is the loaded dataset.
type Tables = model.Tables

// Load reads both tables from the filesystem.
func Load(ctx context.Context, matchesPath, deliveriesPath string) (*Tables, error) {
	return load(ctx, osOpen, matchesPath, deliveriesPath)
}

type openFunc func(name string) (io.ReadCloser, error)

func osOpen(name string) (io.ReadCloser, error) { return os.Open(name) }

func load(ctx context.Context, open openFunc, matchesPath, deliveriesPath string) (*Tables, error) {
	var t Tables
	err := readFile(open, matchesPath, func(r io.Reader) (err error) {
		t.Matches, err = ReadMatches(ctx, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = readFile(open, deliveriesPath, func(r io.Reader) (err error) {
		t.Deliveries, err = ReadDeliveries(ctx, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func readFile(open openFunc, path string, read func(io.Reader) error) error {
	f, err := open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer func() { _ = f.Close() }()
	return read(f)
}

// Store is the data-access object handed to every consumer. It loads the
// tables on first use and returns the same *Tables afterwards.
type Store struct {
	matchesPath    string
	deliveriesPath string
	open           openFunc
	logger         logger.Logger

	mu       sync.Mutex
	tables   *Tables
	loadedAt time.Time
	loads    int
}

// NewStore creates a Store for the two CSV paths. Nothing is read until Tables is called.
func NewStore(matchesPath, deliveriesPath string, opts ...Option) *Store {
	s := &Store{
		matchesPath:    matchesPath,
		deliveriesPath: deliveriesPath,
		open:           osOpen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load events.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFS reads both paths from fsys instead of the OS filesystem.
func WithFS(fsys fs.FS) Option {
	return func(s *Store) {
		if fsys != nil {
			s.open = func(name string) (io.ReadCloser, error) { return fsys.Open(name) }
		}
	}
}

// Tables returns the loaded tables, reading the sources on the first call.
// A failed load is not cached; the next call tries again.
func (s *Store) Tables(ctx context.Context) (*Tables, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tables != nil {
		return s.tables, nil
	}

	start := time.Now()
	s.loads++
	t, err := load(ctx, s.open, s.matchesPath, s.deliveriesPath)
	if err != nil {
		metrics.RecordDatasetLoadError(ErrorKind(err))
		if s.logger != nil {
			s.logger.Error(ctx, "dataset load failed",
				logger.String("matches", s.matchesPath),
				logger.String("deliveries", s.deliveriesPath),
				logger.String("kind", ErrorKind(err)),
				logger.Error(err),
			)
		}
		return nil, err
	}

	s.tables = t
	s.loadedAt = time.Now()
	took := s.loadedAt.Sub(start)
	metrics.RecordDatasetLoad(float64(took.Microseconds())/1000, s.loadedAt)
	metrics.UpdateDatasetRows(TableMatches, len(t.Matches))
	metrics.UpdateDatasetRows(TableDeliveries, len(t.Deliveries))
	if s.logger != nil {
		s.logger.Info(ctx, "dataset loaded",
			logger.Int(TableMatches, len(t.Matches)),
			logger.Int(TableDeliveries, len(t.Deliveries)),
			logger.Duration("took", took),
		)
	}
	return t, nil
}

// Loaded reports whether the tables are cached.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables != nil
}

// LoadedAt returns when the cached tables were read, zero if not loaded.
func (s *Store) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}

// Loads returns how many times the sources were read.
func (s *Store) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}
