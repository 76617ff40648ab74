// Package state provides the JSON-backed journal of launched operations.
// The journal outlives console restarts, which is what lets a status poll
// after a restart know what was asked for before it.
package state

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/fsutil"
	"github.com/glorpus-work/kitctl/pkg/model"
)

// Journal records launched operations.
type Journal interface {
	Record(op *model.Operation) error
	Update(id string, fn func(op *model.Operation)) error
	Get(id string) (*model.Operation, error)
	Latest(pkg string) (*model.Operation, error)
	List() ([]*model.Operation, error)
}

const (
	// FormatVersion is written into every journal file.
	FormatVersion = "1"
	// DefaultMaxEntries bounds the journal; the oldest entries are dropped first.
	DefaultMaxEntries = 200
)

// Journal errors.
var (
	ErrOperationNotFound = fmt.Errorf("operation not found")
	ErrMissingID         = fmt.Errorf("operation id is required")
)

// journalFile is the on-disk layout.
type journalFile struct {
	FormatVersion string             `json:"format_version"`
	LastUpdate    time.Time          `json:"last_update"`
	Operations    []*model.Operation `json:"operations"`
}

// FileJournal stores the journal in a single JSON file. Every call re-reads
// the file so separate kitctl processes see each other's writes.
type FileJournal struct {
	path       string
	maxEntries int
	rwMutex    sync.RWMutex
}

// NewFileJournal returns a journal stored at path, which must be absolute.
func NewFileJournal(path string) (*FileJournal, error) {
	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		return nil, fmt.Errorf("journal path must be absolute: %s: %w", path, errors.ErrInvalidPath)
	}
	return &FileJournal{path: cleanPath, maxEntries: DefaultMaxEntries}, nil
}

// WithMaxEntries sets how many operations are kept.
func (j *FileJournal) WithMaxEntries(n int) *FileJournal {
	if n > 0 {
		j.maxEntries = n
	}
	return j
}

// Path returns the journal file path.
func (j *FileJournal) Path() string {
	return j.path
}

// Record appends op, replacing an entry with the same id.
func (j *FileJournal) Record(op *model.Operation) error {
	if op == nil || op.ID == "" {
		return ErrMissingID
	}
	j.rwMutex.Lock()
	defer j.rwMutex.Unlock()

	db, err := j.load()
	if err != nil {
		return err
	}
	if op.StartedAt.IsZero() {
		op.StartedAt = time.Now()
	}
	replaced := false
	for i, existing := range db.Operations {
		if existing.ID == op.ID {
			db.Operations[i] = op
			replaced = true
			break
		}
	}
	if !replaced {
		db.Operations = append(db.Operations, op)
	}
	if over := len(db.Operations) - j.maxEntries; over > 0 {
		db.Operations = db.Operations[over:]
	}
	return j.save(db)
}

// Update applies fn to the operation with id and persists the result.
func (j *FileJournal) Update(id string, fn func(op *model.Operation)) error {
	j.rwMutex.Lock()
	defer j.rwMutex.Unlock()

	db, err := j.load()
	if err != nil {
		return err
	}
	for _, op := range db.Operations {
		if op.ID == id {
			fn(op)
			return j.save(db)
		}
	}
	return fmt.Errorf("%w: %s", ErrOperationNotFound, id)
}

// Get returns the operation with id, or nil.
func (j *FileJournal) Get(id string) (*model.Operation, error) {
	ops, err := j.List()
	if err != nil {
		return nil, err
	}
	for _, op := range ops {
		if op.ID == id {
			return op, nil
		}
	}
	return nil, nil
}

// Latest returns the most recently started operation for pkg, or nil.
func (j *FileJournal) Latest(pkg string) (*model.Operation, error) {
	ops, err := j.List()
	if err != nil {
		return nil, err
	}
	var latest *model.Operation
	for _, op := range ops {
		if op.Package != pkg {
			continue
		}
		if latest == nil || !op.StartedAt.Before(latest.StartedAt) {
			latest = op
		}
	}
	return latest, nil
}

// List returns every recorded operation, oldest first.
func (j *FileJournal) List() ([]*model.Operation, error) {
	j.rwMutex.RLock()
	defer j.rwMutex.RUnlock()

	db, err := j.load()
	if err != nil {
		return nil, err
	}
	return db.Operations, nil
}

func (j *FileJournal) load() (*journalFile, error) {
	db := &journalFile{FormatVersion: FormatVersion}

	file, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return db, nil
		}
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	if len(data) == 0 {
		return db, nil
	}
	if err := json.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("failed to parse journal: %w", err)
	}
	return db, nil
}

func (j *FileJournal) save(db *journalFile) error {
	db.FormatVersion = FormatVersion
	db.LastUpdate = time.Now()
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal to JSON: %w", err)
	}
	return fsutil.WriteFileAtomic(j.path, data, fsutil.FileModeSecure)
}
