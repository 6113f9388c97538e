package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/openstride/stride-go/pkg/session"
)

// StoreVersion is the current version of the record file format.
const StoreVersion = 1

// storedRecord is the on-disk envelope around a workout record.
type storedRecord struct {
	// Version is the record file format version.
	Version int `json:"version"`

	// SavedAt is when the record was written.
	SavedAt time.Time `json:"saved_at"`

	Record *session.WorkoutRecord `json:"record"`
}

// RecordStore persists finalized workout records as one JSON file per
// record under a directory, named by record ID.
type RecordStore struct {
	mu  sync.Mutex
	dir string
}

// NewRecordStore creates a record store rooted at dir. The directory is
// created on first Save.
func NewRecordStore(dir string) *RecordStore {
	return &RecordStore{dir: dir}
}

// Dir returns the store's root directory.
func (s *RecordStore) Dir() string {
	return s.dir
}

// Save writes the record to disk.
func (s *RecordStore) Save(record *session.WorkoutRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	stored := storedRecord{
		Version: StoreVersion,
		SavedAt: time.Now(),
		Record:  record,
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.recordPath(record.ID), data, 0644)
}

// Load reads one record by ID.
// Returns nil, nil if no record with that ID exists.
func (s *RecordStore) Load(id string) (*session.WorkoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.recordPath(id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stored := storedRecord{}
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}

	return stored.Record, nil
}

// List returns the IDs of all stored records, sorted.
func (s *RecordStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes one record by ID. Deleting a missing record is not an
// error.
func (s *RecordStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.recordPath(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *RecordStore) recordPath(id string) string {
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}
