package submission

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/credlane/credlane/internal/fstore"
)

// Store persists submission records in creation order.
type Store interface {
	// Append persists a fully-stamped record at the end of the collection.
	Append(ctx context.Context, record Submission) error
	// All returns every record in insertion order.
	All(ctx context.Context) ([]Submission, error)
	// ByOwner returns the records stamped with the given owner id, in
	// insertion order.
	ByOwner(ctx context.Context, ownerUserID string) ([]Submission, error)
	// ByID resolves an exact id match or ErrNotFound.
	ByID(ctx context.Context, id string) (Submission, error)
	// SetStatus mutates the status of the record with the given id.
	SetStatus(ctx context.Context, id string, status Status) (Submission, error)
}

// FileStore keeps the submission collection in a single JSON file with the
// same whole-file read-modify-write discipline as the user store: one mutex
// per store, at most one in-flight write within the process.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore builds a store backed by submissions.json under dataDir.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{path: filepath.Join(dataDir, "submissions.json")}
}

func (s *FileStore) load() ([]Submission, error) {
	var records []Submission
	if err := fstore.ReadJSON(s.path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *FileStore) Append(_ context.Context, record Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, record)
	return fstore.WriteJSON(s.path, records)
}

func (s *FileStore) All(_ context.Context) ([]Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) ByOwner(_ context.Context, ownerUserID string) ([]Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	return filterByOwner(records, ownerUserID), nil
}

func (s *FileStore) ByID(_ context.Context, id string) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return Submission{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return Submission{}, ErrNotFound
}

func (s *FileStore) SetStatus(_ context.Context, id string, status Status) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return Submission{}, err
	}
	for i := range records {
		if records[i].ID == id {
			records[i].Status = status
			if err := fstore.WriteJSON(s.path, records); err != nil {
				return Submission{}, err
			}
			return records[i], nil
		}
	}
	return Submission{}, ErrNotFound
}

func filterByOwner(records []Submission, ownerUserID string) []Submission {
	owned := make([]Submission, 0, len(records))
	for _, r := range records {
		if r.OwnerUserID == ownerUserID {
			owned = append(owned, r)
		}
	}
	return owned
}
