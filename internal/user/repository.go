package user

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/credlane/credlane/internal/fstore"
	"github.com/credlane/credlane/internal/ids"
)

// hashCost is the fixed bcrypt cost applied to every stored password.
const hashCost = 10

// Repository persists user records.
type Repository interface {
	// FindByEmail resolves an exact, already-normalized email match or
	// ErrNotFound.
	FindByEmail(ctx context.Context, email string) (User, error)
	// FindByID resolves a record by its immutable id or ErrNotFound.
	FindByID(ctx context.Context, id string) (User, error)
	// Create hashes the candidate password, assigns id and createdAt,
	// appends the record and returns it including the hash. ErrDuplicate
	// when the email is already taken.
	Create(ctx context.Context, candidate Candidate) (User, error)
}

// FileRepository stores the user collection as a single JSON file using
// whole-file read-modify-write. Mutations are serialized behind a mutex so
// at most one write per store is in flight within this process; concurrent
// writers in other processes are out of scope.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileRepository builds a repository backed by users.json under dataDir.
func NewFileRepository(dataDir string) *FileRepository {
	return &FileRepository{path: filepath.Join(dataDir, "users.json")}
}

func (r *FileRepository) load() ([]User, error) {
	var users []User
	if err := fstore.ReadJSON(r.path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *FileRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return User{}, err
	}
	return findByEmail(users, email)
}

func (r *FileRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *FileRepository) Create(_ context.Context, candidate Candidate) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return User{}, err
	}
	if _, err := findByEmail(users, candidate.Email); err == nil {
		return User{}, ErrDuplicate
	}

	record, err := newRecord(candidate)
	if err != nil {
		return User{}, err
	}

	users = append(users, record)
	if err := fstore.WriteJSON(r.path, users); err != nil {
		return User{}, err
	}
	return record, nil
}

func findByEmail(users []User, email string) (User, error) {
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func newRecord(candidate Candidate) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(candidate.PasswordPlain), hashCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	return User{
		ID:           ids.NewULID(),
		Email:        strings.ToLower(candidate.Email),
		FullName:     candidate.FullName,
		PasswordHash: string(hash),
		Role:         candidate.Role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
