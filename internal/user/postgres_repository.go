package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using PostgreSQL. It is selected
// when DATABASE_URL is configured; the flat-file repository remains the
// default backend.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the users table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS users (
        id TEXT PRIMARY KEY,
        email TEXT NOT NULL UNIQUE,
        full_name TEXT NOT NULL,
        password_hash TEXT NOT NULL,
        role TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL
    )`)
	return err
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, role, created_at FROM users WHERE email = $1`, email))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, role, created_at FROM users WHERE id = $1`, id))
}

func (r *PostgresRepository) Create(ctx context.Context, candidate Candidate) (User, error) {
	record, err := newRecord(candidate)
	if err != nil {
		return User{}, err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, email, full_name, password_hash, role, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID, record.Email, record.FullName, record.PasswordHash, string(record.Role), record.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}
	return record, nil
}

func (r *PostgresRepository) scanOne(row pgx.Row) (User, error) {
	var (
		u         User
		role      string
		createdAt time.Time
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &role, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.Role = Role(role)
	u.CreatedAt = createdAt.UTC()
	return u, nil
}
