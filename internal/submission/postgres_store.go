package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store using PostgreSQL. The form payload is kept
// as a JSONB document; ownership and review state are columns so the access
// filters stay in SQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed submission store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the submissions table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS submissions (
        id TEXT PRIMARY KEY,
        submitted_at TIMESTAMPTZ NOT NULL,
        status TEXT NOT NULL,
        owner_user_id TEXT NOT NULL,
        owner_email TEXT NOT NULL,
        payload JSONB NOT NULL,
        seq BIGSERIAL
    )`)
	return err
}

func (s *PostgresStore) Append(ctx context.Context, record Submission) error {
	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	_, err = s.db.Exec(ctx, `INSERT INTO submissions (id, submitted_at, status, owner_user_id, owner_email, payload)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID, record.SubmittedAt, string(record.Status), record.OwnerUserID, record.OwnerEmail, payload)
	return err
}

func (s *PostgresStore) All(ctx context.Context) ([]Submission, error) {
	rows, err := s.db.Query(ctx, selectClause+` ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

func (s *PostgresStore) ByOwner(ctx context.Context, ownerUserID string) ([]Submission, error) {
	rows, err := s.db.Query(ctx, selectClause+` WHERE owner_user_id = $1 ORDER BY seq`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

func (s *PostgresStore) ByID(ctx context.Context, id string) (Submission, error) {
	return scanOne(s.db.QueryRow(ctx, selectClause+` WHERE id = $1`, id))
}

func (s *PostgresStore) SetStatus(ctx context.Context, id string, status Status) (Submission, error) {
	cmd, err := s.db.Exec(ctx, `UPDATE submissions SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return Submission{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Submission{}, ErrNotFound
	}
	return s.ByID(ctx, id)
}

const selectClause = `SELECT id, submitted_at, status, owner_user_id, owner_email, payload FROM submissions`

func scanAll(rows pgx.Rows) ([]Submission, error) {
	var out []Submission
	for rows.Next() {
		record, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func scanOne(row pgx.Row) (Submission, error) {
	var (
		record      Submission
		status      string
		submittedAt time.Time
		payload     []byte
	)
	if err := row.Scan(&record.ID, &submittedAt, &status, &record.OwnerUserID, &record.OwnerEmail, &payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	if err := json.Unmarshal(payload, &record.Payload); err != nil {
		return Submission{}, fmt.Errorf("decode payload: %w", err)
	}
	record.Status = Status(status)
	record.SubmittedAt = submittedAt.UTC()
	return record, nil
}
