package jobxsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func init() {
	// modernc.org/sqlite registers as "sqlite", which sqlx does not know.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const schema = `
CREATE TABLE IF NOT EXISTS faq_jobs (
	job_id     TEXT PRIMARY KEY,
	result     TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL,
	expires_at BIGINT NOT NULL
)`

const expiryIndex = `CREATE INDEX IF NOT EXISTS faq_jobs_expires_at_idx ON faq_jobs (expires_at)`

// jobRow is the persisted shape. Timestamps are unix milliseconds so the
// same statements work on SQLite and PostgreSQL.
type jobRow struct {
	JobID     string `db:"job_id"`
	Result    string `db:"result"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	ExpiresAt int64  `db:"expires_at"`
}

// SQLStore implements jobx.Store on a single faq_jobs table.
type SQLStore struct {
	db   *sqlx.DB
	opts jobx.StoreOptions
}

var (
	_ jobx.Store  = (*SQLStore)(nil)
	_ jobx.Purger = (*SQLStore)(nil)
)

// NewSQLStore wraps an open database handle. Call EnsureSchema before use.
func NewSQLStore(db *sqlx.DB, opts ...jobx.StoreOption) *SQLStore {
	return &SQLStore{db: db, opts: jobx.ApplyStoreOptions(opts...)}
}

// EnsureSchema creates the table and index if they do not exist.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{schema, expiryIndex} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return sqlErrors.NewWithCause(ErrSchema, err).WithDetail("driver", s.db.DriverName())
		}
	}
	return nil
}

// Put upserts the record and resets its expiry.
func (s *SQLStore) Put(ctx context.Context, job *jobx.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return sqlErrors.NewWithCause(ErrMarshal, err).WithDetail("job_id", job.ID)
	}

	now := s.opts.Now()
	row := jobRow{
		JobID:     job.ID,
		Result:    string(data),
		CreatedAt: job.CreatedAt.UnixMilli(),
		UpdatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(s.opts.TTL).UnixMilli(),
	}

	query := `
		INSERT INTO faq_jobs (job_id, result, created_at, updated_at, expires_at)
		VALUES (:job_id, :result, :created_at, :updated_at, :expires_at)
		ON CONFLICT (job_id) DO UPDATE SET
			result = excluded.result,
			updated_at = excluded.updated_at,
			expires_at = excluded.expires_at`

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return s.backendError(err, ErrPut, "put", job.ID)
	}
	return nil
}

// Get returns the record unless it is absent or past its expiry.
func (s *SQLStore) Get(ctx context.Context, id string) (*jobx.Job, error) {
	var row jobRow
	query := s.db.Rebind(`SELECT * FROM faq_jobs WHERE job_id = ? AND expires_at > ?`)
	err := s.db.GetContext(ctx, &row, query, id, s.opts.Now().UnixMilli())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jobx.NotFound(id)
		}
		return nil, s.backendError(err, ErrGet, "get", id)
	}

	var job jobx.Job
	if err := json.Unmarshal([]byte(row.Result), &job); err != nil {
		return nil, sqlErrors.NewWithCause(ErrUnmarshal, err).WithDetail("job_id", id)
	}
	return &job, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	query := s.db.Rebind(`DELETE FROM faq_jobs WHERE job_id = ?`)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return s.backendError(err, ErrDelete, "delete", id)
	}
	return nil
}

// PurgeExpired deletes rows whose expiry has passed.
func (s *SQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	query := s.db.Rebind(`DELETE FROM faq_jobs WHERE expires_at <= ?`)
	res, err := s.db.ExecContext(ctx, query, s.opts.Now().UnixMilli())
	if err != nil {
		return 0, s.backendError(err, ErrPurge, "purge", "")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errx.Wrap(err, "failed to get rows affected on purge", errx.TypeInternal)
	}
	return n, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) backendError(err error, code *errx.ErrorCode, op, id string) error {
	e := sqlErrors.NewWithCause(code, err).WithDetail("driver", s.db.DriverName())
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		e.WithDetail("pg_code", string(pqErr.Code))
		if pqErr.Code == "42P01" { // undefined_table
			e.WithDetail("hint", "faq_jobs table missing; run EnsureSchema")
		}
	}
	return jobx.StoreError(e, op, id)
}
