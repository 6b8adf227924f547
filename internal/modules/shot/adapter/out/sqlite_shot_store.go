package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"brewlog/internal/modules/shot/domain"
	shotout "brewlog/internal/modules/shot/port/out"
	apperrors "brewlog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteShotStore struct {
	db *sql.DB
}

func NewSQLiteShotStore(dbPath string) (shotout.ShotStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteShotStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteShotStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS shots (
  id TEXT PRIMARY KEY,
  bean_id TEXT NOT NULL,
  dose_grams REAL NOT NULL,
  yield_grams REAL NOT NULL,
  extraction_seconds REAL,
  grind_setting REAL NOT NULL,
  notes TEXT,
  taste TEXT,
  strength TEXT,
  pulled_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_shots_bean_pulled ON shots(bean_id, pulled_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create shots table: %w", err)
	}
	return nil
}

func (s *SQLiteShotStore) Save(ctx context.Context, shot domain.Shot) error {
	const stmt = `
INSERT INTO shots (id, bean_id, dose_grams, yield_grams, extraction_seconds, grind_setting, notes, taste, strength, pulled_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	var extraction any
	if shot.ExtractionSeconds != nil {
		extraction = *shot.ExtractionSeconds
	}
	_, err := s.db.ExecContext(ctx, stmt,
		shot.ID,
		shot.BeanID,
		shot.DoseGrams,
		shot.YieldGrams,
		extraction,
		shot.GrindSetting,
		shot.Notes,
		string(shot.Taste),
		string(shot.Strength),
		shot.PulledAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert shot: %w", err)
	}
	return nil
}

func (s *SQLiteShotStore) FindByID(ctx context.Context, id string) (domain.Shot, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	return scanShot(row)
}

func (s *SQLiteShotStore) ListByBean(ctx context.Context, beanID string, limit int) ([]domain.Shot, error) {
	query := selectColumns + ` WHERE bean_id = ? ORDER BY pulled_at DESC, rowid DESC`
	args := []any{beanID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

func (s *SQLiteShotStore) History(ctx context.Context, beanID string) ([]domain.Shot, error) {
	if beanID == "" {
		return s.query(ctx, selectColumns+` ORDER BY pulled_at ASC, rowid ASC`)
	}
	return s.query(ctx, selectColumns+` WHERE bean_id = ? ORDER BY pulled_at ASC, rowid ASC`, beanID)
}

func (s *SQLiteShotStore) UpdateTasting(ctx context.Context, id string, taste domain.Taste, strength domain.Strength) error {
	result, err := s.db.ExecContext(ctx, `UPDATE shots SET taste = ?, strength = ? WHERE id = ?`, string(taste), string(strength), id)
	if err != nil {
		return fmt.Errorf("update shot tasting: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update shot tasting: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteShotStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shots WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete shot: %w", err)
	}
	return nil
}

func (s *SQLiteShotStore) query(ctx context.Context, query string, args ...any) ([]domain.Shot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shots: %w", err)
	}
	defer rows.Close()

	out := []domain.Shot{}
	for rows.Next() {
		shot, scanErr := scanShot(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, shot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan shots: %w", err)
	}
	return out, nil
}

const selectColumns = `
SELECT id, bean_id, dose_grams, yield_grams, extraction_seconds, grind_setting, notes, taste, strength, pulled_at
FROM shots`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShot(row rowScanner) (domain.Shot, error) {
	shot := domain.Shot{}
	var extraction sql.NullFloat64
	var notes, taste, strength sql.NullString
	var pulledAt string
	err := row.Scan(
		&shot.ID,
		&shot.BeanID,
		&shot.DoseGrams,
		&shot.YieldGrams,
		&extraction,
		&shot.GrindSetting,
		&notes,
		&taste,
		&strength,
		&pulledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Shot{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Shot{}, fmt.Errorf("scan shot: %w", err)
	}
	if extraction.Valid {
		value := extraction.Float64
		shot.ExtractionSeconds = &value
	}
	shot.Notes = notes.String
	shot.Taste = domain.Taste(taste.String)
	shot.Strength = domain.Strength(strength.String)
	shot.PulledAt, _ = time.Parse(time.RFC3339Nano, pulledAt)
	return shot, nil
}
