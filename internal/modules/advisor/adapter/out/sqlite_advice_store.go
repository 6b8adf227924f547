package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"brewlog/internal/modules/advisor/domain"
	advisorout "brewlog/internal/modules/advisor/port/out"
	apperrors "brewlog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteAdviceStore struct {
	db *sql.DB
}

func NewSQLiteAdviceStore(dbPath string) (advisorout.AdviceStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteAdviceStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteAdviceStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS shot_recommendations (
  id TEXT PRIMARY KEY,
  shot_id TEXT NOT NULL UNIQUE,
  bean_id TEXT NOT NULL,
  suggested_setting REAL NOT NULL,
  direction TEXT NOT NULL,
  steps INTEGER NOT NULL,
  confidence TEXT NOT NULL,
  reason TEXT NOT NULL,
  time_deviation REAL NOT NULL,
  taste_issue TEXT,
  was_followed INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  meta TEXT
);
CREATE INDEX IF NOT EXISTS idx_recommendations_bean ON shot_recommendations(bean_id, created_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create recommendations table: %w", err)
	}
	return nil
}

func (s *SQLiteAdviceStore) Save(ctx context.Context, record domain.Record) error {
	// The unique index backs this up, but the one-to-one invariant is
	// checked here explicitly so callers get a typed rejection.
	if _, err := s.FindByShot(ctx, record.ShotID); err == nil {
		return apperrors.ErrDuplicateAdvice
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	meta := ""
	if len(record.Meta) > 0 {
		raw, err := json.Marshal(record.Meta)
		if err != nil {
			return fmt.Errorf("encode recommendation meta: %w", err)
		}
		meta = string(raw)
	}
	const stmt = `
INSERT INTO shot_recommendations
  (id, shot_id, bean_id, suggested_setting, direction, steps, confidence, reason, time_deviation, taste_issue, was_followed, created_at, meta)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.ShotID,
		record.BeanID,
		record.SuggestedSetting,
		string(record.Direction),
		record.Steps,
		string(record.Confidence),
		string(record.Reason),
		record.TimeDeviation,
		string(record.TasteIssue),
		boolToInt(record.WasFollowed),
		record.CreatedAt.Format(time.RFC3339Nano),
		meta,
	)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}

func (s *SQLiteAdviceStore) FindByShot(ctx context.Context, shotID string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE shot_id = ?`, shotID)
	return scanRecord(row)
}

func (s *SQLiteAdviceStore) LatestForBean(ctx context.Context, beanID string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE bean_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, beanID)
	return scanRecord(row)
}

func (s *SQLiteAdviceStore) MarkFollowed(ctx context.Context, recordID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE shot_recommendations SET was_followed = 1 WHERE id = ? AND was_followed = 0`, recordID)
	if err != nil {
		return false, fmt.Errorf("mark recommendation followed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark recommendation followed: %w", err)
	}
	return affected > 0, nil
}

func (s *SQLiteAdviceStore) HistoryForBean(ctx context.Context, beanID string) ([]domain.Record, error) {
	query := selectColumns + ` ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if beanID != "" {
		query = selectColumns + ` WHERE bean_id = ? ORDER BY created_at DESC, rowid DESC`
		args = append(args, beanID)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	out := []domain.Record{}
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan recommendations: %w", err)
	}
	return out, nil
}

func (s *SQLiteAdviceStore) DeleteByShot(ctx context.Context, shotID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shot_recommendations WHERE shot_id = ?`, shotID); err != nil {
		return fmt.Errorf("delete recommendation: %w", err)
	}
	return nil
}

const selectColumns = `
SELECT id, shot_id, bean_id, suggested_setting, direction, steps, confidence, reason, time_deviation, taste_issue, was_followed, created_at, meta
FROM shot_recommendations`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.Record, error) {
	record := domain.Record{}
	var direction, confidence, reason, tasteIssue, createdAt, meta string
	var followed int
	err := row.Scan(
		&record.ID,
		&record.ShotID,
		&record.BeanID,
		&record.SuggestedSetting,
		&direction,
		&record.Steps,
		&confidence,
		&reason,
		&record.TimeDeviation,
		&tasteIssue,
		&followed,
		&createdAt,
		&meta,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("scan recommendation: %w", err)
	}
	record.Direction = domain.Direction(direction)
	record.Confidence = domain.Confidence(confidence)
	record.Reason = domain.ReasonCode(reason)
	record.TasteIssue = domain.TasteClass(tasteIssue)
	record.WasFollowed = followed != 0
	record.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if meta != "" {
		decoded := map[string]string{}
		if err := json.Unmarshal([]byte(meta), &decoded); err == nil {
			record.Meta = decoded
		}
	}
	return record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
