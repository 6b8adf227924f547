package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"brewlog/internal/modules/bean/domain"
	beanout "brewlog/internal/modules/bean/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteBeanProjector struct {
	db *sql.DB
}

func NewSQLiteBeanProjector(dbPath string) (beanout.BeanIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteBeanProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteBeanProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS beans (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  roaster TEXT,
  roast TEXT NOT NULL,
  origin TEXT,
  slug TEXT NOT NULL UNIQUE,
  tags TEXT,
  note_path TEXT,
  added_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create beans table: %w", err)
	}
	return nil
}

func (s *SQLiteBeanProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM beans`); err != nil {
		return fmt.Errorf("reset beans: %w", err)
	}
	return nil
}

func (s *SQLiteBeanProjector) UpsertBean(ctx context.Context, bean domain.Bean) error {
	const stmt = `
INSERT INTO beans (id, name, roaster, roast, origin, slug, tags, note_path, added_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  roaster=excluded.roaster,
  roast=excluded.roast,
  origin=excluded.origin,
  slug=excluded.slug,
  tags=excluded.tags,
  note_path=excluded.note_path,
  updated_at=excluded.updated_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		bean.ID,
		bean.Name,
		bean.Roaster,
		string(bean.Roast),
		bean.Origin,
		bean.Slug,
		strings.Join(bean.Tags, ","),
		bean.NotePath,
		bean.AddedAt.Format(time.RFC3339),
		bean.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert bean: %w", err)
	}
	return nil
}
