package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"brewlog/internal/modules/grinder/domain"
	grinderout "brewlog/internal/modules/grinder/port/out"
	apperrors "brewlog/internal/platform/errors"
)

type FileScaleStore struct {
	path string
}

func NewFileScaleStore(path string) grinderout.ScaleStore {
	return &FileScaleStore{path: path}
}

func (s *FileScaleStore) Save(_ context.Context, scale domain.Scale) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create grinder dir: %w", err)
	}
	payload, err := json.MarshalIndent(scale, "", "  ")
	if err != nil {
		return fmt.Errorf("encode grinder scale: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write grinder scale: %w", err)
	}
	return nil
}

func (s *FileScaleStore) Load(_ context.Context) (domain.Scale, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Scale{}, apperrors.ErrNoGrinder
		}
		return domain.Scale{}, fmt.Errorf("read grinder scale: %w", err)
	}
	scale := domain.Scale{}
	if err := json.Unmarshal(raw, &scale); err != nil {
		return domain.Scale{}, fmt.Errorf("decode grinder scale: %w", err)
	}
	if err := scale.Validate(); err != nil {
		return domain.Scale{}, fmt.Errorf("stored grinder scale: %w", err)
	}
	return scale, nil
}
