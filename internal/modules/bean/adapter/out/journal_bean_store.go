package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"brewlog/internal/modules/bean/domain"
	beanout "brewlog/internal/modules/bean/port/out"
	apperrors "brewlog/internal/platform/errors"
	"brewlog/internal/platform/note"
)

type JournalBeanStore struct {
	journalPath string
}

func NewJournalBeanStore(journalPath string) beanout.BeanStore {
	return &JournalBeanStore{journalPath: journalPath}
}

type beanFrontmatter struct {
	SchemaVersion int      `yaml:"schema_version"`
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Roaster       string   `yaml:"roaster,omitempty"`
	Roast         string   `yaml:"roast"`
	Origin        string   `yaml:"origin,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
	AddedAt       string   `yaml:"added_at"`
	UpdatedAt     string   `yaml:"updated_at"`
}

func (s *JournalBeanStore) Save(_ context.Context, document domain.BeanDocument) (string, error) {
	bean := document.Bean
	notePath := filepath.Join(s.journalPath, "beans", bean.Slug+".md")
	if err := os.MkdirAll(filepath.Dir(notePath), 0o755); err != nil {
		return "", fmt.Errorf("create beans directory: %w", err)
	}

	body := document.Body
	if existing, err := os.ReadFile(notePath); err == nil {
		_, existingBody, splitErr := note.SplitFrontmatter(string(existing))
		if splitErr == nil && strings.TrimSpace(body) == "" {
			body = existingBody
		}
	}
	if strings.TrimSpace(body) == "" {
		body = "## Tasting Notes\n\n## Recipes\n\n" +
			domain.ManagedGuidanceStart + "\n_No shots recorded yet._\n" + domain.ManagedGuidanceEnd + "\n"
	}

	rendered, err := note.RenderFrontmatter(toFrontmatter(bean), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write bean note: %w", err)
	}
	return notePath, nil
}

func (s *JournalBeanStore) FindByID(ctx context.Context, id string) (domain.BeanDocument, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return domain.BeanDocument{}, err
	}
	for _, doc := range docs {
		if doc.Bean.ID == id {
			return doc, nil
		}
	}
	return domain.BeanDocument{}, apperrors.ErrNotFound
}

func (s *JournalBeanStore) FindBySlug(_ context.Context, slug string) (domain.BeanDocument, error) {
	notePath := filepath.Join(s.journalPath, "beans", slug+".md")
	content, err := os.ReadFile(notePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.BeanDocument{}, apperrors.ErrNotFound
		}
		return domain.BeanDocument{}, fmt.Errorf("read %s: %w", notePath, err)
	}
	return decodeNote(string(content), notePath)
}

func (s *JournalBeanStore) List(_ context.Context) ([]domain.BeanDocument, error) {
	glob := filepath.Join(s.journalPath, "beans", "*.md")
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob bean notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.BeanDocument, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		doc, decodeErr := decodeNote(string(content), path)
		if decodeErr != nil {
			return nil, fmt.Errorf("decode bean %s: %w", path, decodeErr)
		}
		out = append(out, doc)
	}
	return out, nil
}

func decodeNote(content, notePath string) (domain.BeanDocument, error) {
	meta, body, err := note.SplitFrontmatter(content)
	if err != nil {
		return domain.BeanDocument{}, err
	}
	bean, err := fromFrontmatter(meta, notePath)
	if err != nil {
		return domain.BeanDocument{}, err
	}
	return domain.BeanDocument{Bean: bean, Body: body}, nil
}

func toFrontmatter(bean domain.Bean) beanFrontmatter {
	return beanFrontmatter{
		SchemaVersion: domain.SchemaVersion,
		ID:            bean.ID,
		Name:          bean.Name,
		Roaster:       bean.Roaster,
		Roast:         string(bean.Roast),
		Origin:        bean.Origin,
		Tags:          bean.Tags,
		AddedAt:       bean.AddedAt.Format(time.RFC3339),
		UpdatedAt:     bean.UpdatedAt.Format(time.RFC3339),
	}
}

func fromFrontmatter(meta map[string]any, notePath string) (domain.Bean, error) {
	bean := domain.Bean{
		ID:       asString(meta["id"]),
		Name:     asString(meta["name"]),
		Roaster:  asString(meta["roaster"]),
		Roast:    domain.RoastLevel(asString(meta["roast"])),
		Origin:   asString(meta["origin"]),
		Tags:     asStringSlice(meta["tags"]),
		NotePath: notePath,
	}
	bean.Slug = strings.TrimSuffix(filepath.Base(notePath), filepath.Ext(notePath))
	addedAt, _ := time.Parse(time.RFC3339, asString(meta["added_at"]))
	updatedAt, _ := time.Parse(time.RFC3339, asString(meta["updated_at"]))
	bean.AddedAt = addedAt
	bean.UpdatedAt = updatedAt
	if err := bean.Validate(); err != nil {
		return domain.Bean{}, err
	}
	return bean, nil
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

func asStringSlice(v any) []string {
	if v == nil {
		return nil
	}
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}
