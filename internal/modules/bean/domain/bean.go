package domain

import (
	"fmt"
	"strings"
	"time"
)

type RoastLevel string

const (
	RoastLight      RoastLevel = "light"
	RoastMedium     RoastLevel = "medium"
	RoastMediumDark RoastLevel = "medium-dark"
	RoastDark       RoastLevel = "dark"
)

const (
	ManagedGuidanceStart = "<!-- brewlog:guidance:start -->"
	ManagedGuidanceEnd   = "<!-- brewlog:guidance:end -->"
	SchemaVersion        = 1
)

type Bean struct {
	ID        string
	Name      string
	Roaster   string
	Roast     RoastLevel
	Origin    string
	Slug      string
	Tags      []string
	NotePath  string
	AddedAt   time.Time
	UpdatedAt time.Time
}

func (r RoastLevel) Validate() error {
	switch r {
	case RoastLight, RoastMedium, RoastMediumDark, RoastDark:
		return nil
	default:
		return fmt.Errorf("unsupported roast level %q", string(r))
	}
}

func (b Bean) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(b.Slug) == "" {
		return fmt.Errorf("slug is required")
	}
	if err := b.Roast.Validate(); err != nil {
		return err
	}
	return nil
}

// BeanDocument pairs bean metadata with its markdown note body.
type BeanDocument struct {
	Bean Bean
	Body string
}
