package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"brewlog/internal/modules/advisor/domain"
	advisorout "brewlog/internal/modules/advisor/port/out"
	"brewlog/internal/platform/note"
)

const (
	managedGuidanceStart = "<!-- brewlog:guidance:start -->"
	managedGuidanceEnd   = "<!-- brewlog:guidance:end -->"
)

// JournalGuidanceProjector rewrites the managed guidance block inside a
// bean's markdown note. This is presentation: the advisor core only emits
// tagged data, the wording lives here.
type JournalGuidanceProjector struct {
	journalPath string
}

func NewJournalGuidanceProjector(journalPath string) advisorout.GuidanceProjector {
	return &JournalGuidanceProjector{journalPath: journalPath}
}

func (p *JournalGuidanceProjector) Project(_ context.Context, projection advisorout.GuidanceProjection) error {
	notePath := filepath.Join(p.journalPath, "beans", projection.BeanSlug+".md")
	content, err := os.ReadFile(notePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Bean note was removed out from under us; guidance still
			// lives in the database.
			return nil
		}
		return fmt.Errorf("read bean note: %w", err)
	}
	meta, body, err := note.SplitFrontmatter(string(content))
	if err != nil {
		return fmt.Errorf("parse bean note: %w", err)
	}
	body = note.ReplaceManagedBlock(body, managedGuidanceStart, managedGuidanceEnd, renderGuidance(projection))
	rendered, err := note.RenderFrontmatter(meta, body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write bean note: %w", err)
	}
	return nil
}

func renderGuidance(projection advisorout.GuidanceProjection) string {
	line := ""
	switch projection.Direction {
	case domain.DirectionFiner:
		line = fmt.Sprintf("**Next shot**: grind finer by %d step(s) to **%.2f** (%s confidence)", projection.Steps, projection.SuggestedSetting, projection.Confidence)
	case domain.DirectionCoarser:
		line = fmt.Sprintf("**Next shot**: grind coarser by %d step(s) to **%.2f** (%s confidence)", projection.Steps, projection.SuggestedSetting, projection.Confidence)
	default:
		line = fmt.Sprintf("**Next shot**: keep the grind at **%.2f** (%s confidence)", projection.SuggestedSetting, projection.Confidence)
	}
	return line + "\n\n_" + reasonPhrase(projection.Reason) + " · " + projection.CreatedAt.Format(time.RFC3339) + "_"
}

func reasonPhrase(reason domain.ReasonCode) string {
	switch reason {
	case domain.ReasonTasteSour:
		return "Last shot tasted sour"
	case domain.ReasonTasteBitter:
		return "Last shot tasted bitter"
	case domain.ReasonTasteBalanced:
		return "Last shot tasted balanced"
	case domain.ReasonTimeFast:
		return "Last shot ran too fast"
	case domain.ReasonTimeSlow:
		return "Last shot ran too slow"
	case domain.ReasonTimeInBand:
		return "Last shot timed inside the optimal window"
	default:
		return "No timing or taste signal on the last shot"
	}
}
