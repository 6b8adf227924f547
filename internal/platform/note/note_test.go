package note_test

import (
	"strings"
	"testing"

	"brewlog/internal/platform/note"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()
	content := "---\nname: Friendly Beast\nroaster: Roastco\n---\n\n# Friendly Beast\n"

	meta, body, err := note.SplitFrontmatter(content)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["name"] != "Friendly Beast" || meta["roaster"] != "Roastco" {
		t.Fatalf("unexpected meta: %v", meta)
	}
	if body != "\n# Friendly Beast\n" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitFrontmatterWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	meta, body, err := note.SplitFrontmatter("# Just a note\n")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(meta) != 0 {
		t.Fatalf("expected empty meta, got %v", meta)
	}
	if body != "# Just a note\n" {
		t.Fatalf("body changed: %q", body)
	}
}

func TestSplitFrontmatterMissingClosingSeparator(t *testing.T) {
	t.Parallel()
	if _, _, err := note.SplitFrontmatter("---\nname: oops\n"); err == nil {
		t.Fatal("expected an error for unterminated frontmatter")
	}
}

func TestRenderFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()
	type meta struct {
		Name    string `yaml:"name"`
		Roaster string `yaml:"roaster"`
	}

	content, err := note.RenderFrontmatter(meta{Name: "Friendly Beast", Roaster: "Roastco"}, "\nbody text\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got, body, err := note.SplitFrontmatter(content)
	if err != nil {
		t.Fatalf("split rendered note: %v", err)
	}
	if got["name"] != "Friendly Beast" || got["roaster"] != "Roastco" {
		t.Fatalf("meta lost in round trip: %v", got)
	}
	if body != "\nbody text\n" {
		t.Fatalf("body lost in round trip: %q", body)
	}
}

func TestRenderFrontmatterFieldOrderIsStable(t *testing.T) {
	t.Parallel()
	type meta struct {
		Name  string `yaml:"name"`
		Roast string `yaml:"roast"`
	}

	content, err := note.RenderFrontmatter(meta{Name: "a", Roast: "b"}, "\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Index(content, "name:") > strings.Index(content, "roast:") {
		t.Fatalf("struct field order not preserved:\n%s", content)
	}
}

func TestReplaceManagedBlockRewritesInPlace(t *testing.T) {
	t.Parallel()
	body := "intro\n\n<!-- guidance:start -->\nold advice\n<!-- guidance:end -->\n\noutro\n"

	got := note.ReplaceManagedBlock(body, "<!-- guidance:start -->", "<!-- guidance:end -->", "new advice")
	if !strings.Contains(got, "new advice") || strings.Contains(got, "old advice") {
		t.Fatalf("block not replaced:\n%s", got)
	}
	if !strings.HasPrefix(got, "intro\n") || !strings.HasSuffix(got, "\noutro\n") {
		t.Fatalf("surrounding body disturbed:\n%s", got)
	}
}

func TestReplaceManagedBlockAppendsWhenMissing(t *testing.T) {
	t.Parallel()
	got := note.ReplaceManagedBlock("some body\n", "<!-- s -->", "<!-- e -->", "content")
	want := "some body\n\n<!-- s -->\ncontent\n<!-- e -->\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestReplaceManagedBlockOnEmptyBody(t *testing.T) {
	t.Parallel()
	got := note.ReplaceManagedBlock("", "<!-- s -->", "<!-- e -->", "content")
	want := "<!-- s -->\ncontent\n<!-- e -->\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}
