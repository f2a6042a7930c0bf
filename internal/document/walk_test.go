package document

import (
	"strings"
	"testing"
)

// TestTransformRunText tests the text node traversal over WordprocessingML
// fragments.
func TestTransformRunText(t *testing.T) {
	t.Parallel()

	upper := strings.ToUpper

	t.Run("rewrites every text node in order", func(t *testing.T) {
		t.Parallel()
		content := `<w:p><w:r><w:t>one</w:t></w:r><w:r><w:t>two</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t>three</w:t></w:r></w:p>`

		var visited []string
		out, stats := transformRunText(content, func(s string) string {
			visited = append(visited, s)
			return upper(s)
		})

		want := `<w:p><w:r><w:t>ONE</w:t></w:r><w:r><w:t>TWO</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t>THREE</w:t></w:r></w:p>`
		if out != want {
			t.Errorf("expected %q, got %q", want, out)
		}

		wantVisited := []string{"one", "two", "three"}
		if len(visited) != len(wantVisited) {
			t.Fatalf("expected %d visits, got %d", len(wantVisited), len(visited))
		}
		for i, v := range wantVisited {
			if visited[i] != v {
				t.Errorf("expected visit %d to be %q, got %q", i, v, visited[i])
			}
		}

		if stats.Paragraphs != 2 {
			t.Errorf("expected 2 paragraphs, got %d", stats.Paragraphs)
		}
		if stats.Runs != 3 {
			t.Errorf("expected 3 runs, got %d", stats.Runs)
		}
		if stats.Fragments != 3 {
			t.Errorf("expected 3 fragments, got %d", stats.Fragments)
		}
	})

	t.Run("preserves text node attributes", func(t *testing.T) {
		t.Parallel()
		content := `<w:r><w:t xml:space="preserve"> a </w:t></w:r>`

		out, _ := transformRunText(content, upper)
		want := `<w:r><w:t xml:space="preserve"> A </w:t></w:r>`
		if out != want {
			t.Errorf("expected %q, got %q", want, out)
		}
	})

	t.Run("does not count property elements as paragraphs or runs", func(t *testing.T) {
		t.Parallel()
		content := `<w:p><w:pPr><w:rPr></w:rPr></w:pPr><w:r><w:rPr/><w:t>x</w:t></w:r></w:p>`

		_, stats := transformRunText(content, upper)
		if stats.Paragraphs != 1 {
			t.Errorf("expected 1 paragraph, got %d", stats.Paragraphs)
		}
		if stats.Runs != 1 {
			t.Errorf("expected 1 run, got %d", stats.Runs)
		}
	})

	t.Run("unescapes entities before the callback and re-escapes after", func(t *testing.T) {
		t.Parallel()
		content := `<w:r><w:t>a &amp; b &lt;c&gt;</w:t></w:r>`

		var seen string
		out, _ := transformRunText(content, func(s string) string {
			seen = s
			return s + " <&>"
		})

		if seen != "a & b <c>" {
			t.Errorf("expected callback to see unescaped text, got %q", seen)
		}
		want := `<w:r><w:t>a &amp; b &lt;c&gt; &lt;&amp;&gt;</w:t></w:r>`
		if out != want {
			t.Errorf("expected %q, got %q", want, out)
		}
	})

	t.Run("double-escaped entities survive a no-op pass", func(t *testing.T) {
		t.Parallel()
		content := `<w:r><w:t>&amp;lt;</w:t></w:r>`

		out, _ := transformRunText(content, func(s string) string {
			if s != "&lt;" {
				t.Errorf("expected literal %q, got %q", "&lt;", s)
			}
			return s
		})
		if out != content {
			t.Errorf("expected unchanged content, got %q", out)
		}
	})

	t.Run("empty text node is visited but unchanged", func(t *testing.T) {
		t.Parallel()
		content := `<w:r><w:t></w:t></w:r>`

		calls := 0
		out, stats := transformRunText(content, func(s string) string {
			calls++
			if s != "" {
				t.Errorf("expected empty fragment, got %q", s)
			}
			return s
		})
		if out != content {
			t.Errorf("expected unchanged content, got %q", out)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
		if stats.Fragments != 1 {
			t.Errorf("expected 1 fragment, got %d", stats.Fragments)
		}
	})

	t.Run("no text nodes", func(t *testing.T) {
		t.Parallel()
		content := `<w:p><w:pPr/></w:p>`

		out, stats := transformRunText(content, upper)
		if out != content {
			t.Errorf("expected unchanged content, got %q", out)
		}
		if stats.Fragments != 0 {
			t.Errorf("expected 0 fragments, got %d", stats.Fragments)
		}
	})
}

// TestDefaultOutputPath tests output path derivation.
func TestDefaultOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		suffix string
		want   string
	}{
		{name: "plain file", input: "report.docx", suffix: "_cleaned", want: "report_cleaned.docx"},
		{name: "with directory", input: "docs/report.docx", suffix: "_cleaned", want: "docs/report_cleaned.docx"},
		{name: "no extension", input: "report", suffix: "_cleaned", want: "report_cleaned"},
		{name: "dotted stem", input: "a.b.docx", suffix: "_out", want: "a.b_out.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DefaultOutputPath(tt.input, tt.suffix); got != tt.want {
				t.Errorf("DefaultOutputPath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
			}
		})
	}
}
