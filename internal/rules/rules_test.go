package rules

import (
	"errors"
	"testing"
)

// TestLoad tests rule payload parsing with various payload shapes.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("valid payload", func(t *testing.T) {
		t.Parallel()
		table, err := Load([]byte(`{"é": ["Accented e", "e"], "★": ["Star", ""]}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if table.Len() != 2 {
			t.Errorf("expected 2 entries, got %d", table.Len())
		}

		repl, ok := table.Replacement('é')
		if !ok {
			t.Fatal("expected é to be disallowed")
		}
		if repl != 'e' {
			t.Errorf("expected replacement 'e', got %q", repl)
		}
		if table.Name('é') != "Accented e" {
			t.Errorf("expected name 'Accented e', got %q", table.Name('é'))
		}
	})

	t.Run("empty replacement falls back to marker", func(t *testing.T) {
		t.Parallel()
		table, err := Load([]byte(`{"★": ["Star", ""]}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		repl, ok := table.Replacement('★')
		if !ok {
			t.Fatal("expected ★ to be disallowed")
		}
		if repl != FallbackMarker {
			t.Errorf("expected fallback marker %q, got %q", FallbackMarker, repl)
		}
	})

	t.Run("absent replacement falls back to marker", func(t *testing.T) {
		t.Parallel()
		table, err := Load([]byte(`{"★": ["Star"]}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		repl, _ := table.Replacement('★')
		if repl != FallbackMarker {
			t.Errorf("expected fallback marker %q, got %q", FallbackMarker, repl)
		}
	})

	t.Run("empty display name falls back to unicode name", func(t *testing.T) {
		t.Parallel()
		table, err := Load([]byte(`{"\u00a0": ["", " "]}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if table.Name('\u00a0') != "NO-BREAK SPACE" {
			t.Errorf("expected unicode name fallback, got %q", table.Name('\u00a0'))
		}
	})

	t.Run("multi-character replacement uses first scalar", func(t *testing.T) {
		t.Parallel()
		table, err := Load([]byte(`{"…": ["Ellipsis", ".."]}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		repl, _ := table.Replacement('…')
		if repl != '.' {
			t.Errorf("expected replacement '.', got %q", repl)
		}
	})

	t.Run("not JSON returns ErrInvalidPayload", func(t *testing.T) {
		t.Parallel()
		_, err := Load([]byte(`not json`))
		if !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("expected ErrInvalidPayload, got %v", err)
		}
	})

	t.Run("wrong shape returns ErrInvalidPayload", func(t *testing.T) {
		t.Parallel()
		_, err := Load([]byte(`{"é": "not a list"}`))
		if !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("expected ErrInvalidPayload, got %v", err)
		}
	})

	t.Run("empty key returns ErrEmptyKey", func(t *testing.T) {
		t.Parallel()
		_, err := Load([]byte(`{"": ["Empty", "x"]}`))
		if !errors.Is(err, ErrEmptyKey) {
			t.Errorf("expected ErrEmptyKey, got %v", err)
		}
	})

	t.Run("empty payload is a valid empty table", func(t *testing.T) {
		t.Parallel()
		table, err := Load([]byte(`{}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if table.Len() != 0 {
			t.Errorf("expected empty table, got %d entries", table.Len())
		}
	})
}

// TestLoadMultiRuneKeys tests the two policies for keys with more than one
// Unicode scalar: lenient truncation (default) and strict rejection.
func TestLoadMultiRuneKeys(t *testing.T) {
	t.Parallel()

	t.Run("lenient mode truncates to first scalar", func(t *testing.T) {
		t.Parallel()
		table, err := Load([]byte(`{"abc": ["Letter a", "x"]}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !table.Contains('a') {
			t.Error("expected truncated key 'a' to be disallowed")
		}
		if table.Contains('b') {
			t.Error("expected 'b' to pass through")
		}
	})

	t.Run("strict mode rejects multi-scalar keys", func(t *testing.T) {
		t.Parallel()
		_, err := Load([]byte(`{"abc": ["Letter a", "x"]}`), WithStrictKeys(true))
		if !errors.Is(err, ErrMultiRuneKey) {
			t.Errorf("expected ErrMultiRuneKey, got %v", err)
		}
	})

	t.Run("strict mode accepts multi-byte single scalars", func(t *testing.T) {
		t.Parallel()
		table, err := Load([]byte(`{"é": ["Accented e", "e"]}`), WithStrictKeys(true))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !table.Contains('é') {
			t.Error("expected é to be disallowed")
		}
	})

	t.Run("truncation collision returns ErrDuplicateKey", func(t *testing.T) {
		t.Parallel()
		_, err := Load([]byte(`{"ab": ["First", "x"], "ac": ["Second", "y"]}`))
		if !errors.Is(err, ErrDuplicateKey) {
			t.Errorf("expected ErrDuplicateKey, got %v", err)
		}
	})
}

// TestDefault verifies that the embedded default payload parses and covers
// the characters the tool exists to remove.
func TestDefault(t *testing.T) {
	t.Parallel()

	table, err := Default()
	if err != nil {
		t.Fatalf("expected embedded payload to parse, got %v", err)
	}
	if table.Len() == 0 {
		t.Fatal("expected non-empty default table")
	}

	t.Run("covers no-break space", func(t *testing.T) {
		t.Parallel()
		repl, ok := table.Replacement('\u00a0')
		if !ok {
			t.Fatal("expected U+00A0 in default table")
		}
		if repl != ' ' {
			t.Errorf("expected U+00A0 to map to a plain space, got %q", repl)
		}
	})

	t.Run("zero width space maps to visible marker", func(t *testing.T) {
		t.Parallel()
		repl, ok := table.Replacement('​')
		if !ok {
			t.Fatal("expected U+200B in default table")
		}
		if repl != FallbackMarker {
			t.Errorf("expected fallback marker, got %q", repl)
		}
	})
}

// TestTableRunes verifies the stable codepoint ordering of the key set.
func TestTableRunes(t *testing.T) {
	t.Parallel()

	table, err := Load([]byte(`{"c": ["C", "x"], "a": ["A", "x"], "b": ["B", "x"]}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	runes := table.Runes()
	want := []rune{'a', 'b', 'c'}
	if len(runes) != len(want) {
		t.Fatalf("expected %d runes, got %d", len(want), len(runes))
	}
	for i, r := range want {
		if runes[i] != r {
			t.Errorf("expected runes[%d] = %q, got %q", i, r, runes[i])
		}
	}

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()
		runes := table.Runes()
		runes[0] = 'z'
		if table.Runes()[0] != 'a' {
			t.Error("mutating the returned slice must not affect the table")
		}
	})
}
