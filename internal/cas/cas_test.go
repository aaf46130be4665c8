package cas

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	content := []byte("# API Reference\n\n<a id=\"woosmap.map.Map\"></a>")
	hash, err := Write(content, "md")
	if err != nil {
		t.Fatal(err)
	}
	if len(hash) != 64 {
		t.Fatalf("unexpected hash %q", hash)
	}

	got, format, err := Read(hash)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("round-trip failed: got %q, want %q", got, content)
	}
	if format != "md" {
		t.Errorf("format = %q, want md", format)
	}

	if _, err := os.Stat(filepath.Join(Dir(), hash[:2], hash[2:]+".md.zst")); err != nil {
		t.Errorf("expected sharded file: %v", err)
	}
}

func TestWrite_Dedup(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	content := []byte("duplicate content")
	hash1, err := Write(content, "md")
	if err != nil {
		t.Fatal(err)
	}
	hash2, err := Write(content, "html")
	if err != nil {
		t.Fatal(err)
	}
	if hash1 != hash2 {
		t.Errorf("same content produced different hashes: %s vs %s", hash1, hash2)
	}
	if _, format, _ := Read(hash1); format != "md" {
		t.Errorf("second write should be a no-op, format = %q", format)
	}
}

func TestWrite_DifferentContent(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	hash1, err := Write([]byte("content A"), "json")
	if err != nil {
		t.Fatal(err)
	}
	hash2, err := Write([]byte("content B"), "json")
	if err != nil {
		t.Fatal(err)
	}
	if hash1 == hash2 {
		t.Error("different content should produce different hashes")
	}
}

func TestWrite_InvalidFormat(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	for _, format := range []string{"", "../x", "MD", "a.b"} {
		if _, err := Write([]byte("x"), format); err == nil {
			t.Errorf("format %q: expected error", format)
		}
	}
}

func TestRead_MissingHash(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	_, _, err := Read(strings.Repeat("0", 64))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRead_InvalidHash(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	for _, h := range []string{"", "abc", "../../etc/passwd", strings.Repeat("g", 64)} {
		if _, _, err := Read(h); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("hash %q: expected validation error, got %v", h, err)
		}
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	hash, err := Write([]byte("expand me"), "md")
	if err != nil {
		t.Fatal(err)
	}

	got, err := Expand(strings.ToUpper(hash[:8]))
	if err != nil {
		t.Fatal(err)
	}
	if got != hash {
		t.Errorf("Expand = %q, want %q", got, hash)
	}
	if got, err := Expand(hash); err != nil || got != hash {
		t.Errorf("full hash: %q, %v", got, err)
	}

	if _, err := Expand("ab"); err == nil {
		t.Error("expected error for too-short prefix")
	}

	missing := "ffff"
	if strings.HasPrefix(hash, missing) {
		missing = "eeee"
	}
	if _, err := Expand(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExpand_Ambiguous(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	shard := filepath.Join(Dir(), "ab")
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, rest := range []string{"cd" + strings.Repeat("1", 60), "cd" + strings.Repeat("2", 60)} {
		if err := os.WriteFile(filepath.Join(shard, rest+".md.zst"), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := Expand("abcd"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous, got %v", err)
	}
	if got, err := Expand("abcd1"); err != nil || got != "abcd"+strings.Repeat("1", 60) {
		t.Errorf("Expand(abcd1) = %q, %v", got, err)
	}
}
