package cas

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/jcdickinson/jsdocgen/internal/config"
)

var (
	// ErrNotFound is returned when no archived document matches a hash.
	ErrNotFound = errors.New("no archived document")
	// ErrAmbiguous is returned when a hash prefix matches several documents.
	ErrAmbiguous = errors.New("ambiguous hash prefix")
)

var (
	hashRe   = regexp.MustCompile(`^[0-9a-f]{64}$`)
	prefixRe = regexp.MustCompile(`^[0-9a-f]{4,64}$`)
	formatRe = regexp.MustCompile(`^[a-z]+$`)
)

// Dir returns the CAS directory path.
func Dir() string {
	return config.CASDir()
}

// path returns the sharded file path for a hash: cas/<first2>/<rest>.<format>.zst
func path(hash, format string) string {
	return filepath.Join(Dir(), hash[:2], hash[2:]+"."+format+".zst")
}

// find locates the archived file for a full hash and reports its format.
func find(hash string) (string, string, error) {
	matches, err := filepath.Glob(filepath.Join(Dir(), hash[:2], hash[2:]+".*.zst"))
	if err != nil {
		return "", "", err
	}
	if len(matches) == 0 {
		return "", "", fmt.Errorf("%w %s", ErrNotFound, hash)
	}
	name := strings.TrimSuffix(filepath.Base(matches[0]), ".zst")
	return matches[0], strings.TrimPrefix(filepath.Ext(name), "."), nil
}

// Write stores a rendered document in the CAS, returning its SHA-256 hash.
// If the content already exists, this is a no-op.
func Write(content []byte, format string) (string, error) {
	if !formatRe.MatchString(format) {
		return "", fmt.Errorf("invalid document format %q", format)
	}
	hash := fmt.Sprintf("%x", sha256.Sum256(content))

	if _, _, err := find(hash); err == nil {
		return hash, nil
	}

	p := path(hash, format)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return "", fmt.Errorf("creating CAS directory: %w", err)
	}

	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return "", fmt.Errorf("creating zstd writer: %w", err)
	}
	if _, err := w.Write(content); err != nil {
		w.Close()
		return "", fmt.Errorf("compressing CAS content: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing zstd writer: %w", err)
	}

	if err := os.WriteFile(p, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing CAS file: %w", err)
	}

	return hash, nil
}

// Read retrieves a document and its format from the CAS by full hash.
func Read(hash string) ([]byte, string, error) {
	if !hashRe.MatchString(hash) {
		return nil, "", fmt.Errorf("invalid hash %q", hash)
	}
	p, format, err := find(hash)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, "", fmt.Errorf("reading CAS file %s: %w", hash, err)
	}
	defer f.Close()

	r, err := zstd.NewReader(f)
	if err != nil {
		return nil, "", fmt.Errorf("creating zstd reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("decompressing CAS file %s: %w", hash, err)
	}
	return data, format, nil
}

// Expand resolves an abbreviated hash of at least four hex digits to the
// full hash of the single document it names.
func Expand(prefix string) (string, error) {
	prefix = strings.ToLower(prefix)
	if !prefixRe.MatchString(prefix) {
		return "", fmt.Errorf("invalid hash prefix %q", prefix)
	}

	matches, err := filepath.Glob(filepath.Join(Dir(), prefix[:2], prefix[2:]+"*.zst"))
	if err != nil {
		return "", err
	}
	hashes := make(map[string]bool)
	for _, m := range matches {
		rest, _, _ := strings.Cut(filepath.Base(m), ".")
		hashes[prefix[:2]+rest] = true
	}

	switch len(hashes) {
	case 0:
		return "", fmt.Errorf("%w %s", ErrNotFound, prefix)
	case 1:
		for h := range hashes {
			return h, nil
		}
	}
	return "", fmt.Errorf("%w %s (%d matches)", ErrAmbiguous, prefix, len(hashes))
}
