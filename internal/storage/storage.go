package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Extension whitelists for uploaded resumes. Applications additionally
// accept png because some resumes arrive as images.
var (
	ResumeExts      = []string{".pdf", ".doc", ".docx"}
	ApplicationExts = []string{".pdf", ".doc", ".docx", ".png"}
)

// Store writes uploaded resumes into a single directory. Stored names are
// prefixed with a UUID so two uploads that sanitize to the same name never
// collide.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// ExtAllowed reports whether the file's extension is in the whitelist.
func ExtAllowed(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// Sanitize strips path components and reduces the name to a safe character
// set, keeping the extension.
func Sanitize(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

// Save copies src into the upload directory and returns the stored
// filename.
func (s *Store) Save(src io.Reader, originalName string) (string, error) {
	name := Sanitize(originalName)
	if name == "" {
		return "", fmt.Errorf("storage: unusable filename %q", originalName)
	}
	stored := uuid.NewString() + "_" + name

	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", stored, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("storage: write %s: %w", stored, err)
	}
	return stored, nil
}

// Remove deletes a stored file. Used to compensate when a later step of the
// apply sequence fails, so no orphan file survives without a row.
func (s *Store) Remove(stored string) error {
	if stored == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.dir, stored))
}

// URL returns the public URL a stored resume is served under.
func URL(baseURL, stored string) string {
	return strings.TrimRight(baseURL, "/") + "/uploads/" + stored
}
