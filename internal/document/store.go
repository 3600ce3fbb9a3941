package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/zstd"

	"unify-data-model/internal/record"
)

// Document name suffixes.
const (
	ExtJSON = ".json"
	ExtZstd = ".zst"
)

// Store reads and writes documents below a root directory.
// It is safe for concurrent use.
type Store struct {
	root    string
	parser  Parser
	decoder *zstd.Decoder
	encoder *zstd.Encoder
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) (*Store, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		dec.Close()
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	return &Store{root: dir, decoder: dec, encoder: enc}, nil
}

// Root returns the directory the store reads from.
func (s *Store) Root() string {
	return s.root
}

// Path returns the file path of the named document.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name)
}

// Load reads and parses the named document.
func (s *Store) Load(name string) (record.Record, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}

	if IsCompressed(name) {
		data, err = s.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress document %s: %w", name, err)
		}
	}

	return s.parser.Parse(name, data)
}

// Save writes v as indented JSON to the named document, creating parent
// directories as needed.
func (s *Store) Save(name string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", name, err)
	}

	if IsCompressed(name) {
		data = s.encoder.EncodeAll(data, nil)
	}

	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}

	return nil
}

// List returns the names of all documents directly under the root, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", s.root, err)
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() || !IsDocument(e.Name()) {
			continue
		}

		names = append(names, e.Name())
	}

	slices.Sort(names)

	return names, nil
}

// Close releases the compression state.
func (s *Store) Close() error {
	s.decoder.Close()
	return s.encoder.Close()
}

// Marshal renders v as JSON indented by two spaces, with a trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// IsDocument reports whether name looks like a (possibly compressed) JSON
// document.
func IsDocument(name string) bool {
	return strings.HasSuffix(name, ExtJSON) || strings.HasSuffix(name, ExtJSON+ExtZstd)
}

// IsCompressed reports whether name is stored zstd-compressed.
func IsCompressed(name string) bool {
	return strings.HasSuffix(name, ExtZstd)
}
