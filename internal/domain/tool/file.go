package tool

import (
	"os"
	"unicode/utf8"
)

// FileService reads and creates files by absolute path. There is no path
// allow-listing or sandboxing: the server trusts its caller exactly as far as
// the operating system does.
type FileService struct{}

// NewFileService returns a FileService.
func NewFileService() *FileService {
	return &FileService{}
}

// Read returns the full contents of the file at path as text.
// A path that is missing or unreadable is a not_found failure naming the path
// so the caller can correct it; bytes that are not valid UTF-8 are an
// internal failure.
func (s *FileService) Read(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", Errorf(KindNotFound, "file %q is not found, ask for the right file path: %w", path, err)
	}
	if !utf8.Valid(raw) {
		return "", Errorf(KindInternal, "failed to parse file %q: contents are not valid text", path)
	}
	return string(raw), nil
}

// Create creates (or truncates) the file at path and writes content to it.
// Any create or write failure is an internal error naming the path.
func (s *FileService) Create(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return Errorf(KindInternal, "failed to create file at %q: %w", path, err)
	}

	_, writeErr := f.WriteString(content)
	closeErr := f.Close()
	if writeErr != nil {
		return Errorf(KindInternal, "failed to write file at %q: %w", path, writeErr)
	}
	if closeErr != nil {
		return Errorf(KindInternal, "failed to write file at %q: %w", path, closeErr)
	}
	return nil
}
