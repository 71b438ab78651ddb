// Package resume inspects a local resume file before it is uploaded, so
// obvious rejections (oversized file, wrong type) are caught client-side
// with the platform's own messages instead of a round trip.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxFileSize mirrors the platform's upload limit.
const MaxFileSize = 5 << 20

var (
	ErrTooLarge    = errors.New("File is too large. Maximum size is 5MB.")
	ErrInvalidType = errors.New("Invalid file type. Please upload a PDF or DOCX file.")
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// File is a validated local resume ready for upload.
type File struct {
	Path string
	Name string
	Size int64

	// Preview is the extracted plain text for PDFs, empty for other types
	// or for image-only documents.
	Preview string
}

// Inspect validates the file and, for PDFs, extracts a plain-text preview.
// An unextractable PDF is not an error; the caller may warn that the
// document looks image-only.
func Inspect(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return nil, ErrInvalidType
	}

	if info.Size() > MaxFileSize {
		return nil, ErrTooLarge
	}

	file := &File{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
	}

	if ext == ".pdf" {
		file.Preview = extractText(path)
	}

	return file, nil
}

func extractText(path string) string {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return ""
	}

	return strings.TrimSpace(buf.String())
}

// Open returns the file contents for upload.
func (f *File) Open() (*os.File, error) {
	return os.Open(f.Path)
}
