// Package validation checks user-supplied input before it reaches the
// corpus loaders or an exported page: output paths, highlight colors and
// the contents of corpus files.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// MaxPathLength is the maximum allowed path length.
const MaxPathLength = 4096

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrInvalidColor     = errors.New("invalid color")
	ErrContentMismatch  = errors.New("content does not match file extension")
)

// SanitizePath resolves userPath inside baseDir. Absolute paths and paths
// that climb out of baseDir are rejected.
func SanitizePath(baseDir, userPath string) (string, error) {
	if err := ValidatePath(userPath); err != nil {
		return "", err
	}

	cleanPath := filepath.Clean(userPath)
	if filepath.IsAbs(cleanPath) {
		return "", fmt.Errorf("%w: absolute path not allowed", ErrPathTraversal)
	}
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	return filepath.Join(baseDir, cleanPath), nil
}

// ValidatePath checks a path for length limits and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

var colorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[a-zA-Z]{3,20}$`),
	regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`),
	regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\([0-9.,%\s/]+\)$`),
}

// ValidateColor accepts a CSS color name, a hex color or an rgb()/hsl()
// function. The empty string selects the default highlight and is valid.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	for _, p := range colorPatterns {
		if p.MatchString(color) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidColor, color)
}

// Content is the kind of data found in a corpus file.
type Content string

const (
	ContentXZ      Content = "xz"
	ContentSQLite  Content = "sqlite"
	ContentText    Content = "text"
	ContentUnknown Content = "unknown"
)

var magicBytes = []struct {
	content Content
	magic   []byte
}{
	{ContentXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{ContentSQLite, []byte("SQLite format 3\x00")},
}

// CheckContent reads the header of a corpus file and verifies that it
// matches what the file name promises: xz data for ".xz", a SQLite
// database for ".db", ".sqlite" and ".sqlite3", text for anything else.
func CheckContent(r io.Reader, filename string) (Content, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ContentUnknown, fmt.Errorf("failed to read file header: %w", err)
	}
	buf = buf[:n]

	detected := sniff(buf)
	expected := expectedContent(filename)
	if detected == expected {
		return detected, nil
	}
	return ContentUnknown, fmt.Errorf("%w: %s looks like %s, expected %s", ErrContentMismatch, filepath.Base(filename), detected, expected)
}

func sniff(buf []byte) Content {
	for _, sig := range magicBytes {
		if bytes.HasPrefix(buf, sig.magic) {
			return sig.content
		}
	}
	if bytes.IndexByte(buf, 0) != -1 {
		return ContentUnknown
	}
	return ContentText
}

func expectedContent(filename string) Content {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xz":
		return ContentXZ
	case ".db", ".sqlite", ".sqlite3":
		return ContentSQLite
	default:
		return ContentText
	}
}
