package parsing

import (
	"errors"
	"sort"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Decoder converts the bytes of an uploaded file into plain text.
// format is a lowercase extension without the dot.
type Decoder interface {
	Decode(data []byte, format string) (string, error)
}

// allowedExtensions lists the file formats a résumé can be uploaded in
var allowedExtensions = map[string]bool{
	"pdf":  true,
	"docx": true,
	"doc":  true,
	"txt":  true,
}

// Extension returns the lowercase extension of filename without the dot,
// or "" when it has none
func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// AllowedExtension reports whether filename has a supported extension
func AllowedExtension(filename string) bool {
	return allowedExtensions[Extension(filename)]
}

// AllowedExtensions returns the supported extensions in sorted order
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DecodeFile converts an uploaded file to text using dec.
// Errors are *UnsupportedFormatError or *DecodeError.
func DecodeFile(filename string, data []byte, dec Decoder) (string, error) {
	ext := Extension(filename)
	if !allowedExtensions[ext] {
		return "", &UnsupportedFormatError{Extension: ext}
	}
	if dec == nil {
		return "", &DecodeError{Format: ext, Cause: errors.New("no decoder available")}
	}

	text, err := dec.Decode(data, ext)
	if err != nil {
		var decodeErr *DecodeError
		var formatErr *UnsupportedFormatError
		if errors.As(err, &decodeErr) || errors.As(err, &formatErr) {
			return "", err
		}
		return "", &DecodeError{Format: ext, Cause: err}
	}
	return text, nil
}

// ParseFile decodes an uploaded file and parses the resulting text. Failures
// are reported through ParseResult.Error with an empty record, never as a
// Go error, so the caller can always build a well-formed response.
func ParseFile(filename string, data []byte, dec Decoder) *types.ParseResult {
	text, err := DecodeFile(filename, data, dec)
	if err != nil {
		return &types.ParseResult{Resume: types.NewResume(), Error: err.Error()}
	}
	return &types.ParseResult{Resume: ParseText(text)}
}
