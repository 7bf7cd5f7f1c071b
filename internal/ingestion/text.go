package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	spaceRunPattern = regexp.MustCompile(`\s+`)
	blankRunPattern = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Clean each line
	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}
	result := strings.Join(cleanedLines, "\n")

	// 3. Remove excessive blank lines (max 2 consecutive)
	result = blankRunPattern.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t ")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	// Headings and bullet markers are kept as-is; the résumé parser strips markers itself.
	if strings.HasPrefix(trimmed, "#") || isBulletLine(trimmed) {
		return trimmed
	}

	return spaceRunPattern.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// ReadJobDescription reads a job description file, strips HTML when present, cleans it,
// and returns the text with metadata
func ReadJobDescription(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleanedText := CleanText(PrepareJobDescription(string(content)))
	metadata := NewMetadata(cleanedText, "")
	metadata.Source = path

	return cleanedText, metadata, nil
}
