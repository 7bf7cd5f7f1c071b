package ingestion

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// FromURL fetches a job posting, extracts its main text, cleans it, and returns it with metadata.
// A JSON-LD JobPosting block is preferred; otherwise platform-specific selectors are
// applied for known job boards.
// If useBrowser is true, falls back to headless browser for SPA sites with insufficient content.
func FromURL(ctx context.Context, urlStr string, useBrowser bool, verbose bool) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	if verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
	}

	// Structured data, when present, is cleaner than anything scraped from the layout
	if title, description, ok := fetch.ExtractJobPostingLD(result.HTML); ok {
		if verbose {
			log.Printf("[VERBOSE] Using JSON-LD JobPosting description")
		}
		cleanedText := CleanText(strings.TrimSpace(title + "\n" + StripHTML(html.UnescapeString(description))))
		metadata := NewMetadata(cleanedText, urlStr)
		metadata.Platform = string(platform)
		return cleanedText, metadata, nil
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars", len(textContent))
	}

	rendered := false
	if useBrowser && fetch.ShouldUseBrowser(textContent) {
		if verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(textContent), fetch.MinContentLength)
		}

		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, verbose)
		if browserErr != nil {
			// Continue with HTTP content if browser fails
			if verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", browserErr)
			}
		} else if browserText, err := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); err != nil {
			if verbose {
				log.Printf("[VERBOSE] Browser content extraction failed: %v", err)
			}
		} else {
			textContent = browserText
			rendered = true
		}
	}

	cleanedText := CleanText(textContent)
	if verbose {
		log.Printf("[VERBOSE] Cleaned text: %d chars", len(cleanedText))
	}

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Platform = string(platform)
	metadata.Rendered = rendered

	return cleanedText, metadata, nil
}
