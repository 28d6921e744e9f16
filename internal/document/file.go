package document

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// FileScheme prefixes locators served by FileSource
const FileScheme = "file://"

// FileSource reads documents from local disk
type FileSource struct{}

// Fetch reads the file at the locator, with or without the file:// prefix
func (FileSource) Fetch(ctx context.Context, locator string) (*TextDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Locator: locator, Err: err}
	}

	path := strings.TrimPrefix(locator, FileScheme)
	f, err := os.Open(path)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: fmt.Errorf("failed to read file: %w", err)}
	}
	defer f.Close()

	data, err := readBody(f)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: fmt.Errorf("failed to read file: %w", err)}
	}

	return New(locator, string(data)), nil
}
