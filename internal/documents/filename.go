package documents

import (
	"fmt"
	"strings"
)

// sanitizeFileName flattens path separators into underscores and rejects
// traversal sequences. The result is what gets stored as Document.Name.
func sanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: invalid file name", ErrInvalidInput)
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	return s, nil
}
