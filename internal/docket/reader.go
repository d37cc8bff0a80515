package docket

import (
	"fmt"
	"os"
)

// ReadSource loads the raw docket export into memory. An unreadable file is
// fatal; nothing downstream can run without the source.
func ReadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source document %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("source document %s is empty", path)
	}
	return data, nil
}
