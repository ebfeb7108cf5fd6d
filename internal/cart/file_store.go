package cart

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileStore persists cart lines as a JSON file, the local-storage analogue
// for command-line and kiosk clients.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed cart store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the cart lines to disk.
func (s *FileStore) Save(lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	return nil
}

// Load reads the cart lines from disk. A missing file is an empty cart.
func (s *FileStore) Load() ([]Line, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return lines, nil
}
