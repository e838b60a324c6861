package json

import (
	"encoding/json"
	"fmt"
	"os"
)

// Reader reads JSON documents produced by the tool or by the interactor.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadRaw returns the file content after checking it is well-formed JSON.
func (r *Reader) ReadRaw(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("file %s does not contain valid JSON", path)
	}

	return data, nil
}
