package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

// FileSink writes parsed results as JSON documents into one output
// directory.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Reset recreates the output directory, dropping results of earlier runs.
func (s *FileSink) Reset() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	return os.MkdirAll(s.dir, 0o755)
}

// Save encodes v into <dir>/<name>.json, indented, with HTML escaping off
// so Cyrillic and quotes survive readably.
func (s *FileSink) Save(name string, v interface{}) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name+".json"), buf.Bytes(), 0o644)
}
