package kv

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// FileStore maps each slot to a file under dir. The write path goes
// through a temp file and rename so a crash mid-write cannot leave a
// half-serialized slot behind.
type FileStore struct {
	dir string
}

var unsafeSlotChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	body, err := os.ReadFile(s.slotPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(body), true, nil
}

func (s *FileStore) Set(key, value string) error {
	path := s.slotPath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.slotPath(key))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) slotPath(key string) string {
	safe := unsafeSlotChars.ReplaceAllString(strings.TrimSpace(key), "_")
	if safe == "" {
		safe = "_"
	}
	return filepath.Join(s.dir, safe+".json")
}
