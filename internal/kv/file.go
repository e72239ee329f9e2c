package kv

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/xolan/clientclock/internal/app"
)

// StoreFile is the name of the JSON store file inside the data directory.
const StoreFile = "store.json"

// GetStorePath returns the path to the store file, creating the data
// directory if it doesn't exist.
func GetStorePath() (string, error) {
	return app.Path(StoreFile)
}

// FileStore keeps the whole namespace in a single JSON object file.
// Every mutation rereads the file, applies the change, and rewrites it
// atomically (temp file, then rename). Other processes writing the same file
// are not coordinated with; the last rename wins.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a FileStore backed by path. The file is created lazily
// on the first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	data[key] = value
	return s.write(data)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.write(data)
}

func (s *FileStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return sortedKeys(data), nil
}

// Backup rotates the store file into its .bak.N slots.
func (s *FileStore) Backup() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CreateBackup(s.path)
}

// read returns an empty map when the file doesn't exist.
func (s *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return data, nil
}

func (s *FileStore) write(data map[string]string) error {
	// map[string]string always marshals
	raw, _ := json.MarshalIndent(data, "", "  ")

	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, raw, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}
