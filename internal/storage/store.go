package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Storer persists specs by id. Get returns the zero value for unknown
// ids; callers that care check GetAll or compare against nil.
type Storer[T ValidatingSpec] interface {
	Save(string, T) error
	Get(string) T
	GetAll() map[string]T
}

// FileStore keeps one JSON file per record under a directory, with an
// in-memory cache loaded at construction. Records failing validation
// abort the load rather than entering the cache half-broken.
type FileStore[T ValidatingSpec] struct {
	path    string
	records map[string]T

	mu sync.RWMutex
}

func NewFileStore[T ValidatingSpec](path string) (*FileStore[T], error) {
	s := &FileStore[T]{
		path:    path,
		records: map[string]T{},
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *FileStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = map[string]T{}

	return filepath.Walk(s.path, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		asset, err := s.readAsset(path)
		if err != nil {
			return err
		}

		if err := asset.Validate(); err != nil {
			return fmt.Errorf("validating %s: %w", filepath.Base(path), err)
		}

		if _, ok := s.records[asset.Id()]; ok {
			return fmt.Errorf("duplicate key detected: %s", asset.Id())
		}
		s.records[asset.Id()] = asset.Spec

		return nil
	})
}

func (s *FileStore[T]) Save(id string, o T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[id] = o

	asset := &Asset[T]{
		Version:    1,
		Identifier: id,
		Spec:       o,
	}

	jsonData, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	return atomicWrite(s.filePath(id), jsonData, 0644)
}

func (s *FileStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

func (s *FileStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}
	return vals
}

func (s *FileStore[T]) filePath(id string) string {
	return filepath.Join(s.path, id+".json")
}

func (s *FileStore[T]) readAsset(path string) (*Asset[T], error) {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	if err := json.Unmarshal(jsonData, asset); err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return asset, nil
}

// atomicWrite writes data to a temp file then renames it to the target
// path, so an interrupted process never leaves a partial record.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
