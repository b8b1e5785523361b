package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DiskStore persists one JSON file per key under dataDir. Writes go
// through a temp file and rename so a crash never leaves a half-written
// value behind.
type DiskStore struct {
	dataDir string
	mu      sync.RWMutex
}

func NewDiskStore(dataDir string) *DiskStore {
	return &DiskStore{dataDir: dataDir}
}

func (d *DiskStore) Init() error {
	if err := os.MkdirAll(d.dataDir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}
	return nil
}

func (d *DiskStore) path(key string) string {
	return filepath.Join(d.dataDir, key+".json")
}

func (d *DiskStore) Get(key string, out any) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	data, err := os.ReadFile(d.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}

func (d *DiskStore) Set(key string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	target := d.path(key)
	tempPath := target + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}
	if err := os.Rename(tempPath, target); err != nil {
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}
	return nil
}

func (d *DiskStore) Delete(key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.Remove(d.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}
	return nil
}

// Keys lists the keys currently stored, mainly for diagnostics.
func (d *DiskStore) Keys() ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entries, err := os.ReadDir(d.dataDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			keys = append(keys, strings.TrimSuffix(name, ".json"))
		}
	}
	return keys, nil
}

func (d *DiskStore) Close() error {
	return nil
}
