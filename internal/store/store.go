// Package store persists small string values such as high scores.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// ErrCorrupt is returned when the store file is not a YAML mapping.
var ErrCorrupt = errors.New("store file is corrupt")

// KV is a durable string key-value store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// File is a KV backed by a single YAML document.
// The file is re-read on every access so several processes can share it;
// writes replace it atomically.
type File struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// NewFile returns a store backed by path. The file is created on the first Set.
func NewFile(path string) *File {
	return &File{path: path}
}

// WithLogger sets the logger used to report a corrupt file being replaced.
func (f *File) WithLogger(logger *log.Logger) *File {
	f.logger = logger
	return f
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		// Start over so later saves succeed; keep the old document for inspection.
		aside := f.path + ".corrupt"
		if f.logger != nil {
			f.logger.Warn("replacing corrupt store", "path", f.path, "movedTo", aside, "err", err)
		}
		if err := os.Rename(f.path, aside); err != nil {
			return fmt.Errorf("move corrupt store: %w", err)
		}
		data, err = make(map[string]string), nil
	}
	if err != nil {
		return err
	}
	data[key] = value
	return f.write(data)
}

// All returns a copy of every stored entry.
func (f *File) All() (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *File) read() (map[string]string, error) {
	data := make(map[string]string)

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if data == nil {
		data = make(map[string]string)
	}
	return data, nil
}

func (f *File) write(data map[string]string) error {
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".store-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Memory is an in-process KV, used when no file is configured.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// All returns a copy of every stored entry.
func (m *Memory) All() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

// SortedKeys returns the keys of data in lexical order.
func SortedKeys(data map[string]string) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
