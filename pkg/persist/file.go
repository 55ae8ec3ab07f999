package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileRepository writes one <namespace>.json file per store under a directory.
type FileRepository struct {
	dir string
	mu  sync.Mutex
}

// NewFileRepository creates the directory if needed.
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) path(namespace string) string {
	return filepath.Join(r.dir, strings.ReplaceAll(namespace, string(filepath.Separator), "_")+".json")
}

func (r *FileRepository) Load(_ context.Context, namespace string, v any) (bool, error) {
	if namespace == "" {
		return false, ErrInvalidNamespace
	}
	data, err := os.ReadFile(r.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s state: %w", namespace, err)
	}
	if err := decode(namespace, data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Save writes to a temp file and renames it over the target so a crash never
// leaves a half-written snapshot behind.
func (r *FileRepository) Save(_ context.Context, namespace string, v any) error {
	data, err := encode(namespace, v)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.path(namespace)
	tmp, err := os.CreateTemp(r.dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s state: %w", namespace, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s state: %w", namespace, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s state: %w", namespace, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s state: %w", namespace, err)
	}
	return nil
}

func (r *FileRepository) Delete(_ context.Context, namespace string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := os.Remove(r.path(namespace))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s state: %w", namespace, err)
	}
	return nil
}
