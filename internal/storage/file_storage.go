package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/govindp47/smarthire/internal/config"
)

var ErrNotFound = errors.New("file not found")

// FileStorage keeps uploaded resume files on local disk under a base directory.
type FileStorage struct {
	baseDir string
}

func NewFileStorage(cfg *config.StorageConfig) (*FileStorage, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create upload dir %s: %w", cfg.UploadDir, err)
	}
	return &FileStorage{baseDir: cfg.UploadDir}, nil
}

// Save writes the file under a unique name and returns its storage path.
func (s *FileStorage) Save(fileName string, data []byte) (string, error) {
	path := filepath.Join(s.baseDir, uuid.NewString()+"_"+filepath.Base(fileName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("cannot save file %s: %w", fileName, err)
	}
	return path, nil
}

func (s *FileStorage) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("cannot read file %s: %w", path, err)
	}
	return data, nil
}

func (s *FileStorage) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot delete file %s: %w", path, err)
	}
	return nil
}
