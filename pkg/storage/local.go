package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/notaspie/notaspie/pkg/models"
)

var _ models.DocumentStorage = &LocalStorage{}

// LocalStorage stores files below a directory of the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates basePath if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (s *LocalStorage) Upload(
	_ context.Context,
	fileID uuid.UUID,
	filename string,
	data io.Reader,
) (string, error) {
	storagePath := DocumentPath(fileID, filename)
	fullPath := filepath.Join(s.basePath, storagePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", models.NewSaveError("failed to create directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", models.NewSaveError("failed to create file", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		_ = os.Remove(fullPath)
		return "", models.NewSaveError("failed to write file", err)
	}

	log.Debugf("stored %s", fullPath)

	return storagePath, nil
}

func (s *LocalStorage) Download(_ context.Context, storagePath string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.basePath, storagePath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.NewNotFoundError("document " + storagePath)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Delete(_ context.Context, storagePath string) error {
	err := os.Remove(filepath.Join(s.basePath, storagePath))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
