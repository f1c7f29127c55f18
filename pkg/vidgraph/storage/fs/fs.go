// Package fs implements vidgraph.BlobStore on a local directory tree.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

const locatorPrefix = "file://"

// Config options for the filesystem store.
type Config struct {
	BaseDir string // base directory for stored blobs
}

// Store is a filesystem blob store rooted at a base directory.
type Store struct {
	baseDir string
}

// New creates a filesystem blob store, creating the base directory when
// missing.
func New(config Config) (*Store, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &Store{baseDir: config.BaseDir}, nil
}

// Upload writes the payload under the base directory and returns its
// locator and size.
func (s *Store) Upload(ctx context.Context, objectKey string, r io.Reader) (*vidgraph.BlobInfo, error) {
	filePath := filepath.Join(s.baseDir, filepath.FromSlash(objectKey))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, r)
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &vidgraph.BlobInfo{
		Locator: locatorPrefix + objectKey,
		Size:    size,
	}, nil
}

// Download opens the payload stored under a locator.
func (s *Store) Download(ctx context.Context, locator string) (io.ReadCloser, error) {
	key, err := objectKey(locator)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil, errors.New("object not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes the payload stored under a locator.
func (s *Store) Delete(ctx context.Context, locator string) error {
	key, err := objectKey(locator)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return errors.New("object not found")
	}
	return err
}

func objectKey(locator string) (string, error) {
	if !strings.HasPrefix(locator, locatorPrefix) {
		return "", errors.New("locator does not belong to this store")
	}
	key := strings.TrimPrefix(locator, locatorPrefix)
	if key == "" || strings.Contains(key, "..") {
		return "", errors.New("invalid locator")
	}
	return key, nil
}
