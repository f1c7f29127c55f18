// Package memory implements vidgraph.BlobStore with an in-process map,
// for tests and local development.
package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

const locatorPrefix = "mem://"

// DurationProbe derives a media duration from uploaded bytes. Real
// backends get durations from the store; here tests supply one.
type DurationProbe func(objectKey string, data []byte) float64

// Store is an in-memory blob store.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
	probe   DurationProbe
}

// Option configures the store.
type Option func(*Store)

// WithDurationProbe sets the duration probe applied on upload.
func WithDurationProbe(probe DurationProbe) Option {
	return func(s *Store) {
		s.probe = probe
	}
}

// New creates an empty in-memory blob store.
func New(options ...Option) *Store {
	s := &Store{objects: make(map[string][]byte)}
	for _, option := range options {
		option(s)
	}
	return s
}

// Upload stores the payload and returns its locator and derived metadata.
func (s *Store) Upload(ctx context.Context, objectKey string, r io.Reader) (*vidgraph.BlobInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[objectKey] = data

	info := &vidgraph.BlobInfo{
		Locator: locatorPrefix + objectKey,
		Size:    int64(len(data)),
	}
	if s.probe != nil {
		info.Duration = s.probe(objectKey, data)
	}
	return info, nil
}

// Download returns the payload stored under a locator.
func (s *Store) Download(ctx context.Context, locator string) (io.ReadCloser, error) {
	key, err := objectKey(locator)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.objects[key]
	if !exists {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the payload stored under a locator.
func (s *Store) Delete(ctx context.Context, locator string) error {
	key, err := objectKey(locator)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[key]; !exists {
		return errors.New("object not found")
	}
	delete(s.objects, key)
	return nil
}

// Len reports how many objects the store holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func objectKey(locator string) (string, error) {
	if !strings.HasPrefix(locator, locatorPrefix) {
		return "", errors.New("locator does not belong to this store")
	}
	return strings.TrimPrefix(locator, locatorPrefix), nil
}
