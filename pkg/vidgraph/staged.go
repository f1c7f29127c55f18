package vidgraph

import (
	"fmt"
	"os"
)

// StagedFile is a binary payload the upload middleware already received
// and parked at a temporary local path, awaiting its blob store upload.
type StagedFile struct {
	Field string // declared form field, e.g. "videoFile", "thumbnail"
	Path  string
}

// Open opens the staged payload for reading.
func (f *StagedFile) Open() (*os.File, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open staged %s: %w", f.Field, err)
	}
	return file, nil
}

// Remove deletes the local temp file. The lifecycle coordinator calls it
// unconditionally once an upload attempt finished, on both outcomes, so a
// staged file never outlives its request.
func (f *StagedFile) Remove() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
