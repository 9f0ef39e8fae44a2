package fs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrEmptyFile is returned when a writer produced no bytes.
var ErrEmptyFile = errors.New("file is empty after writing")

// WriteFileAtomic creates the parent directory, streams write into a temp file
// next to path and renames it into place. The final file is never left
// half-written or empty. Returns the written size.
func WriteFileAtomic(path string, write func(w io.Writer) error) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tempFilePath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tempFilePath)
	}

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		cleanup()
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to flush %s: %w", path, err)
	}

	info, err := tmp.Stat()
	if err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to stat temp file: %w", err)
	}
	if info.Size() == 0 {
		cleanup()
		return 0, ErrEmptyFile
	}

	if err := tmp.Chmod(0644); err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tempFilePath, path); err != nil {
		os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to rename temp file: %w", err)
	}
	return info.Size(), nil
}
