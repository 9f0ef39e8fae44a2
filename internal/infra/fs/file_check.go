package fs

import (
	"fmt"
	"os"
)

// CheckFile returns the size of path, or an error when it is missing,
// a directory or empty.
func CheckFile(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("chart file %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("chart file %s is a directory", path)
	}
	if info.Size() == 0 {
		return 0, fmt.Errorf("chart file %s: %w", path, ErrEmptyFile)
	}
	return info.Size(), nil
}
