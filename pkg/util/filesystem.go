package util

import (
	"os"

	"github.com/pkg/errors"
)

// CreateDirectoryIfNotExists creates directory if it doesn't yet exist
func CreateDirectoryIfNotExists(path string, mode os.FileMode) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return nil
	case os.IsNotExist(err):
		return errors.Wrapf(os.MkdirAll(path, mode), "failed to create directory %s", path)
	default:
		return errors.Wrapf(err, "failed to stat directory %s", path)
	}
}
