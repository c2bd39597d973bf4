// Package hashutil fingerprints definition files so reports can name the
// exact rules they were derived with.
package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
)

// Prefix tags checksums with their algorithm.
const Prefix = "sha256:"

// Checksum returns the tagged SHA256 of everything read from r.
func Checksum(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", Prefix, hash.Sum(nil)), nil
}

// FileChecksum returns the tagged SHA256 of the file at path.
func FileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrNotFound, "file %s not found", path).
				WithDetail("path", path)
		}
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", path).
			WithDetail("path", path)
	}
	defer func() {
		_ = file.Close()
	}()

	sum, err := Checksum(file)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", path).
			WithDetail("path", path)
	}
	return sum, nil
}
