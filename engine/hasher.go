package engine

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/meysamhadeli/timekeep/engine/models"
	"github.com/zeebo/xxh3"
)

// HashFile reads a file and returns the xxh3 fingerprint of its content, the
// exact number of bytes read, and the file's mtime. The mtime comes from the
// same open handle that was read, so it always pairs with the content that
// produced the fingerprint even if the path is replaced mid-scan. The hash
// is a change detector, not a security mechanism, so throughput wins over
// cryptographic strength.
func HashFile(path string) (models.Fingerprint, uint64, time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, time.Time{}, fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return 0, 0, time.Time{}, fmt.Errorf("failed to read file for hashing: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return 0, 0, time.Time{}, fmt.Errorf("failed to stat file for hashing: %w", err)
	}

	return models.Fingerprint(xxh3.Hash(contents)), uint64(len(contents)), info.ModTime(), nil
}
