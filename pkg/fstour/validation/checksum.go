package validation

import (
	"fmt"
	"io"
	"time"

	"github.com/zeebo/blake3"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
)

// ChecksumRecord stores file checksum information
type ChecksumRecord struct {
	Path         core.Path
	BLAKE3       string
	Size         int64
	ModTime      time.Time
	ChecksumTime time.Time
}

// Matches reports whether two records describe the same content.
func (r *ChecksumRecord) Matches(other *ChecksumRecord) bool {
	return r != nil && other != nil && r.Size == other.Size && r.BLAKE3 == other.BLAKE3
}

// ComputeFileChecksum calculates the BLAKE3 checksum and gathers file metadata.
// Directories yield a nil record.
func ComputeFileChecksum(fsys filesystem.FullFileSystem, p core.Path) (*ChecksumRecord, error) {
	info, err := fsys.Stat(p.String())
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", p, err)
	}

	if info.IsDir() {
		return nil, nil
	}

	file, err := fsys.Open(p.String())
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s for checksumming: %w", p, err)
	}
	defer func() {
		_ = file.Close()
	}()

	sum, err := Sum(file)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for %s: %w", p, err)
	}

	return &ChecksumRecord{
		Path:         p,
		BLAKE3:       sum,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		ChecksumTime: time.Now(),
	}, nil
}

// Sum returns the hex BLAKE3 digest of everything read from r.
func Sum(r io.Reader) (string, error) {
	hasher := blake3.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
