package operations

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
)

// MoveOption configures Move.
type MoveOption func(*moveConfig)

type moveConfig struct {
	replace bool
}

// ReplaceExisting lets Move overwrite a destination file.
func ReplaceExisting() MoveOption {
	return func(c *moveConfig) {
		c.replace = true
	}
}

// Move relocates src to dst; dst may carry a different name. It fails with
// NotFoundError when src is missing and, unless ReplaceExisting is given,
// with ExistsError when dst exists, leaving src untouched. Files that cannot
// be renamed across filesystems are copied, verified and then removed.
func Move(fsys filesystem.FullFileSystem, src, dst core.Path, opts ...MoveOption) error {
	var cfg moveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := fsys.Lstat(src.String()); err != nil {
		return err
	}

	rename := fsys.Rename
	if cfg.replace {
		rename = fsys.Replace
	}

	err := rename(src.String(), dst.String())
	if err == nil || !filesystem.IsCrossDevice(err) {
		return err
	}

	return moveAcrossDevices(fsys, src, dst, rename)
}

func moveAcrossDevices(fsys filesystem.FullFileSystem, src, dst core.Path, rename func(oldpath, newpath string) error) (err error) {
	info, err := fsys.Lstat(src.String())
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot move %s across filesystems: not a regular file", src)
	}

	srcFile, err := fsys.Open(src.String())
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	tmpPath := dst.String() + ".fstour"
	dstFile, err := fsys.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to open destination file %s: %w", tmpPath, err)
	}
	defer func() {
		_ = dstFile.Close()
		if err != nil {
			_ = fsys.Remove(tmpPath)
		}
	}()

	srcHasher := blake3.New()
	dstHasher := blake3.New()

	teeReader := io.TeeReader(srcFile, srcHasher)
	multiWriter := io.MultiWriter(dstFile, dstHasher)

	if _, err = io.Copy(multiWriter, teeReader); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}

	if err = dstFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync destination fs: %w", err)
	}

	srcChecksum := fmt.Sprintf("%x", srcHasher.Sum(nil))
	dstChecksum := fmt.Sprintf("%x", dstHasher.Sum(nil))

	if srcChecksum != dstChecksum {
		return fmt.Errorf("hash mismatch: %s (src) != %s (dst)", srcChecksum, dstChecksum)
	}

	if err = rename(tmpPath, dst.String()); err != nil {
		return err
	}

	if err = fsys.Remove(src.String()); err != nil {
		return fmt.Errorf("moved %s but failed to remove source: %w", src, err)
	}

	return nil
}
