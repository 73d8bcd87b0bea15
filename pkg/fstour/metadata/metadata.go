package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
)

// Info describes a filesystem entry at the time it was queried.
type Info struct {
	Path        core.Path
	Inode       uint64
	Size        int64
	Permissions PermissionSet
	UID         uint32
	GID         uint32
	Owner       string
	Group       string
	AccessedAt  time.Time
	ModifiedAt  time.Time
	IsDir       bool
	IsSymlink   bool
	SymlinkTo   string
}

// HumanSize returns the size in SI units, e.g. "1.2 kB".
func (i *Info) HumanSize() string {
	return humanize.Bytes(uint64(i.Size))
}

// Get returns the metadata of p, following symlinks.
func Get(fsys filesystem.FullFileSystem, p core.Path) (*Info, error) {
	return get(fsys, p, true)
}

// Lget returns the metadata of p itself when it is a symlink.
func Lget(fsys filesystem.FullFileSystem, p core.Path) (*Info, error) {
	return get(fsys, p, false)
}

func get(fsys filesystem.FullFileSystem, p core.Path, follow bool) (*Info, error) {
	host := fsys.Resolve(p.String())

	var stat unix.Stat_t
	var err error
	op := "stat"
	if follow {
		err = unix.Stat(host, &stat)
	} else {
		op = "lstat"
		err = unix.Lstat(host, &stat)
	}
	if err != nil {
		return nil, statError(op, p, err)
	}

	info := &Info{
		Path:        p,
		Inode:       stat.Ino,
		Size:        stat.Size,
		Permissions: NewPermissionSet(uint32(stat.Mode)),
		UID:         stat.Uid,
		GID:         stat.Gid,
		AccessedAt:  time.Unix(stat.Atim.Unix()),
		ModifiedAt:  time.Unix(stat.Mtim.Unix()),
		IsDir:       (uint32(stat.Mode) & unix.S_IFMT) == unix.S_IFDIR,
		IsSymlink:   (uint32(stat.Mode) & unix.S_IFMT) == unix.S_IFLNK,
	}
	info.Owner = lookupUser(info.UID)
	info.Group = lookupGroup(info.GID)

	if info.IsSymlink {
		target, err := os.Readlink(host)
		if err != nil {
			return nil, fmt.Errorf("failed to read symlink %s: %w", p, err)
		}
		info.SymlinkTo = target
	}

	return info, nil
}

func statError(op string, p core.Path, err error) error {
	pathErr := &fs.PathError{Op: op, Path: p.String(), Err: err}
	if errors.Is(err, fs.ErrNotExist) {
		return &core.NotFoundError{Op: op, Path: p.String(), Err: pathErr}
	}
	return pathErr
}

// LastModified returns the modification time of p.
func LastModified(fsys filesystem.FullFileSystem, p core.Path) (time.Time, error) {
	info, err := Get(fsys, p)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModifiedAt, nil
}

// Exists reports whether p exists. Any failure to tell counts as absent.
func Exists(fsys filesystem.FullFileSystem, p core.Path) bool {
	ok, err := fsys.Exists(p.String())
	return err == nil && ok
}

// Owner returns the name of the user owning p, or the numeric uid when the
// user cannot be looked up.
func Owner(fsys filesystem.FullFileSystem, p core.Path) (string, error) {
	info, err := Get(fsys, p)
	if err != nil {
		return "", err
	}
	return info.Owner, nil
}

// Permissions returns the POSIX permission set of p.
func Permissions(fsys filesystem.FullFileSystem, p core.Path) (PermissionSet, error) {
	info, err := Get(fsys, p)
	if err != nil {
		return 0, err
	}
	return info.Permissions, nil
}

// FormatTime renders t in UTC as RFC 3339 with trailing zeros trimmed from
// the fraction.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func lookupUser(uid uint32) string {
	id := strconv.FormatUint(uint64(uid), 10)
	u, err := user.LookupId(id)
	if err != nil {
		return id
	}
	return u.Username
}

func lookupGroup(gid uint32) string {
	id := strconv.FormatUint(uint64(gid), 10)
	g, err := user.LookupGroupId(id)
	if err != nil {
		return id
	}
	return g.Name
}
