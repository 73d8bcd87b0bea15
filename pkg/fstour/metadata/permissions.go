package metadata

import (
	"fmt"
	"strings"
)

// Permission is a single POSIX permission bit.
type Permission uint32

const (
	OwnerRead    Permission = 0o400
	OwnerWrite   Permission = 0o200
	OwnerExecute Permission = 0o100
	GroupRead    Permission = 0o040
	GroupWrite   Permission = 0o020
	GroupExecute Permission = 0o010
	OthersRead   Permission = 0o004
	OthersWrite  Permission = 0o002
	OthersExec   Permission = 0o001
)

var permissionOrder = []struct {
	perm Permission
	name string
}{
	{OwnerRead, "OWNER_READ"},
	{OwnerWrite, "OWNER_WRITE"},
	{OwnerExecute, "OWNER_EXECUTE"},
	{GroupRead, "GROUP_READ"},
	{GroupWrite, "GROUP_WRITE"},
	{GroupExecute, "GROUP_EXECUTE"},
	{OthersRead, "OTHERS_READ"},
	{OthersWrite, "OTHERS_WRITE"},
	{OthersExec, "OTHERS_EXECUTE"},
}

// PermissionSet is the set of POSIX permission bits of an entry.
type PermissionSet uint32

// NewPermissionSet keeps only the rwx bits of mode.
func NewPermissionSet(mode uint32) PermissionSet {
	return PermissionSet(mode & 0o777)
}

// Has reports whether perm is in the set.
func (s PermissionSet) Has(perm Permission) bool {
	return uint32(s)&uint32(perm) != 0
}

// Names lists the permissions in owner, group, others order.
func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(permissionOrder))
	for _, p := range permissionOrder {
		if s.Has(p.perm) {
			names = append(names, p.name)
		}
	}
	return names
}

// String renders the set as "[OWNER_READ, OWNER_WRITE, ...]".
func (s PermissionSet) String() string {
	return "[" + strings.Join(s.Names(), ", ") + "]"
}

// Symbolic renders the set as "rwxr-x---".
func (s PermissionSet) Symbolic() string {
	var b strings.Builder
	for i, p := range permissionOrder {
		if !s.Has(p.perm) {
			b.WriteByte('-')
			continue
		}
		b.WriteByte("rwx"[i%3])
	}
	return b.String()
}

// ParsePermissions parses the nine-character symbolic form.
func ParsePermissions(symbolic string) (PermissionSet, error) {
	if len(symbolic) != len(permissionOrder) {
		return 0, fmt.Errorf("invalid permission string %q: want %d characters", symbolic, len(permissionOrder))
	}
	var s PermissionSet
	for i, p := range permissionOrder {
		switch symbolic[i] {
		case "rwx"[i%3]:
			s |= PermissionSet(p.perm)
		case '-':
		default:
			return 0, fmt.Errorf("invalid permission string %q: unexpected %q at %d", symbolic, symbolic[i], i)
		}
	}
	return s, nil
}
