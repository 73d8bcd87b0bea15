//go:build !linux

package filesystem

func renameNoReplace(oldpath, newpath string) error {
	return renameChecked(oldpath, newpath)
}
