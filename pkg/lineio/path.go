package lineio

import "path/filepath"

// PrefixFilename prepends prefix to the file-name part of path, leaving
// the directory untouched.
//
// PrefixFilename("/path/to/file.dat", "new_") == "/path/to/new_file.dat"
func PrefixFilename(path, prefix string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, prefix+name)
}
