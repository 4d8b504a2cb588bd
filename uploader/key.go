package uploader

import "path/filepath"

// DestinationKey returns the blob key for path under folder: the folder, a
// slash and the base name of path. Nothing is normalized, so an empty folder
// yields a key with a leading slash. Two files with the same base name map to
// the same key.
func DestinationKey(folder, path string) string {
	return folder + "/" + filepath.Base(path)
}
