// Package localfs exposes the native filesystem as a billy.Filesystem.
//
// Paths are passed to the operating system unchanged, so relative names and
// names containing ".." resolve against the working directory exactly as a
// shell would resolve them.
package localfs

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// OS is a billy.Filesystem that acts like the native filesystem.
type OS struct {
	osfs.ChrootOS
}

var _ billy.Filesystem = (*OS)(nil)

// New returns the native filesystem.
func New() *OS {
	return &OS{}
}

// Chroot returns a new filesystem rooted at the provided path.
//
//nolint:ireturn // billy.Filesystem is an interface; signature is dictated by upstream.
func (o *OS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (o *OS) Root() string {
	return "/"
}
