package testutil

import (
	"fmt"
	"math/rand"
	"path"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

// NewMemFS creates an in-memory filesystem holding files, keyed by path.
func NewMemFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	for name, content := range files {
		if dir := path.Dir(name); dir != "." && dir != "/" {
			if err := fs.MkdirAll(dir, 0o755); err != nil {
				t.Fatalf("failed to create directory %s: %v", dir, err)
			}
		}
		if err := util.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return fs
}

// GenerateRandomData generates random bytes of the specified size.
func GenerateRandomData(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(rand.Intn(256))
	}
	return data
}

// GenerateTestBucketName generates a valid, unique bucket name.
func GenerateTestBucketName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()%1_000_000_000)
}

// FixedClock returns a clock that advances by step on every call.
func FixedClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		current := now
		now = now.Add(step)
		return current
	}
}
