package assets

import (
	"context"
	"os"
	"strconv"
	"time"
)

// Stater reports the modification time of the file at a filesystem path.
// ok is false when no regular file exists there.
type Stater interface {
	ModTime(ctx context.Context, path string) (modTime time.Time, ok bool)
}

// StaterFunc adapts a function to the Stater interface.
type StaterFunc func(ctx context.Context, path string) (time.Time, bool)

// ModTime calls f(ctx, path).
func (f StaterFunc) ModTime(ctx context.Context, path string) (time.Time, bool) {
	return f(ctx, path)
}

// OSStater reads modification times from the local filesystem.
type OSStater struct{}

// ModTime stats path. Directories, devices and missing paths report false.
func (OSStater) ModTime(_ context.Context, path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Timestamp returns the cache-busting token for the file at path: "?" and
// its Unix modification time, or "" when the file does not exist.
//
// Two versions of a file written within the same second get the same token.
func Timestamp(path string) string {
	return timestamp(context.Background(), OSStater{}, path)
}

func timestamp(ctx context.Context, st Stater, path string) string {
	mod, ok := st.ModTime(ctx, path)
	if !ok {
		return ""
	}
	return "?" + strconv.FormatInt(mod.Unix(), 10)
}
