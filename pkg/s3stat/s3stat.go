package s3stat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// DefaultTimeout bounds a single HeadObject call.
const DefaultTimeout = 2 * time.Second

// API is the subset of *s3.Client used by this package.
type API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Options configures a Stater.
type Options struct {
	// Bucket is the bucket holding the document root.
	Bucket string

	// Root is the filesystem prefix stripped from resolver paths,
	// normally the site's document root.
	Root string

	// Prefix is prepended to every object key (e.g. "public/").
	Prefix string

	// Timeout bounds each HeadObject call. Default: DefaultTimeout.
	Timeout time.Duration

	// Logger receives missing objects at Debug and every other lookup
	// failure (throttling, credentials, timeouts) at Warn.
	// Default: slog.Default().
	Logger *slog.Logger
}

// Stater reports object LastModified times through HeadObject.
type Stater struct {
	client API
	opts   Options
	logger *slog.Logger
}

// New creates a Stater backed by client.
func New(client API, opts Options) *Stater {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Stater{
		client: client,
		opts:   opts,
		logger: logger.With("component", "s3stat", "bucket", opts.Bucket),
	}
}

// Key returns the object key for a filesystem path.
func (s *Stater) Key(path string) string {
	rel := strings.TrimPrefix(path, strings.TrimSuffix(s.opts.Root, "/"))
	return s.opts.Prefix + strings.TrimPrefix(rel, "/")
}

// ModTime implements assets.Stater. Missing objects, "directory" keys and
// request failures all report false, so the asset is served without a
// timestamp rather than failing the page.
func (s *Stater) ModTime(ctx context.Context, path string) (time.Time, bool) {
	key := s.Key(path)
	if key == "" || strings.HasSuffix(key, "/") {
		return time.Time{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			s.logger.Debug("object not found", "key", key)
		} else {
			s.logger.Warn("head object failed, serving without timestamp", "key", key, "error", err)
		}
		return time.Time{}, false
	}
	if out.LastModified == nil {
		return time.Time{}, false
	}
	return *out.LastModified, true
}

// Snapshot lists every object under Prefix and returns a Stater that answers
// from that listing without further requests.
func (s *Stater) Snapshot(ctx context.Context) (*Snapshot, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.opts.Bucket),
		Prefix: aws.String(s.opts.Prefix),
	})

	snap := &Snapshot{stater: s, mods: make(map[string]time.Time)}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || obj.LastModified == nil {
				continue
			}
			snap.mods[*obj.Key] = *obj.LastModified
		}
	}

	s.logger.Info("snapshot loaded", "prefix", s.opts.Prefix, "objects", len(snap.mods))
	return snap, nil
}

// Snapshot is a point-in-time listing of a bucket prefix.
// It is read-only after creation and safe for concurrent use.
type Snapshot struct {
	stater *Stater
	mods   map[string]time.Time
}

// ModTime implements assets.Stater.
func (s *Snapshot) ModTime(_ context.Context, path string) (time.Time, bool) {
	mod, ok := s.mods[s.stater.Key(path)]
	return mod, ok
}

// Len returns the number of objects in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.mods)
}
