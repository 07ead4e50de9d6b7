package assets

import (
	"context"
	"log/slog"
	"strings"
)

// Outcome classifies a single resolution for observers.
type Outcome string

const (
	// OutcomeExternal is a full URL returned unchanged.
	OutcomeExternal Outcome = "external"

	// OutcomeStamped carries a modification-time token.
	OutcomeStamped Outcome = "stamped"

	// OutcomeMissing found no file, so no token was appended.
	OutcomeMissing Outcome = "missing"
)

// Observer receives one call per resolution. Implementations must be safe
// for concurrent use.
type Observer interface {
	ObserveResolve(c Category, outcome Outcome, sharded bool)
}

// Resolver turns asset references into URLs for one Site.
type Resolver struct {
	site     Site
	host     HostSpec
	hasHost  bool
	stater   Stater
	intN     func(n int) int
	observer Observer
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStater sets the source of modification times (default OSStater).
func WithStater(st Stater) Option {
	return func(r *Resolver) {
		if st != nil {
			r.stater = st
		}
	}
}

// WithIntN sets the random source used for "[N]" hosts.
// intN must return a value in [0, n).
func WithIntN(intN func(n int) int) Option {
	return func(r *Resolver) {
		r.intN = intN
	}
}

// WithObserver registers an Observer for resolution outcomes.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		r.observer = o
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a Resolver for site. The site is copied, so later
// changes to the caller's Subdirs map have no effect.
func NewResolver(site Site, opts ...Option) *Resolver {
	r := &Resolver{
		site:   site.clone(),
		stater: OSStater{},
		logger: slog.Default(),
	}
	if site.AssetHost != "" {
		r.host = ParseHostSpec(site.AssetHost)
		r.hasHost = true
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "assets")
	return r
}

// Site returns a copy of the resolver's site configuration.
func (r *Resolver) Site() Site {
	return r.site.clone()
}

// Resolve returns the URL for ref, a root-relative path ("/img/a.png"), a
// name under the category's subdirectory ("a.png"), or a full URL, which is
// returned unchanged.
//
// The URL carries "?<mtime>" when the file exists. With an asset host
// configured it is absolute; otherwise it is root-relative.
func (r *Resolver) Resolve(ctx context.Context, ref string, c Category) string {
	if isFullURL(ref) {
		r.observe(c, OutcomeExternal, false)
		return ref
	}

	docRoot := r.site.documentRoot()
	var fsPath, urlPath string
	if strings.HasPrefix(ref, "/") {
		fsPath = docRoot + ref
		urlPath = ref
	} else {
		subdir := r.site.Subdir(c)
		if r.site.ThemeMode {
			fsPath = r.site.ThemeRoot + subdir + "/" + ref
			urlPath = strings.TrimPrefix(fsPath, docRoot)
		} else {
			fsPath = docRoot + subdir + "/" + ref
			urlPath = subdir + "/" + ref
		}
	}

	token := timestamp(ctx, r.stater, fsPath)
	outcome := OutcomeStamped
	if token == "" {
		outcome = OutcomeMissing
		r.logger.Debug("asset not found, serving without timestamp",
			"ref", ref, "category", c.String(), "path", fsPath)
	}
	urlPath += token

	if !r.hasHost {
		r.observe(c, outcome, false)
		return urlPath
	}
	r.observe(c, outcome, true)
	return r.host.URL(urlPath, c, r.secure(ctx), r.intN)
}

// Path is Resolve with a background context, for callers outside a request.
func (r *Resolver) Path(ref string, c Category) string {
	return r.Resolve(context.Background(), ref, c)
}

func (r *Resolver) secure(ctx context.Context) bool {
	if secure, ok := SecureFromContext(ctx); ok {
		return secure
	}
	return r.site.Secure
}

func (r *Resolver) observe(c Category, outcome Outcome, sharded bool) {
	if r.observer != nil {
		r.observer.ObserveResolve(c, outcome, sharded)
	}
}

// Resolve resolves ref against site using the local filesystem.
func Resolve(ref string, c Category, site Site) string {
	return NewResolver(site).Resolve(context.Background(), ref, c)
}
