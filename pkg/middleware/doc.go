// Package middleware connects the asset resolver to HTTP servers and to
// production observability.
//
// # Secure Requests
//
// Secure marks each request's context with whether it arrived over TLS, so
// asset hosts are rewritten to https on secure pages and http elsewhere:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Secure(middleware.WithTrustForwardedProto(true)))
//
// # Prometheus Metrics
//
// Metrics implements assets.Observer:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("myapp"))
//	resolver := assets.NewResolver(site, assets.WithObserver(m))
//
// Metrics collected:
//   - assets_resolved_total: resolutions by category, outcome and sharding
//   - assets_stat_duration_seconds: time spent reading modification times
//
// # OpenTelemetry
//
// TracingStater wraps any assets.Stater in a span per lookup, which is mostly
// useful when the stater makes network calls (see package s3stat):
//
//	st := middleware.TracingStater(s3stat.New(client, opts))
//	resolver := assets.NewResolver(site, assets.WithStater(st))
package middleware
