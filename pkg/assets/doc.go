// Package assets resolves static asset references to cache-busted URLs.
//
// A reference is either root-relative ("/img/logo.png") or relative to the
// conventional subdirectory of its category ("logo.png" for an image lives in
// "/images"). Resolution appends the file's modification time as a query
// string so browsers refetch it after it changes:
//
//	site := assets.Site{DocumentRoot: "/var/www"}
//	assets.Resolve("app.js", assets.Script, site)
//	// "/js/app.js?1718035200"
//
// When Site.AssetHost is set, the URL is rewritten onto one of several asset
// hosts. The host template may carry a placeholder:
//
//	"static.example.com"     every asset on one host
//	"static[].example.com"   stylesheets on static1, scripts on static2, images on static3
//	"static[4].example.com"  each URL drawn uniformly from static1 to static4
//
// For long-running servers, build a Resolver once and share it:
//
//	r := assets.NewResolver(site, assets.WithStater(assets.NewStampCache(assets.OSStater{}, 5*time.Second)))
//	r.Resolve(ctx, "style.css", assets.Stylesheet)
//
// A Resolver is immutable and safe for concurrent use.
package assets
