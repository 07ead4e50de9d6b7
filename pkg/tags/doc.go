// Package tags renders <link>, <script> and <img> tags whose URLs come from
// an assets.Resolver.
//
//	b := tags.New(assets.NewResolver(site))
//	b.Stylesheet(ctx, tags.StylesheetOptions{Files: []string{"site", "print"}, Media: "screen"})
//	// <link rel="stylesheet" href="/css/site.css?1718035200" type="text/css" media="screen" />
//	// <link rel="stylesheet" href="/css/print.css" type="text/css" media="screen" />
//
// For html/template, install the FuncMap on a per-request clone so the
// request context (and its secure flag) reaches the resolver:
//
//	t := base.Clone()
//	t.Funcs(b.FuncMap(r.Context()))
//
//	{{ stylesheet_tag "site" }}
//	{{ javascript_tag "vendor/jquery" "app" }}
//	{{ image_tag "logo.png" "alt" "Home" "size" "120x40" }}
//	{{ asset_path "img" "hero.jpg" }}
//
// Attribute values are HTML-escaped here; the resolver itself never escapes.
package tags
