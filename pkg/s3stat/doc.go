// Package s3stat supplies asset modification times from an S3 bucket, for
// sites whose document root is synced to object storage rather than present
// on the web server's disk.
//
// Filesystem paths computed by the resolver are mapped to object keys by
// removing Root and prepending Prefix:
//
//	st := s3stat.New(client, s3stat.Options{
//	    Bucket: "my-site",
//	    Root:   "/var/www",
//	    Prefix: "public/",
//	})
//	// "/var/www/css/site.css" -> s3://my-site/public/css/site.css
//
//	r := assets.NewResolver(site, assets.WithStater(st))
//
// A Stater issues one HeadObject per lookup; wrap it in assets.StampCache, or
// take a Snapshot to answer every lookup from a single listing.
package s3stat
