// Package config loads the assethelper configuration file.
//
// The file is assethelper.json, assethelper.yaml or assethelper.yml, found in
// the working directory or any parent. It holds the settings an embedding
// application would otherwise set once at startup:
//
//	{
//	  "documentRoot": "public",
//	  "theme": {
//	    "enabled": true,
//	    "root": "public/wp-content/themes/blue"
//	  },
//	  "subdirs": {
//	    "img": "/img"
//	  },
//	  "assetHost": "static[].example.com",
//	  "secure": false,
//	  "stampCache": {
//	    "ttl": "5s"
//	  },
//	  "s3": {
//	    "bucket": "example-site",
//	    "prefix": "public/"
//	  }
//	}
//
// Relative paths are resolved against the directory holding the file.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	site, err := cfg.Site()
package config
