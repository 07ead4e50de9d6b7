// Package errors provides coded, actionable errors for assethelper's
// configuration loader and CLI.
//
// The asset resolver never fails; a missing file simply loses its timestamp.
// Everything that can be wrong is wrong at startup: an unreadable config
// file, a theme without a theme root, an asset host that cannot name a
// shard. Those are reported through this package.
//
// # Error Codes
//
// Each error has a unique code (e.g., "E101") that maps to a short message,
// a detailed explanation and a category:
//   - config: the configuration file cannot be read or parsed
//   - validation: the configuration parsed but describes an unusable site
//   - cli: bad command-line usage
//
// # Usage
//
//	err := errors.New("E111").
//	    WithField("assetHost").
//	    WithSuggestion(`Use "cdn[].example.com" to pick the host by asset type`)
//
//	fmt.Println(err.Format())
//	// ERROR E111: Asset host names zero shards
//	//
//	//   field: assetHost
//	//
//	//   Hint: Use "cdn[].example.com" to pick the host by asset type
package errors
