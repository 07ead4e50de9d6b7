package assets

import "strings"

// Site is the configuration a reference is resolved against. It is read-only
// for the lifetime of a Resolver.
type Site struct {
	// DocumentRoot is the filesystem directory served at "/".
	DocumentRoot string

	// ThemeMode resolves subdirectory-relative references under ThemeRoot
	// instead of DocumentRoot.
	ThemeMode bool

	// ThemeRoot is the filesystem directory of the active theme.
	// Only used when ThemeMode is set.
	ThemeRoot string

	// Subdirs overrides the default subdirectory per category.
	// An override of "" is honored (assets at the root).
	Subdirs map[Category]string

	// AssetHost is the asset host template, e.g. "cdn[3].example.com".
	// Empty disables host rewriting.
	AssetHost string

	// Secure selects https for rewritten URLs. A value stored in the
	// request context with WithSecure takes precedence.
	Secure bool
}

// Subdir returns the effective subdirectory for a category.
//
// Themes keep their stylesheet next to the theme root, so in theme mode the
// stylesheet default is "" rather than "/css".
func (s Site) Subdir(c Category) string {
	if dir, ok := s.Subdirs[c]; ok {
		return dir
	}
	if c == Stylesheet && s.ThemeMode {
		return ""
	}
	return c.DefaultSubdir()
}

// documentRoot returns DocumentRoot with a single trailing slash removed.
func (s Site) documentRoot() string {
	return strings.TrimSuffix(s.DocumentRoot, "/")
}

func (s Site) clone() Site {
	c := s
	if s.Subdirs != nil {
		c.Subdirs = make(map[Category]string, len(s.Subdirs))
		for k, v := range s.Subdirs {
			c.Subdirs[k] = v
		}
	}
	return c
}
