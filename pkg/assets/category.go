package assets

import "strings"

// Category is the kind of asset being resolved. It selects the default
// subdirectory and the default asset host shard.
type Category int

const (
	Stylesheet Category = iota
	Script
	Image
)

// Categories lists every category in shard order.
var Categories = []Category{Stylesheet, Script, Image}

// String returns the short name used in configuration files.
func (c Category) String() string {
	switch c {
	case Stylesheet:
		return "css"
	case Script:
		return "js"
	case Image:
		return "img"
	default:
		return "unknown"
	}
}

// DefaultSubdir returns the subdirectory, relative to the document root,
// where assets of this category live unless overridden.
func (c Category) DefaultSubdir() string {
	switch c {
	case Stylesheet:
		return "/css"
	case Script:
		return "/js"
	case Image:
		return "/images"
	default:
		return ""
	}
}

// DefaultShard returns the host index used for the "[]" placeholder.
func (c Category) DefaultShard() int {
	switch c {
	case Stylesheet:
		return 1
	case Script:
		return 2
	case Image:
		return 3
	default:
		return 1
	}
}

// Extension returns the file extension the tag builders append to bare
// names, or "" for categories that do not get one.
func (c Category) Extension() string {
	switch c {
	case Stylesheet:
		return ".css"
	case Script:
		return ".js"
	default:
		return ""
	}
}

// ParseCategory maps a configuration or command-line name to a Category.
// Both the short names ("css", "js", "img") and the long ones are accepted.
func ParseCategory(name string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "css", "stylesheet", "style":
		return Stylesheet, true
	case "js", "script", "javascript":
		return Script, true
	case "img", "image", "images":
		return Image, true
	default:
		return 0, false
	}
}
