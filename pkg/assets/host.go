package assets

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// placeholderRe matches "[]" or "[N]" in an asset host template.
var placeholderRe = regexp.MustCompile(`\[([0-9]+)?\]`)

// PlaceholderKind describes the placeholder found in an asset host template.
type PlaceholderKind int

const (
	// PlaceholderNone means the host is used as written.
	PlaceholderNone PlaceholderKind = iota

	// PlaceholderCategory ("[]") picks the host by asset category.
	PlaceholderCategory

	// PlaceholderRandom ("[N]") picks one of N hosts at random per URL.
	PlaceholderRandom
)

// HostSpec is a parsed asset host template.
type HostSpec struct {
	// Template is the host with any http:// or https:// prefix removed.
	Template string

	// Kind is the placeholder form found in Template.
	Kind PlaceholderKind

	// Shards is N for PlaceholderRandom and 0 otherwise.
	Shards int

	// ZeroShards is set when the placeholder was "[0]", which is handled
	// as PlaceholderCategory.
	ZeroShards bool

	// placeholder is the literal text substituted, "[]" or "[N]".
	placeholder string
}

// ParseHostSpec parses an asset host template. Only the first placeholder
// decides the form; every occurrence of that exact placeholder is replaced.
//
// "[0]" cannot name a non-empty range and is treated like "[]". A count too
// large for an int leaves the template untouched.
func ParseHostSpec(raw string) HostSpec {
	host := stripScheme(raw)
	spec := HostSpec{Template: host}

	m := placeholderRe.FindStringSubmatch(host)
	switch {
	case m == nil:
		return spec
	case m[1] == "":
		spec.Kind = PlaceholderCategory
		spec.placeholder = "[]"
	default:
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return spec
		}
		spec.placeholder = m[0]
		if n == 0 {
			spec.Kind = PlaceholderCategory
			spec.ZeroShards = true
			return spec
		}
		spec.Kind = PlaceholderRandom
		spec.Shards = n
	}
	return spec
}

// Host returns the concrete hostname for an asset of category c.
// intN must return a value in [0, n); nil uses math/rand/v2.
func (h HostSpec) Host(c Category, intN func(n int) int) string {
	switch h.Kind {
	case PlaceholderRandom:
		if intN == nil {
			intN = rand.Intn
		}
		num := intN(h.Shards) + 1
		return strings.ReplaceAll(h.Template, h.placeholder, strconv.Itoa(num))
	case PlaceholderCategory:
		return strings.ReplaceAll(h.Template, h.placeholder, strconv.Itoa(c.DefaultShard()))
	default:
		return h.Template
	}
}

// URL joins the chosen host and urlPath into an absolute URL.
func (h HostSpec) URL(urlPath string, c Category, secure bool, intN func(n int) int) string {
	return scheme(secure) + "://" + h.Host(c, intN) + urlPath
}

// ShardHost rewrites urlPath onto the asset host described by hostSpec.
// It must not be called with an empty hostSpec.
func ShardHost(urlPath string, c Category, hostSpec string, secure bool) string {
	return ParseHostSpec(hostSpec).URL(urlPath, c, secure, nil)
}

func scheme(secure bool) string {
	if secure {
		return "https"
	}
	return "http"
}

func stripScheme(s string) string {
	if rest, ok := strings.CutPrefix(s, "https://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(s, "http://"); ok {
		return rest
	}
	return s
}

func isFullURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
