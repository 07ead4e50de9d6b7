package tags

import (
	"context"
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/vango-dev/assethelper/pkg/assets"
)

// DefaultStylesheet is rendered when a themed site asks for a stylesheet
// tag without naming a file.
const DefaultStylesheet = "style.css"

// DefaultMedia is the media attribute used when none is given.
const DefaultMedia = "all"

var (
	sizeRe     = regexp.MustCompile(`([0-9]+)x([0-9]+)`)
	attrNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_:.-]*$`)
)

// Builder renders asset tags through a Resolver.
type Builder struct {
	resolver *assets.Resolver
}

// New creates a Builder.
func New(r *assets.Resolver) *Builder {
	return &Builder{resolver: r}
}

// StylesheetOptions configures Stylesheet.
type StylesheetOptions struct {
	// Files are stylesheet references; ".css" is appended when missing.
	// Empty names are skipped.
	Files []string

	// Media is the media attribute. Default: DefaultMedia.
	Media string
}

// Stylesheet renders one <link> line per file. With no files at all, a
// themed site gets DefaultStylesheet and any other site gets "". Files that
// are all empty names render nothing.
func (b *Builder) Stylesheet(ctx context.Context, opts StylesheetOptions) string {
	files := nonEmpty(opts.Files)
	if len(opts.Files) == 0 && b.resolver.Site().ThemeMode {
		files = []string{DefaultStylesheet}
	}
	media := opts.Media
	if media == "" {
		media = DefaultMedia
	}

	var sb strings.Builder
	for _, f := range files {
		href := b.resolver.Resolve(ctx, withExt(f, assets.Stylesheet), assets.Stylesheet)
		sb.WriteString(`<link rel="stylesheet" href="`)
		sb.WriteString(html.EscapeString(href))
		sb.WriteString(`" type="text/css" media="`)
		sb.WriteString(html.EscapeString(media))
		sb.WriteString("\" />\n")
	}
	return sb.String()
}

// Javascript renders one <script> line per file, appending ".js" when
// missing. It returns "" when no non-empty file is given.
func (b *Builder) Javascript(ctx context.Context, files ...string) string {
	var sb strings.Builder
	for _, f := range nonEmpty(files) {
		src := b.resolver.Resolve(ctx, withExt(f, assets.Script), assets.Script)
		sb.WriteString(`<script src="`)
		sb.WriteString(html.EscapeString(src))
		sb.WriteString("\" type=\"text/javascript\"></script>\n")
	}
	return sb.String()
}

// ImageOptions configures Image.
type ImageOptions struct {
	// Alt is the alternate text. The alt attribute is always rendered.
	Alt string

	// Size is "WIDTHxHEIGHT", e.g. "120x40". Anything without that shape
	// is ignored.
	Size string

	// Attrs are extra attributes, rendered in name order. Names that are
	// not plain attribute names are dropped.
	Attrs map[string]string
}

// Image renders an <img> tag, or "" when file is empty.
func (b *Builder) Image(ctx context.Context, file string, opts ImageOptions) string {
	if file == "" {
		return ""
	}
	src := b.resolver.Resolve(ctx, file, assets.Image)

	var sb strings.Builder
	sb.WriteString(`<img src="`)
	sb.WriteString(html.EscapeString(src))
	sb.WriteString(`"`)
	if m := sizeRe.FindStringSubmatch(opts.Size); m != nil {
		writeAttr(&sb, "width", m[1])
		writeAttr(&sb, "height", m[2])
	}
	writeAttr(&sb, "alt", opts.Alt)

	names := make([]string, 0, len(opts.Attrs))
	for name := range opts.Attrs {
		if attrNameRe.MatchString(name) && name != "alt" && name != "src" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		writeAttr(&sb, name, opts.Attrs[name])
	}
	sb.WriteString(" />")
	return sb.String()
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(html.EscapeString(value))
	sb.WriteByte('"')
}

// withExt appends the category extension unless ref already ends with it.
func withExt(ref string, c assets.Category) string {
	ext := c.Extension()
	if ext == "" || strings.HasSuffix(ref, ext) {
		return ref
	}
	return ref + ext
}

func nonEmpty(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
