package tags

import (
	"context"
	"fmt"
	"html/template"

	"github.com/vango-dev/assethelper/pkg/assets"
)

// FuncMap returns template functions bound to ctx:
//
//	stylesheet_tag FILE...               <link> tags, media "all"
//	stylesheet_media_tag MEDIA FILE...   <link> tags with a media attribute
//	javascript_tag FILE...               <script> tags
//	image_tag FILE [NAME VALUE]...       <img> tag; "alt" and "size" are recognized
//	asset_path CATEGORY REF              bare URL
func (b *Builder) FuncMap(ctx context.Context) template.FuncMap {
	return template.FuncMap{
		"stylesheet_tag": func(files ...string) template.HTML {
			return template.HTML(b.Stylesheet(ctx, StylesheetOptions{Files: files}))
		},
		"stylesheet_media_tag": func(media string, files ...string) template.HTML {
			return template.HTML(b.Stylesheet(ctx, StylesheetOptions{Files: files, Media: media}))
		},
		"javascript_tag": func(files ...string) template.HTML {
			return template.HTML(b.Javascript(ctx, files...))
		},
		"image_tag": func(file string, pairs ...string) (template.HTML, error) {
			opts, err := imageOptions(pairs)
			if err != nil {
				return "", err
			}
			return template.HTML(b.Image(ctx, file, opts)), nil
		},
		"asset_path": func(category, ref string) (string, error) {
			c, ok := assets.ParseCategory(category)
			if !ok {
				return "", fmt.Errorf("asset_path: unknown category %q", category)
			}
			return b.resolver.Resolve(ctx, ref, c), nil
		},
	}
}

// imageOptions turns name/value pairs into ImageOptions.
func imageOptions(pairs []string) (ImageOptions, error) {
	if len(pairs)%2 != 0 {
		return ImageOptions{}, fmt.Errorf("image_tag: attributes must be name/value pairs, got %d values", len(pairs))
	}
	var opts ImageOptions
	for i := 0; i < len(pairs); i += 2 {
		name, value := pairs[i], pairs[i+1]
		switch name {
		case "alt":
			opts.Alt = value
		case "size":
			opts.Size = value
		default:
			if opts.Attrs == nil {
				opts.Attrs = make(map[string]string)
			}
			opts.Attrs[name] = value
		}
	}
	return opts, nil
}
