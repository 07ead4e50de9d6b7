package assets

import "testing"

func TestParseHostSpec(t *testing.T) {
	tests := []struct {
		raw      string
		template string
		kind     PlaceholderKind
		shards   int
	}{
		{"static.example.com", "static.example.com", PlaceholderNone, 0},
		{"http://static.example.com", "static.example.com", PlaceholderNone, 0},
		{"https://cdn[].example.com", "cdn[].example.com", PlaceholderCategory, 0},
		{"cdn[4].example.com", "cdn[4].example.com", PlaceholderRandom, 4},
		{"cdn[0].example.com", "cdn[0].example.com", PlaceholderCategory, 0},
		{"cdn[x].example.com", "cdn[x].example.com", PlaceholderNone, 0},
		{"cdn[99999999999999999999].example.com", "cdn[99999999999999999999].example.com", PlaceholderNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			spec := ParseHostSpec(tt.raw)
			if spec.Template != tt.template {
				t.Errorf("Template = %q, want %q", spec.Template, tt.template)
			}
			if spec.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", spec.Kind, tt.kind)
			}
			if spec.Shards != tt.shards {
				t.Errorf("Shards = %d, want %d", spec.Shards, tt.shards)
			}
		})
	}
}

func TestParseHostSpecZeroShards(t *testing.T) {
	if !ParseHostSpec("cdn[0].example.com").ZeroShards {
		t.Error("ZeroShards = false for [0]")
	}
	if ParseHostSpec("cdn[].example.com").ZeroShards {
		t.Error("ZeroShards = true for []")
	}
}

func TestHostSpecHost(t *testing.T) {
	first := func(int) int { return 0 }

	tests := []struct {
		name string
		raw  string
		cat  Category
		want string
	}{
		{"plain", "static.example.com", Image, "static.example.com"},
		{"category css", "s[].example.com", Stylesheet, "s1.example.com"},
		{"category js", "s[].example.com", Script, "s2.example.com"},
		{"category img", "s[].example.com", Image, "s3.example.com"},
		{"random", "s[5].example.com", Image, "s1.example.com"},
		{"every occurrence replaced", "s[2].example[2].com", Image, "s1.example1.com"},
		{"zero behaves like category", "s[0].example.com", Script, "s2.example.com"},
		{"unparseable count untouched", "s[99999999999999999999].x", Script, "s[99999999999999999999].x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseHostSpec(tt.raw).Host(tt.cat, first); got != tt.want {
				t.Errorf("Host() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShardHost(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		cat    Category
		spec   string
		secure bool
		want   string
	}{
		{"http", "/css/a.css?1", Stylesheet, "assets.example.com", false, "http://assets.example.com/css/a.css?1"},
		{"https", "/css/a.css?1", Stylesheet, "assets.example.com", true, "https://assets.example.com/css/a.css?1"},
		{"scheme stripped", "/js/a.js", Script, "https://a[].example.com", false, "http://a2.example.com/js/a.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShardHost(tt.path, tt.cat, tt.spec, tt.secure); got != tt.want {
				t.Errorf("ShardHost() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShardHostRandomRange(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		u := ShardHost("/a.png", Image, "c[2].test", false)
		switch u {
		case "http://c1.test/a.png", "http://c2.test/a.png":
			seen[u] = true
		default:
			t.Fatalf("ShardHost() = %q, outside c1..c2", u)
		}
	}
	if len(seen) != 2 {
		t.Errorf("only saw %v in 500 draws", seen)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		cat    Category
		name   string
		subdir string
		shard  int
	}{
		{Stylesheet, "css", "/css", 1},
		{Script, "js", "/js", 2},
		{Image, "img", "/images", 3},
	}

	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.cat.DefaultSubdir(); got != tt.subdir {
			t.Errorf("%s DefaultSubdir() = %q, want %q", tt.name, got, tt.subdir)
		}
		if got := tt.cat.DefaultShard(); got != tt.shard {
			t.Errorf("%s DefaultShard() = %d, want %d", tt.name, got, tt.shard)
		}
		if c, ok := ParseCategory(tt.name); !ok || c != tt.cat {
			t.Errorf("ParseCategory(%q) = %v, %v", tt.name, c, ok)
		}
	}

	for name, want := range map[string]Category{"Stylesheet": Stylesheet, "javascript": Script, " image ": Image} {
		if c, ok := ParseCategory(name); !ok || c != want {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v", name, c, ok, want)
		}
	}
	if _, ok := ParseCategory("font"); ok {
		t.Error("ParseCategory(font) should fail")
	}
}
