package assets

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

const testMtime = 1000000

func writeAsset(t *testing.T, root, rel string, mtime int64) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile %s: %v", rel, err)
	}
	ts := time.Unix(mtime, 0)
	if err := os.Chtimes(path, ts, ts); err != nil {
		t.Fatalf("Chtimes %s: %v", rel, err)
	}
	return path
}

func TestResolveFullURLUnchanged(t *testing.T) {
	root := t.TempDir()
	sites := []Site{
		{DocumentRoot: root},
		{DocumentRoot: root, ThemeMode: true, ThemeRoot: root + "/theme"},
		{DocumentRoot: root, AssetHost: "cdn[3].example.com", Secure: true},
	}
	refs := []string{
		"http://example.com/a.css",
		"https://example.com/b.js?v=1",
		"https://cdn.example.com/images/logo.png",
	}

	for _, site := range sites {
		for _, c := range Categories {
			for _, ref := range refs {
				if got := Resolve(ref, c, site); got != ref {
					t.Errorf("Resolve(%q, %v) = %q, want unchanged", ref, c, got)
				}
			}
		}
	}
}

func TestResolvePaths(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "images/logo.png", testMtime)
	writeAsset(t, root, "js/app.js", testMtime+1)
	writeAsset(t, root, "css/site.css", testMtime+2)
	writeAsset(t, root, "static/x.png", testMtime+3)
	writeAsset(t, root, "theme/style.css", testMtime+4)
	writeAsset(t, root, "theme/js/theme.js", testMtime+5)
	writeAsset(t, root, "img/o.png", testMtime+6)
	writeAsset(t, root, "print.css", testMtime+7)

	tests := []struct {
		name string
		site Site
		ref  string
		cat  Category
		want string
	}{
		{"image default subdir", Site{DocumentRoot: root}, "logo.png", Image, "/images/logo.png?1000000"},
		{"script default subdir", Site{DocumentRoot: root}, "app.js", Script, "/js/app.js?1000001"},
		{"stylesheet default subdir", Site{DocumentRoot: root}, "site.css", Stylesheet, "/css/site.css?1000002"},
		{"trailing slash on document root", Site{DocumentRoot: root + "/"}, "logo.png", Image, "/images/logo.png?1000000"},
		{"root relative", Site{DocumentRoot: root}, "/static/x.png", Image, "/static/x.png?1000003"},
		{"root relative missing", Site{DocumentRoot: root}, "/assets/logo.png", Image, "/assets/logo.png"},
		{"relative missing", Site{DocumentRoot: root}, "nope.png", Image, "/images/nope.png"},
		{"directory gets no token", Site{DocumentRoot: root}, "/images", Image, "/images"},
		{
			"theme stylesheet at theme root",
			Site{DocumentRoot: root, ThemeMode: true, ThemeRoot: root + "/theme"},
			"style.css", Stylesheet, "/theme/style.css?1000004",
		},
		{
			"theme script under js",
			Site{DocumentRoot: root, ThemeMode: true, ThemeRoot: root + "/theme"},
			"theme.js", Script, "/theme/js/theme.js?1000005",
		},
		{
			"theme root relative ignores theme",
			Site{DocumentRoot: root, ThemeMode: true, ThemeRoot: root + "/theme"},
			"/images/logo.png", Image, "/images/logo.png?1000000",
		},
		{
			"theme outside document root keeps full path",
			Site{DocumentRoot: "/srv/other", ThemeMode: true, ThemeRoot: root + "/theme"},
			"style.css", Stylesheet, root + "/theme/style.css?1000004",
		},
		{
			"override subdir",
			Site{DocumentRoot: root, Subdirs: map[Category]string{Image: "/img"}},
			"o.png", Image, "/img/o.png?1000006",
		},
		{
			"empty override wins over default",
			Site{DocumentRoot: root, Subdirs: map[Category]string{Stylesheet: ""}},
			"print.css", Stylesheet, "/print.css?1000007",
		},
		{
			"override wins over theme stylesheet rule",
			Site{DocumentRoot: root, ThemeMode: true, ThemeRoot: root + "/theme", Subdirs: map[Category]string{Stylesheet: "/css"}},
			"style.css", Stylesheet, "/theme/css/style.css",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.ref, tt.cat, tt.site)
			if got != tt.want {
				t.Errorf("Resolve(%q, %v) = %q, want %q", tt.ref, tt.cat, got, tt.want)
			}
		})
	}
}

func TestResolveThemeStylesheetSubdirIsEmpty(t *testing.T) {
	site := Site{DocumentRoot: "/var/www", ThemeMode: true, ThemeRoot: "/var/www/themes/t"}
	if got := site.Subdir(Stylesheet); got != "" {
		t.Errorf("Subdir(Stylesheet) in theme mode = %q, want empty", got)
	}
	if got := site.Subdir(Script); got != "/js" {
		t.Errorf("Subdir(Script) in theme mode = %q, want /js", got)
	}

	site.ThemeMode = false
	if got := site.Subdir(Stylesheet); got != "/css" {
		t.Errorf("Subdir(Stylesheet) = %q, want /css", got)
	}
}

func TestResolveUsesComputedFilesystemPath(t *testing.T) {
	var seen []string
	st := StaterFunc(func(_ context.Context, path string) (time.Time, bool) {
		seen = append(seen, path)
		return time.Unix(42, 0), true
	})

	r := NewResolver(Site{DocumentRoot: "/var/www/"}, WithStater(st))
	if got := r.Path("logo.png", Image); got != "/images/logo.png?42" {
		t.Errorf("Path() = %q, want /images/logo.png?42", got)
	}
	if got := r.Path("/a/b.js", Script); got != "/a/b.js?42" {
		t.Errorf("Path() = %q, want /a/b.js?42", got)
	}

	want := []string{"/var/www/images/logo.png", "/var/www/a/b.js"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Errorf("stat paths = %v, want %v", seen, want)
	}
}

func TestResolveCategoryHost(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "css/a.css", testMtime)

	r := NewResolver(Site{DocumentRoot: root, AssetHost: "cdn[].example.com"})
	for i := 0; i < 50; i++ {
		got := r.Path("a.css", Stylesheet)
		if got != "http://cdn1.example.com/css/a.css?1000000" {
			t.Fatalf("Path() = %q, want cdn1 host", got)
		}
	}
	if got := r.Path("a.js", Script); got != "http://cdn2.example.com/js/a.js" {
		t.Errorf("Path(script) = %q, want cdn2 host", got)
	}
	if got := r.Path("a.png", Image); got != "http://cdn3.example.com/images/a.png" {
		t.Errorf("Path(image) = %q, want cdn3 host", got)
	}
}

func TestResolveSecure(t *testing.T) {
	site := Site{DocumentRoot: "/nonexistent", AssetHost: "https://static.example.com"}

	r := NewResolver(site)
	if got := r.Path("/a.css", Stylesheet); got != "http://static.example.com/a.css" {
		t.Errorf("insecure Path() = %q", got)
	}

	ctx := WithSecure(context.Background(), true)
	if got := r.Resolve(ctx, "/a.css", Stylesheet); got != "https://static.example.com/a.css" {
		t.Errorf("secure context Resolve() = %q", got)
	}

	site.Secure = true
	r = NewResolver(site)
	if got := r.Path("/a.css", Stylesheet); got != "https://static.example.com/a.css" {
		t.Errorf("secure site Path() = %q", got)
	}
	ctx = WithSecure(context.Background(), false)
	if got := r.Resolve(ctx, "/a.css", Stylesheet); got != "http://static.example.com/a.css" {
		t.Errorf("context should override site, got %q", got)
	}
}

func TestResolveRandomHostDeterministic(t *testing.T) {
	var gotN int
	r := NewResolver(
		Site{DocumentRoot: "/nonexistent", AssetHost: "cdn[3].example.com"},
		WithIntN(func(n int) int { gotN = n; return n - 1 }),
	)

	if got := r.Path("/x.png", Image); got != "http://cdn3.example.com/x.png" {
		t.Errorf("Path() = %q, want cdn3", got)
	}
	if gotN != 3 {
		t.Errorf("intN called with %d, want 3", gotN)
	}
}

func TestResolveRandomHostDistribution(t *testing.T) {
	r := NewResolver(Site{DocumentRoot: "/nonexistent", AssetHost: "cdn[3].example.com"})

	const trials = 3000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		u := r.Path("/x.png", Image)
		host := strings.TrimSuffix(strings.TrimPrefix(u, "http://"), "/x.png")
		counts[host]++
	}

	if len(counts) != 3 {
		t.Fatalf("hosts = %v, want exactly cdn1..cdn3", counts)
	}
	for _, h := range []string{"cdn1.example.com", "cdn2.example.com", "cdn3.example.com"} {
		if c := counts[h]; c < 800 || c > 1200 {
			t.Errorf("host %s drawn %d/%d times, want about 1/3", h, c, trials)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "js/app.js", testMtime)

	r := NewResolver(Site{DocumentRoot: root, AssetHost: "s[].example.com"})
	first := r.Path("app.js", Script)
	for i := 0; i < 10; i++ {
		if got := r.Path("app.js", Script); got != first {
			t.Fatalf("Path() = %q, want %q", got, first)
		}
	}
}

func TestResolveSeesMtimeChanges(t *testing.T) {
	root := t.TempDir()
	path := writeAsset(t, root, "js/app.js", testMtime)

	r := NewResolver(Site{DocumentRoot: root})
	if got := r.Path("app.js", Script); got != "/js/app.js?1000000" {
		t.Fatalf("Path() = %q", got)
	}

	ts := time.Unix(2000000, 0)
	if err := os.Chtimes(path, ts, ts); err != nil {
		t.Fatal(err)
	}
	if got := r.Path("app.js", Script); got != "/js/app.js?2000000" {
		t.Errorf("Path() after touch = %q, want new token", got)
	}
}

func TestResolverCopiesSite(t *testing.T) {
	subdirs := map[Category]string{Image: "/img"}
	r := NewResolver(Site{DocumentRoot: "/nonexistent", Subdirs: subdirs})
	subdirs[Image] = "/changed"

	if got := r.Path("a.png", Image); got != "/img/a.png" {
		t.Errorf("Path() = %q, want /img/a.png", got)
	}
	if got := r.Site().Subdirs[Image]; got != "/img" {
		t.Errorf("Site().Subdirs[Image] = %q, want /img", got)
	}
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveResolve(c Category, outcome Outcome, sharded bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := c.String() + ":" + string(outcome)
	if sharded {
		s += ":sharded"
	}
	o.calls = append(o.calls, s)
}

func TestResolverObserver(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "css/a.css", testMtime)

	obs := &recordingObserver{}
	r := NewResolver(Site{DocumentRoot: root}, WithObserver(obs))
	r.Path("a.css", Stylesheet)
	r.Path("b.js", Script)
	r.Path("https://x.test/c.png", Image)

	sharded := NewResolver(Site{DocumentRoot: root, AssetHost: "h[]"}, WithObserver(obs))
	sharded.Path("a.css", Stylesheet)

	want := "css:stamped,js:missing,img:external,css:stamped:sharded"
	if got := strings.Join(obs.calls, ","); got != want {
		t.Errorf("observed %q, want %q", got, want)
	}
}

func TestTimestamp(t *testing.T) {
	root := t.TempDir()
	path := writeAsset(t, root, "a.txt", 1234567890)

	if got := Timestamp(path); got != "?1234567890" {
		t.Errorf("Timestamp(existing) = %q, want ?1234567890", got)
	}
	if got := Timestamp(filepath.Join(root, "missing")); got != "" {
		t.Errorf("Timestamp(missing) = %q, want empty", got)
	}
	if got := Timestamp(root); got != "" {
		t.Errorf("Timestamp(dir) = %q, want empty", got)
	}
}
