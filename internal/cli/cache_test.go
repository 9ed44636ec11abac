package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stepsort/pkg/cache"
	"github.com/matzehuels/stepsort/pkg/render"
	"github.com/matzehuels/stepsort/pkg/sorter"
)

func TestRenderCachedHit(t *testing.T) {
	ctx := context.Background()
	rc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dot := render.HeapDOT([]uint32{2, 1}, 2, sorter.NoPair, sorter.Comparing)
	if err := rc.Set(ctx, cache.RenderKey(dot, render.FormatSVG), []byte("<svg>cached</svg>"), 0); err != nil {
		t.Fatal(err)
	}

	data, hit, err := renderCached(ctx, rc, dot, render.FormatSVG)
	if err != nil {
		t.Fatalf("renderCached: %v", err)
	}
	if !hit || string(data) != "<svg>cached</svg>" {
		t.Errorf("renderCached = %q, hit %v; want the cached entry", data, hit)
	}
}

func TestRenderCachedSkipsDOT(t *testing.T) {
	dot := render.HeapDOT([]uint32{2, 1}, 2, sorter.NoPair, sorter.Comparing)

	data, hit, err := renderCached(context.Background(), cache.NewNullCache(), dot, render.FormatDOT)
	if err != nil {
		t.Fatalf("renderCached: %v", err)
	}
	if hit || string(data) != dot {
		t.Error("DOT output should bypass the cache")
	}
}

func TestNewRenderCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)

	if _, ok := c.newRenderCache(true).(cache.NullCache); !ok {
		t.Error("--no-cache should use a NullCache")
	}
	fc, ok := c.newRenderCache(false).(*cache.FileCache)
	if !ok {
		t.Fatal("expected a FileCache")
	}
	if filepath.Base(fc.Dir()) != appName {
		t.Errorf("cache dir = %q", fc.Dir())
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	out, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if !strings.Contains(out, filepath.Join(xdg, appName)) {
		t.Errorf("cache path output = %q", out)
	}

	out, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "empty") {
		t.Errorf("clearing an empty cache = %q", out)
	}

	fc, err := cache.NewFileCache(filepath.Join(xdg, appName))
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 1") {
		t.Errorf("cache clear output = %q", out)
	}
}
