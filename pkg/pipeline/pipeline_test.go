package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skylinelab/watertower/pkg/cache"
	"github.com/skylinelab/watertower/pkg/errors"
	"github.com/skylinelab/watertower/pkg/skyline/reduce"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	return NewRunner(c, nil, nil)
}

func TestExecute_Water(t *testing.T) {
	r := newTestRunner(t)

	tests := []struct {
		heights []int
		want    int
	}{
		{nil, 0},
		{[]int{5}, 0},
		{[]int{5, 2, 2, 5}, 6},
		{[]int{1, 5, 2, 5, 2, 5, 10, 3, 5}, 8},
	}
	for _, tt := range tests {
		result, err := r.Execute(context.Background(), Options{Heights: tt.heights})
		if err != nil {
			t.Fatalf("Execute(%v) error = %v", tt.heights, err)
		}
		if result.Water != tt.want {
			t.Errorf("Execute(%v).Water = %d, want %d", tt.heights, result.Water, tt.want)
		}
		if result.Stats.Buildings != len(tt.heights) {
			t.Errorf("Stats.Buildings = %d, want %d", result.Stats.Buildings, len(tt.heights))
		}
	}
}

func TestExecute_Trace(t *testing.T) {
	r := newTestRunner(t)

	result, err := r.Execute(context.Background(), Options{Heights: []int{5, 2, 5}, Trace: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Steps) == 0 {
		t.Fatal("Execute(Trace).Steps is empty")
	}
	if result.Stats.StepCount != len(result.Steps) {
		t.Errorf("Stats.StepCount = %d, want %d", result.Stats.StepCount, len(result.Steps))
	}

	var traced int
	for _, st := range result.Steps {
		traced += st.Water
	}
	if traced != result.Water {
		t.Errorf("sum of step water = %d, want %d", traced, result.Water)
	}
}

func TestExecute_CacheHit(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Heights: []int{5, 2, 5, 2, 5}, Trace: true}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.Hit {
		t.Error("first run reported a cache hit")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.Hit {
		t.Error("second run missed the cache")
	}
	if second.Water != first.Water {
		t.Errorf("cached water = %d, want %d", second.Water, first.Water)
	}
	if len(second.Steps) != len(first.Steps) {
		t.Errorf("cached trace has %d steps, want %d", len(second.Steps), len(first.Steps))
	}
}

func TestExecute_Refresh(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Heights: []int{5, 2, 2, 5}}

	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	opts.Refresh = true
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.CacheInfo.Hit {
		t.Error("Refresh run served from cache")
	}
}

func TestExecute_TraceKeySeparateFromPlain(t *testing.T) {
	r := newTestRunner(t)
	heights := []int{5, 2, 5}

	if _, err := r.Execute(context.Background(), Options{Heights: heights}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// A traced request must not be served from the untraced entry.
	result, err := r.Execute(context.Background(), Options{Heights: heights, Trace: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.CacheInfo.Hit {
		t.Error("traced run hit the untraced cache entry")
	}
	if len(result.Steps) == 0 {
		t.Error("traced run has no steps")
	}
}

func TestExecute_Artifacts(t *testing.T) {
	r := newTestRunner(t)

	result, err := r.Execute(context.Background(), Options{
		Heights: []int{5, 2, 2, 5},
		Styles:  []string{StyleText, StyleSVG, StyleDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	text := string(result.Artifacts[StyleText])
	if !strings.Contains(text, "~") {
		t.Errorf("text artifact has no water:\n%s", text)
	}
	if !strings.HasPrefix(string(result.Artifacts[StyleSVG]), "<svg") {
		t.Error("svg artifact is not an SVG document")
	}
	if !strings.Contains(string(result.Artifacts[StyleDOT]), "digraph") {
		t.Error("dot artifact is not a DOT graph")
	}
}

func TestExecute_InvalidStyle(t *testing.T) {
	r := newTestRunner(t)

	_, err := r.Execute(context.Background(), Options{Heights: []int{1}, Styles: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("Execute() code = %q, want INVALID_STYLE", errors.GetCode(err))
	}
}

func TestExecute_NegativeHeight(t *testing.T) {
	r := newTestRunner(t)

	_, err := r.Execute(context.Background(), Options{Heights: []int{3, -1, 3}})
	if !errors.Is(err, errors.ErrCodeInvalidHeight) {
		t.Errorf("Execute() code = %q, want INVALID_HEIGHT", errors.GetCode(err))
	}
}

func TestSolve_MatchesReference(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	heights := []int{5, 4, 4, 3, 3, 2, 2, 1, 1, 5}

	want, err := reduce.Reference(heights)
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Solve(context.Background(), heights)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if got != want {
		t.Errorf("Solve() = %d, want %d", got, want)
	}
}

func TestValidateStyle(t *testing.T) {
	for _, s := range []string{StyleText, StyleSVG, StyleDOT} {
		if err := ValidateStyle(s); err != nil {
			t.Errorf("ValidateStyle(%q) = %v, want nil", s, err)
		}
	}
	if err := ValidateStyle("png"); err == nil {
		t.Error("ValidateStyle(png) = nil, want error")
	}
}

// recordingCache captures the ttl of the last Set call.
type recordingCache struct {
	cache.Cache
	lastTTL time.Duration
}

func (c *recordingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.lastTTL = ttl
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestExecute_RunnerTTL(t *testing.T) {
	rec := &recordingCache{Cache: cache.NewNullCache()}
	r := NewRunner(rec, nil, nil)
	r.TTL = 2 * time.Hour

	if _, err := r.Execute(context.Background(), Options{Heights: []int{5, 2, 5}}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if rec.lastTTL != 2*time.Hour {
		t.Errorf("Set ttl = %v, want 2h", rec.lastTTL)
	}
}

func TestExecute_OptionsTTLWinsOverRunner(t *testing.T) {
	rec := &recordingCache{Cache: cache.NewNullCache()}
	r := NewRunner(rec, nil, nil)
	r.TTL = 2 * time.Hour

	_, err := r.Execute(context.Background(), Options{Heights: []int{5, 2, 5}, TTL: time.Minute})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if rec.lastTTL != time.Minute {
		t.Errorf("Set ttl = %v, want 1m", rec.lastTTL)
	}
}

func TestExecute_DefaultTTL(t *testing.T) {
	rec := &recordingCache{Cache: cache.NewNullCache()}
	r := NewRunner(rec, nil, nil)

	if _, err := r.Execute(context.Background(), Options{Heights: []int{5, 2, 5}}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if rec.lastTTL != cache.DefaultTTL {
		t.Errorf("Set ttl = %v, want cache.DefaultTTL", rec.lastTTL)
	}
}
