package yojana

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testDataset = `[
  {"id": "pm-kisan", "title": "PM Kisan Samman Nidhi", "description": "Income support for farmers",
   "category": "Agriculture", "state": "central", "type": "Central", "keywords": ["farmer"], "dateAdded": "2024-01-15"},
  {"id": "ayushman", "title": "Ayushman Bharat", "description": "Health cover for families",
   "category": "Health", "state": "central", "type": "Central", "keywords": ["insurance"], "dateAdded": "2023-09-01"},
  {"id": "kalia", "title": "KALIA", "description": "Livelihood support for farmers",
   "category": "Agriculture", "state": "odisha", "type": "State", "keywords": ["farmer", "odisha"]}
]`

func writeDataset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schemes.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithDataset(writeDataset(t, testDataset))}, opts...)
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_NoDataset(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error without dataset source")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "etcd"}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_ValkeyWithoutAddress(t *testing.T) {
	_, err := New(context.Background(), WithDataset("x.json"), WithValkey("", ""))
	if err == nil || !strings.Contains(err.Error(), "address required") {
		t.Fatalf("err = %v, want address required", err)
	}
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(context.Background(), WithDataset(filepath.Join(t.TempDir(), "missing.json")))
	if !errors.Is(err, ErrDatasetUnavailable) {
		t.Fatalf("err = %v, want ErrDatasetUnavailable", err)
	}
}

func TestNew_EmptyDataset(t *testing.T) {
	c, err := New(context.Background(), WithDataset(writeDataset(t, "[]")))
	if err != nil {
		t.Fatalf("empty dataset must not fail New: %v", err)
	}
	defer c.Close()

	page, err := c.Schemes().Browse().Do(context.Background())
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if page.ResultCount != 0 || len(page.Items) != 0 {
		t.Errorf("page = %+v, want empty", page)
	}
}

func TestClientOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	logger := slog.Default()
	r := &stubResponder{}

	cfg := &clientConfig{}
	for _, o := range []Option{
		WithDataset("https://example.org/schemes.json"),
		WithLoadTimeout(3 * time.Second),
		WithRedis("localhost:6379", "secret"),
		WithStandalone(),
		WithKeyPrefix("test:"),
		WithSessionTTL(time.Hour),
		WithPageSize(24),
		WithMaxPageSize(48),
		WithResponder(r),
		WithChatEndpoint("http://bot.local/chat"),
		WithLogger(logger),
		WithPrometheus(reg),
	} {
		o.apply(cfg)
	}

	if cfg.source != "https://example.org/schemes.json" || cfg.loadTimeout != 3*time.Second {
		t.Errorf("dataset = %q %v", cfg.source, cfg.loadTimeout)
	}
	if cfg.driver != "redis" || cfg.addrs[0] != "localhost:6379" || cfg.password != "secret" || !cfg.standalone {
		t.Errorf("storage = %s %v %q", cfg.driver, cfg.addrs, cfg.password)
	}
	if cfg.keyPrefix != "test:" || cfg.sessionTTL != time.Hour {
		t.Errorf("sessions = %q %v", cfg.keyPrefix, cfg.sessionTTL)
	}
	if cfg.pageSize != 24 || cfg.maxPageSize != 48 {
		t.Errorf("paging = %d/%d", cfg.pageSize, cfg.maxPageSize)
	}
	if cfg.responder != r || cfg.endpoint != "http://bot.local/chat" {
		t.Error("chat options not applied")
	}
	if cfg.logger != logger || cfg.metricsReg != reg {
		t.Error("observability options not applied")
	}

	WithValkey("valkey:6379", "").apply(cfg)
	if cfg.driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.driver)
	}
}

func TestClient_EndToEnd(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, WithPageSize(2))

	page, err := c.Schemes().Search("FARMER").Sort(SortRecent).Do(ctx)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if page.ResultCount != 2 || page.PageCount != 1 {
		t.Fatalf("page = %+v", page)
	}
	if page.Items[0].ID != "pm-kisan" || page.Items[1].ID != "kalia" {
		t.Errorf("order = %s, %s; want dated first", page.Items[0].ID, page.Items[1].ID)
	}

	page, err = c.Schemes().Browse().Page(9).Do(ctx)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if page.Page != 2 || page.PageCount != 2 || !page.HasPrev() || page.HasNext() {
		t.Errorf("clamped page = %d of %d", page.Page, page.PageCount)
	}

	odisha, err := c.Schemes().Browse().State("odisha").Do(ctx)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if odisha.ResultCount != 1 || odisha.Items[0].Type != TypeState {
		t.Errorf("odisha = %+v", odisha.Items)
	}

	if _, err := c.Schemes().Get(ctx, "nope"); !errors.Is(err, ErrSchemeNotFound) {
		t.Errorf("Get err = %v", err)
	}

	stats, err := c.Catalog().Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Central != 2 || stats.State != 1 {
		t.Errorf("stats = %+v", stats)
	}

	all, err := c.All()
	if err != nil || len(all) != 3 {
		t.Errorf("All = %d, %v", len(all), err)
	}

	if h := c.Health(ctx); !h.Healthy() {
		t.Errorf("health = %+v", h)
	}
	if err := c.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestClient_Sessions(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	sessions := c.Sessions()
	session := sessions.New()

	on, err := sessions.ToggleBookmark(ctx, session, "kalia")
	if err != nil || !on {
		t.Fatalf("toggle = %v, %v", on, err)
	}
	if _, err := sessions.ToggleBookmark(ctx, session, "missing"); !errors.Is(err, ErrSchemeNotFound) {
		t.Errorf("toggle missing err = %v", err)
	}

	marked, err := sessions.Bookmarks(ctx, session)
	if err != nil || len(marked) != 1 || marked[0].ID != "kalia" {
		t.Fatalf("bookmarks = %+v, %v", marked, err)
	}
	if ok, _ := sessions.IsBookmarked(ctx, session, "kalia"); !ok {
		t.Error("IsBookmarked = false")
	}
	if err := sessions.ClearBookmarks(ctx, session); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if marked, _ := sessions.Bookmarks(ctx, session); len(marked) != 0 {
		t.Errorf("bookmarks after clear = %+v", marked)
	}

	p := DefaultPreferences()
	p.Language = "hi"
	if _, err := sessions.SavePreferences(ctx, session, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := sessions.Preferences(ctx, session)
	if err != nil || got.Language != "hi" {
		t.Errorf("preferences = %+v, %v", got, err)
	}
	reset, err := sessions.ResetPreferences(ctx, session)
	if err != nil || reset != DefaultPreferences() {
		t.Errorf("reset = %+v, %v", reset, err)
	}
}

type stubResponder struct {
	calls int
}

func (s *stubResponder) Reply(context.Context, string) (string, error) {
	s.calls++
	return "Try the PM Kisan portal.", nil
}

func TestClient_Chat(t *testing.T) {
	r := &stubResponder{}
	c := newTestClient(t, WithResponder(r))
	ctx := context.Background()

	reply := c.Chat().Ask(ctx, "farmer")
	if reply.Rule != "category" || len(reply.Schemes) == 0 {
		t.Errorf("farmer reply = %+v", reply)
	}

	reply = c.Chat().Ask(ctx, "what is the weather like")
	if reply.Rule != "remote" || reply.Text != "Try the PM Kisan portal." {
		t.Errorf("remote reply = %+v", reply)
	}
	if r.calls != 1 {
		t.Errorf("responder calls = %d, want 1", r.calls)
	}
}

func TestClient_Reload(t *testing.T) {
	path := writeDataset(t, testDataset)
	c, err := New(context.Background(), WithDataset(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}
	// The previous snapshot keeps serving.
	stats, err := c.Catalog().Stats(context.Background())
	if err != nil || stats.Total != 3 {
		t.Errorf("stats after failed reload = %+v, %v", stats, err)
	}
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newTestClient(t, WithPrometheus(reg))
	ctx := context.Background()

	_, _ = c.Schemes().Get(ctx, "pm-kisan")
	_, _ = c.Schemes().Get(ctx, "nope")
	_, _ = c.Schemes().Query(ctx, Query{Sort: "bogus"})

	ops := c.obs.metrics.operations
	if got := testutil.ToFloat64(ops.WithLabelValues("schemes.get", statusOK)); got != 1 {
		t.Errorf("get ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("schemes.get", statusNotFound)); got != 1 {
		t.Errorf("get not_found = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("schemes.query", statusInvalid)); got != 1 {
		t.Errorf("query invalid = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("dataset.reload", statusOK)); got != 1 {
		t.Errorf("reload ok = %v, want 1", got)
	}
}

func TestClient_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	newTestClient(t, WithPrometheus(reg))
	newTestClient(t, WithPrometheus(reg))
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), ErrInvalidQuery)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, statusOK},
		{ErrSchemeNotFound, statusNotFound},
		{ErrInvalidSession, statusInvalid},
		{ErrInvalidPreferences, statusInvalid},
		{ErrDatasetUnavailable, statusError},
		{errors.New("boom"), statusError},
	}
	for _, tt := range tests {
		if got := status(tt.err); got != tt.want {
			t.Errorf("status(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
