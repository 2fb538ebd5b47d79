package personalization

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/yojanadost/yojana/internal/db"
	"github.com/yojanadost/yojana/internal/db/memory"
	"github.com/yojanadost/yojana/internal/domain/profile"
)

func TestBookmarks_EmptyWhenMissing(t *testing.T) {
	repo := New(newMockStore(), "yojana:", 0)

	ids, err := repo.Bookmarks(context.Background(), testSession)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", ids)
	}
}

func TestBookmarks_SaveAndLoad(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, "yojana:", 0)
	ctx := context.Background()

	if err := repo.SaveBookmarks(ctx, testSession, []string{"b", "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key := "yojana:bookmarks:" + string(testSession)
	if string(ms.data[key]) != `["b","a"]` {
		t.Errorf("unexpected stored value %s", ms.data[key])
	}

	ids, err := repo.Bookmarks(ctx, testSession)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, ids); diff != "" {
		t.Errorf("bookmarks mismatch (-want +got):\n%s", diff)
	}

	if err := repo.SaveBookmarks(ctx, testSession, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ms.data[key]; ok {
		t.Error("expected key deleted for empty list")
	}
}

func TestBookmarks_TTL(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, "p:", 48*time.Hour)

	if err := repo.SaveBookmarks(context.Background(), testSession, []string{"a"}); err != nil {
		t.Fatal(err)
	}
	if ms.setTTLHits != 1 {
		t.Errorf("expected SetWithTTL, got %d calls", ms.setTTLHits)
	}
	if ttl := ms.ttls["p:bookmarks:"+string(testSession)]; ttl != 48*time.Hour {
		t.Errorf("unexpected ttl %v", ttl)
	}
}

func TestBookmarks_StoreError(t *testing.T) {
	ms := newMockStore()
	ms.getFn = func(context.Context, string) ([]byte, error) {
		return nil, &db.Error{Op: db.OpGet, Err: errors.New("connection refused")}
	}
	repo := New(ms, "yojana:", 0)

	_, err := repo.Bookmarks(context.Background(), testSession)
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestBookmarks_CorruptValue(t *testing.T) {
	ms := newMockStore()
	ms.data["yojana:bookmarks:"+string(testSession)] = []byte("not json")
	repo := New(ms, "yojana:", 0)

	if _, err := repo.Bookmarks(context.Background(), testSession); err == nil {
		t.Error("expected decode error")
	}
}

func TestPreferences_DefaultsWhenMissing(t *testing.T) {
	repo := New(newMockStore(), "yojana:", 0)

	p, found, err := repo.Preferences(context.Background(), testSession)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected not found")
	}
	if p != profile.DefaultPreferences() {
		t.Errorf("expected defaults, got %+v", p)
	}
}

func TestPreferences_PartialDocumentKeepsDefaults(t *testing.T) {
	ms := newMockStore()
	ms.data["yojana:preferences:"+string(testSession)] = []byte(`{"language":"hi"}`)
	repo := New(ms, "yojana:", 0)

	p, found, err := repo.Preferences(context.Background(), testSession)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || p.Language != "hi" || !p.EmailNotifications || p.Timezone != "IST" {
		t.Errorf("unexpected preferences %+v (found %v)", p, found)
	}
}

func TestPreferences_SaveDelete_MemoryStore(t *testing.T) {
	store := memory.NewStore(time.Minute)
	t.Cleanup(store.Close)
	repo := New(store, "yojana:", 0)
	ctx := context.Background()

	want := profile.DefaultPreferences()
	want.Language = "mr"
	want.PushNotifications = true
	if err := repo.SavePreferences(ctx, testSession, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, found, err := repo.Preferences(ctx, testSession)
	if err != nil || !found {
		t.Fatalf("expected stored preferences, got found=%v err=%v", found, err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	if err := repo.DeletePreferences(ctx, testSession); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := repo.Preferences(ctx, testSession); found {
		t.Error("expected preferences deleted")
	}
}
