package autosave_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"packsmith/internal/autosave"
	"packsmith/internal/project"
	"packsmith/internal/savefile"
	"packsmith/internal/testsupport"
)

type memStore struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	failSav error
}

func (m *memStore) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSav != nil {
		return m.failSav
	}
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

func (m *memStore) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, autosave.ErrNoSave
	}
	return append([]byte(nil), m.data...), nil
}

func (m *memStore) Clear(ctx context.Context) error { m.data = nil; return nil }
func (m *memStore) Close() error                    { return nil }

func newScheduler(store autosave.Store) (*autosave.Scheduler, *project.Engine) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := project.NewEngine(logger)
	codec := savefile.NewCodec(nil)
	return autosave.NewScheduler(engine, codec, store, savefile.EnvDesktop, logger), engine
}

func dirtyEngine(engine *project.Engine) {
	engine.Dispatch(project.AddEntry{Entry: project.Entry{
		ID: "spring1", Kind: project.KindReplace, Category: project.CategoryMusic, Files: []string{"a.ogg"},
	}})
}

func TestSaveNowSkipsCleanProject(t *testing.T) {
	store := &memStore{}
	scheduler, engine := newScheduler(store)

	if scheduler.SaveNow(context.Background()) {
		t.Fatal("clean project must not be written")
	}
	if store.saves != 0 {
		t.Fatalf("unexpected writes: %d", store.saves)
	}

	dirtyEngine(engine)
	if !scheduler.SaveNow(context.Background()) {
		t.Fatal("dirty project must be written")
	}
	if engine.Snapshot().Dirty {
		t.Fatal("successful save must clear dirty")
	}

	// Second tick with no further edits writes nothing.
	if scheduler.SaveNow(context.Background()) {
		t.Fatal("second tick after save must be a no-op")
	}
	if store.saves != 1 {
		t.Fatalf("expected exactly one write, got %d", store.saves)
	}
}

func TestFailedWriteKeepsDirtyAndRetries(t *testing.T) {
	store := &memStore{failSav: errors.New("disk full")}
	scheduler, engine := newScheduler(store)
	dirtyEngine(engine)

	if scheduler.SaveNow(context.Background()) {
		t.Fatal("failed write must not report success")
	}
	if !engine.Snapshot().Dirty {
		t.Fatal("failed write must leave the project dirty")
	}

	store.failSav = nil
	if !scheduler.SaveNow(context.Background()) {
		t.Fatal("retry after failure must succeed")
	}
	if store.saves != 1 {
		t.Fatalf("expected one successful write, got %d", store.saves)
	}
}

func TestRestoreRequiresEntries(t *testing.T) {
	store := &memStore{}
	scheduler, engine := newScheduler(store)

	if _, ok := scheduler.Restore(context.Background()); ok {
		t.Fatal("empty store must restore nothing")
	}

	// A saved document with zero entries is not worth restoring.
	codec := savefile.NewCodec(nil)
	empty, err := codec.Encode(project.DefaultConfig(), nil, savefile.EnvDesktop, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(context.Background(), empty); err != nil {
		t.Fatal(err)
	}
	if _, ok := scheduler.Restore(context.Background()); ok {
		t.Fatal("entry-less document must restore nothing")
	}

	dirtyEngine(engine)
	if !scheduler.SaveNow(context.Background()) {
		t.Fatal("save failed")
	}
	engine.Dispatch(project.Reset{})

	snapshot, ok := scheduler.Restore(context.Background())
	if !ok {
		t.Fatal("expected restore")
	}
	if snapshot.Origin != savefile.EnvDesktop {
		t.Fatalf("origin %q, want desktop", snapshot.Origin)
	}
	state := engine.Snapshot()
	if len(state.Entries) != 1 || state.Entries[0].ID != "spring1" {
		t.Fatalf("engine not loaded: %#v", state.Entries)
	}
	if state.Dirty {
		t.Fatal("restored project starts clean")
	}
}

func TestRestoreIgnoresCorruptDocument(t *testing.T) {
	store := &memStore{}
	if err := store.Save(context.Background(), []byte("not json at all")); err != nil {
		t.Fatal(err)
	}
	scheduler, _ := newScheduler(store)
	if _, ok := scheduler.Restore(context.Background()); ok {
		t.Fatal("corrupt document must restore nothing")
	}
}

func TestStartSavesOnTick(t *testing.T) {
	store := &memStore{}
	scheduler, engine := newScheduler(store)
	dirtyEngine(engine)

	scheduler.SetInterval(10 * time.Millisecond)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		store.mu.Lock()
		saves := store.saves
		store.mu.Unlock()
		if saves >= 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("ticker never wrote the dirty project")
}

func TestIntervalPerEnvironment(t *testing.T) {
	if autosave.IntervalFor(savefile.EnvDesktop) != autosave.DesktopInterval {
		t.Fatal("desktop interval wrong")
	}
	if autosave.IntervalFor(savefile.EnvWeb) != autosave.RestrictedInterval {
		t.Fatal("restricted interval wrong")
	}
	if autosave.RestrictedInterval >= autosave.DesktopInterval {
		t.Fatal("restricted host must save more often than desktop")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	store := autosave.NewFileStore(path)
	t.Cleanup(func() { _ = store.Close() })

	if _, err := store.Load(context.Background()); !errors.Is(err, autosave.ErrNoSave) {
		t.Fatalf("expected ErrNoSave, got %v", err)
	}

	payload := []byte(`{"formatVersion":"3.0.0"}`)
	if err := store.Save(context.Background(), payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: %q", got)
	}

	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, autosave.ErrNoSave) {
		t.Fatal("cleared store must report ErrNoSave")
	}
}

func TestKVStoreRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEnvironment("web"))
	store, err := autosave.OpenKVStore(cfg.SaveDBPath())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if _, err := store.Load(ctx); !errors.Is(err, autosave.ErrNoSave) {
		t.Fatalf("expected ErrNoSave, got %v", err)
	}

	if err := store.Save(ctx, []byte("v1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "v2" {
		t.Fatalf("expected latest payload, got %q", got)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, autosave.ErrNoSave) {
		t.Fatal("cleared store must report ErrNoSave")
	}
}
