// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"testing"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordSeenAndLookup(t *testing.T) {
	s := newTestStore(t)
	runDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	candidates := []types.Candidate{
		{ID: "2301.00001", Title: "Attention", Score: 5, Published: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)},
		{ID: "2301.00002", Title: "Diffusion", Score: 3},
	}
	if err := s.RecordSeen(candidates, runDate); err != nil {
		t.Fatalf("RecordSeen: %v", err)
	}

	for _, id := range []string{"2301.00001", "2301.00002"} {
		seen, err := s.Seen(id)
		if err != nil {
			t.Fatalf("Seen(%s): %v", id, err)
		}
		if !seen {
			t.Errorf("Seen(%s) = false, want true", id)
		}
	}
	seen, err := s.Seen("2301.99999")
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if seen {
		t.Error("Seen(unknown) = true, want false")
	}
}

// The logs are append-only: recording the same paper on a later run adds
// a second row instead of replacing the first.
func TestRecordSeenDuplicateIDsAppend(t *testing.T) {
	s := newTestStore(t)
	c := []types.Candidate{{ID: "2301.00001", Title: "Attention", Score: 5}}

	if err := s.RecordSeen(c, time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("first RecordSeen: %v", err)
	}
	if err := s.RecordSeen(c, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("second RecordSeen: %v", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM papers_seen WHERE id = ?`, "2301.00001").Scan(&n); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if n != 2 {
		t.Errorf("seen log has %d rows for the paper, want 2", n)
	}
}

func TestRecordDownloaded(t *testing.T) {
	s := newTestStore(t)
	if err := s.RecordDownloaded([]types.Candidate{{ID: "2301.00001"}}, time.Now()); err != nil {
		t.Fatalf("RecordDownloaded: %v", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM papers_downloaded`).Scan(&n); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if n != 1 {
		t.Errorf("downloaded log has %d rows, want 1", n)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, ok, err := s.Cursor(); err != nil || ok {
		t.Fatalf("Cursor() on fresh store = ok=%v, err=%v, want unset", ok, err)
	}

	want := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	if err := s.SetCursor(want); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}

	got, ok, err := s.Cursor()
	if err != nil {
		t.Fatalf("Cursor: %v", err)
	}
	if !ok {
		t.Fatal("Cursor() ok = false after SetCursor")
	}
	if !got.Equal(want) {
		t.Errorf("Cursor() = %v, want %v", got, want)
	}
}

func TestSetCursorOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetCursor(time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("first SetCursor: %v", err)
	}
	want := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	if err := s.SetCursor(want); err != nil {
		t.Fatalf("second SetCursor: %v", err)
	}

	got, ok, err := s.Cursor()
	if err != nil || !ok {
		t.Fatalf("Cursor: ok=%v, err=%v", ok, err)
	}
	if !got.Equal(want) {
		t.Errorf("Cursor() = %v, want %v", got, want)
	}
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.RecordSeen([]types.Candidate{{ID: "2301.00001"}}, time.Now()); err != nil {
		t.Fatalf("RecordSeen: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	seen, err := reopened.Seen("2301.00001")
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if !seen {
		t.Error("record lost across reopen")
	}
}
