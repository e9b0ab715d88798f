package logging

import "testing"

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.Debugw("test", "should not panic")
	l.Errorw("test", "should not panic", "k", "v")
	if got := l.Entries(); got != nil {
		t.Fatalf("expected nil entries from nil logger, got %v", got)
	}
}

func TestAddEntryBuffersAndNotifiesListeners(t *testing.T) {
	l, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var seen []Entry
	l.AddListener(func(e Entry) { seen = append(seen, e) })

	l.Infow("dispatch", "hook registered")
	l.Errorw("worker", "callback panicked", "recovered", "boom")

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 listener notifications, got %d", len(seen))
	}
	if entries[1].Level != LevelError || entries[1].Source != "worker" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestMaxEntriesEvictsOldest(t *testing.T) {
	l, err := New(Config{MaxEntries: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Infow("a", "one")
	l.Infow("a", "two")
	l.Infow("a", "three")

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected buffer capped at 2, got %d", len(entries))
	}
	if entries[0].Message != "two" || entries[1].Message != "three" {
		t.Fatalf("expected oldest entry evicted, got %+v", entries)
	}
}

func TestRemoveListenerStopsNotifications(t *testing.T) {
	l, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	count := 0
	id := l.AddListener(func(Entry) { count++ })
	l.Infow("a", "one")
	l.RemoveListener(id)
	l.Infow("a", "two")
	if count != 1 {
		t.Fatalf("expected 1 notification after removal, got %d", count)
	}
}
