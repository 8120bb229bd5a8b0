package presence

import (
	"fmt"
	"sync"
	"testing"
)

func TestAnnounceAndLookup(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Lookup("u1"); ok {
		t.Fatal("Lookup on empty registry returned an entry")
	}

	ch := make(Channel, 1)
	r.Announce("u1", ch)

	got, ok := r.Lookup("u1")
	if !ok {
		t.Fatal("Lookup(u1) = absent, want present")
	}
	if got != ch {
		t.Error("Lookup(u1) returned a different channel than announced")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestAnnounceOverwritesPreviousEntry(t *testing.T) {
	r := NewRegistry()

	first := make(Channel, 1)
	second := make(Channel, 1)
	r.Announce("u1", first)
	r.Announce("u1", second)

	got, ok := r.Lookup("u1")
	if !ok || got != second {
		t.Error("Lookup(u1) should return the most recently announced channel")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after reconnection", r.Len())
	}

	// Removing the stale handle must not drop the fresh entry.
	r.Remove(first)
	if _, ok := r.Lookup("u1"); !ok {
		t.Error("removing an overwritten handle dropped the live entry")
	}
}

func TestRemoveDeletesMatchingEntryOnly(t *testing.T) {
	r := NewRegistry()

	ch1 := make(Channel, 1)
	ch2 := make(Channel, 1)
	r.Announce("u1", ch1)
	r.Announce("u2", ch2)

	r.Remove(ch1)

	if _, ok := r.Lookup("u1"); ok {
		t.Error("Lookup(u1) = present after Remove")
	}
	if _, ok := r.Lookup("u2"); !ok {
		t.Error("Remove deleted an unrelated entry")
	}
}

func TestConcurrentAnnounceRemove(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i%10)
			ch := make(Channel, 1)
			r.Announce(userID, ch)
			r.Lookup(userID)
			r.Remove(ch)
		}(i)
	}
	wg.Wait()

	if r.Len() > 10 {
		t.Errorf("Len() = %d after churn, want at most 10", r.Len())
	}
}
