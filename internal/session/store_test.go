package session

import (
	"sync"
	"testing"
	"time"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/catalog"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/schema"
)

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	store := NewMemoryStore()
	a := store.GetOrCreate("alice")
	b := store.GetOrCreate("alice")
	if a != b {
		t.Fatal("same id returned different sessions")
	}
	if store.GetOrCreate("bob") == a {
		t.Fatal("distinct ids share a session")
	}
	if store.Len() != 2 {
		t.Errorf("len = %d, want 2", store.Len())
	}
}

func TestSessionHistoryIsSnapshot(t *testing.T) {
	s := NewMemoryStore().GetOrCreate("alice")
	s.Append(schema.NewUserMessage("hi"))

	h := s.History()
	h.AddUser("mutated copy")

	if got := s.History().Len(); got != 1 {
		t.Errorf("history len = %d, want 1", got)
	}
}

func TestBestOfferLifecycle(t *testing.T) {
	s := NewMemoryStore().GetOrCreate("alice")
	if s.BestOffer() != nil {
		t.Fatal("fresh session has an offer")
	}
	s.SetBestOffer(catalog.Offer{Vendor: "Zappos", ProductID: "hoka_bondi", TotalPrice: 174.99})
	got := s.BestOffer()
	if got == nil || got.Vendor != "Zappos" {
		t.Fatalf("offer = %+v", got)
	}
	// Mutating the returned copy must not touch the stored offer.
	got.Vendor = "scratch"
	if s.BestOffer().Vendor != "Zappos" {
		t.Error("BestOffer returned shared state")
	}
	s.ClearBestOffer()
	if s.BestOffer() != nil {
		t.Error("offer survived clear")
	}
}

func TestSweepIdle(t *testing.T) {
	store := NewMemoryStore()
	stale := store.GetOrCreate("stale")
	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-2 * time.Hour)
	stale.mu.Unlock()
	store.GetOrCreate("fresh")

	if removed := store.SweepIdle(time.Hour); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if store.Len() != 1 {
		t.Errorf("len = %d, want 1", store.Len())
	}
}

func TestConcurrentAppend(t *testing.T) {
	s := NewMemoryStore().GetOrCreate("alice")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(schema.NewUserMessage("msg"))
		}()
	}
	wg.Wait()
	if got := s.History().Len(); got != 50 {
		t.Errorf("history len = %d, want 50", got)
	}
}
