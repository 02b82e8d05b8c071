package otel

import (
	"sync"
	"testing"
)

func TestPushAndSnapshot(t *testing.T) {
	r := NewRingBuffer(8)
	for i := 0; i < 5; i++ {
		r.Push(Event{Kind: KindSuggestStart, Seq: uint64(i)})
	}

	snap := r.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("expected 5 events, got %d", len(snap))
	}
	for i, e := range snap {
		if e.Seq != uint64(i) {
			t.Errorf("snap[%d].Seq=%d, want %d", i, e.Seq, i)
		}
	}
}

func TestWrapAround(t *testing.T) {
	r := NewRingBuffer(4)
	for i := 0; i < 8; i++ {
		r.Push(Event{Kind: KindSuggestStart, Count: i})
	}

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 events, got %d", len(snap))
	}
	for i, e := range snap {
		if want := i + 4; e.Count != want {
			t.Errorf("snap[%d].Count=%d, want %d", i, e.Count, want)
		}
	}
}

func TestLastWrapped(t *testing.T) {
	r := NewRingBuffer(4)
	for i := 0; i < 6; i++ {
		r.Push(Event{Kind: KindRecommendStart, Count: i})
	}

	last2 := r.Last(2)
	if len(last2) != 2 {
		t.Fatalf("expected 2, got %d", len(last2))
	}
	if last2[0].Count != 4 || last2[1].Count != 5 {
		t.Errorf("expected [4,5], got [%d,%d]", last2[0].Count, last2[1].Count)
	}

	if got := len(r.Last(100)); got != 4 {
		t.Errorf("Last(100) returned %d events, want 4", got)
	}
}

func TestLastNonPositive(t *testing.T) {
	r := NewRingBuffer(8)
	r.Push(Event{Kind: KindStartup})

	if got := r.Last(-1); got != nil {
		t.Errorf("Last(-1) = %v, want nil", got)
	}
	if got := r.Last(0); got != nil {
		t.Errorf("Last(0) = %v, want nil", got)
	}
}

func TestEmptySnapshot(t *testing.T) {
	if snap := NewRingBuffer(8).Snapshot(); snap != nil {
		t.Errorf("expected nil, got %v", snap)
	}
}

func TestStats(t *testing.T) {
	r := NewRingBuffer(16)
	r.Push(Event{Kind: KindSuggestStart})
	r.Push(Event{Kind: KindSuggestStart})
	r.Push(Event{Kind: KindSuggestStale})
	r.Push(Event{Kind: KindRecommendError})
	r.Push(Event{Kind: KindRecommendError})
	r.Push(Event{Kind: KindRecommendError})

	stats := r.Stats()
	if stats[KindSuggestStart] != 2 {
		t.Errorf("suggest.start=%d, want 2", stats[KindSuggestStart])
	}
	if stats[KindSuggestStale] != 1 {
		t.Errorf("suggest.stale=%d, want 1", stats[KindSuggestStale])
	}
	if stats[KindRecommendError] != 3 {
		t.Errorf("recommend.error=%d, want 3", stats[KindRecommendError])
	}
}

func TestLenAndCap(t *testing.T) {
	r := NewRingBuffer(4)
	if r.Len() != 0 {
		t.Errorf("expected 0, got %d", r.Len())
	}
	for i := 0; i < 10; i++ {
		r.Push(Event{Kind: KindMouse})
	}
	if r.Len() != 4 {
		t.Errorf("expected 4 (capped at size), got %d", r.Len())
	}
	if r.Cap() != 4 {
		t.Errorf("Cap() = %d, want 4", r.Cap())
	}
	if got := NewRingBuffer(0).Cap(); got != DefaultRingSize {
		t.Errorf("Cap() = %d, want %d", got, DefaultRingSize)
	}
}

func TestExtraIsCopied(t *testing.T) {
	r := NewRingBuffer(4)
	extra := map[string]any{"key": "original"}
	r.Push(Event{Kind: KindStartup, Extra: extra})

	extra["key"] = "mutated"

	if got := r.Snapshot()[0].Extra["key"]; got != "original" {
		t.Errorf("extra was aliased: got %v, want 'original'", got)
	}
}

func TestConcurrentPushSnapshot(t *testing.T) {
	r := NewRingBuffer(256)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Push(Event{Kind: KindSuggestStart})
			}
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = r.Snapshot()
				_ = r.Last(10)
				_ = r.Stats()
			}
		}()
	}
	wg.Wait()
}

func TestRingBufferWithLogger(t *testing.T) {
	r := NewRingBuffer(16)
	l := NewNullLogger()
	l.SetRingBuffer(r)

	l.Emit(Event{Kind: KindStartup, Msg: "hello"})
	l.Emit(Event{Kind: KindShutdown, Msg: "bye"})
	l.Close()

	if r.Len() != 2 {
		t.Fatalf("expected 2 events in ring buffer, got %d", r.Len())
	}
	last := r.Last(2)
	if last[0].Kind != KindStartup || last[1].Kind != KindShutdown {
		t.Errorf("unexpected kinds: %v, %v", last[0].Kind, last[1].Kind)
	}
}
