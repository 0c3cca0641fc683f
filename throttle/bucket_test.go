package throttle

import (
	"context"
	"testing"
	"time"
)

func TestAllowBurstThenBlock(t *testing.T) {
	s := NewBucketStore[string](context.Background(), time.Minute, time.Hour)
	s.SetBucketGroup("pdf", &BucketConf{Burst: 3, Increment: 1, Period: time.Minute})

	now := time.Now()
	for i := 0; i < 3; i++ {
		if !s.Allow("pdf", "sess1", now) {
			t.Fatalf("request %d within burst blocked", i+1)
		}
	}
	if s.Allow("pdf", "sess1", now) {
		t.Error("request beyond burst allowed")
	}

	// other sessions have their own bucket
	if !s.Allow("pdf", "sess2", now) {
		t.Error("fresh session blocked")
	}
}

func TestAllowRefillsAfterPeriod(t *testing.T) {
	s := NewBucketStore[string](context.Background(), time.Minute, time.Hour)
	s.SetBucketGroup("pdf", &BucketConf{Burst: 1, Increment: 1, Period: time.Minute})

	now := time.Now()
	if !s.Allow("pdf", "sess1", now) {
		t.Fatal("first request blocked")
	}
	if s.Allow("pdf", "sess1", now) {
		t.Fatal("second immediate request allowed")
	}
	if !s.Allow("pdf", "sess1", now.Add(time.Minute)) {
		t.Error("request after refill period blocked")
	}
}

func TestAllowUnknownGroupBlocked(t *testing.T) {
	s := NewBucketStore[string](context.Background(), time.Minute, time.Hour)
	if s.Allow("nope", "sess1", time.Now()) {
		t.Error("unknown group must always block")
	}
}
