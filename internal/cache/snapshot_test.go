package cache

import (
	"testing"
	"time"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewSnapshot[[]int](time.Minute)

	if _, ok := s.Get(); ok {
		t.Fatalf("empty cache must miss")
	}

	s.Set([]int{1, 2, 3})
	got, ok := s.Get()
	if !ok || len(got) != 3 {
		t.Fatalf("Get = %v, %v", got, ok)
	}

	s.Invalidate()
	if _, ok := s.Get(); ok {
		t.Fatalf("invalidated cache must miss")
	}
}

func TestSnapshotExpires(t *testing.T) {
	s := NewSnapshot[string](10 * time.Millisecond)
	s.Set("fresh")

	if _, ok := s.Get(); !ok {
		t.Fatalf("fresh value must hit")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := s.Get(); ok {
		t.Fatalf("expired value must miss")
	}
}
