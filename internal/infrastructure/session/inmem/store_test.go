package inmem

import (
	"context"
	"testing"
	"time"
)

func TestRememberAndRecall(t *testing.T) {
	store := New(10, time.Minute)
	ctx := context.Background()

	if err := store.RememberAnswer(ctx, "s1", "first answer"); err != nil {
		t.Fatalf("RememberAnswer() error = %v", err)
	}

	answer, ok, err := store.LastAnswer(ctx, "s1")
	if err != nil {
		t.Fatalf("LastAnswer() error = %v", err)
	}
	if !ok || answer != "first answer" {
		t.Fatalf("LastAnswer() = (%q, %v)", answer, ok)
	}
}

func TestUnknownSession(t *testing.T) {
	store := New(10, time.Minute)

	answer, ok, err := store.LastAnswer(context.Background(), "missing")
	if err != nil {
		t.Fatalf("LastAnswer() error = %v", err)
	}
	if ok || answer != "" {
		t.Fatalf("LastAnswer() = (%q, %v), want miss", answer, ok)
	}
}

func TestOverwriteKeepsLatest(t *testing.T) {
	store := New(10, time.Minute)
	ctx := context.Background()

	store.RememberAnswer(ctx, "s1", "old")
	store.RememberAnswer(ctx, "s1", "new")

	answer, ok, _ := store.LastAnswer(ctx, "s1")
	if !ok || answer != "new" {
		t.Fatalf("LastAnswer() = (%q, %v), want latest answer", answer, ok)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	store := New(2, time.Minute)
	ctx := context.Background()

	store.RememberAnswer(ctx, "s1", "a")
	store.RememberAnswer(ctx, "s2", "b")
	store.RememberAnswer(ctx, "s3", "c")

	if _, ok, _ := store.LastAnswer(ctx, "s1"); ok {
		t.Fatalf("oldest session should have been evicted")
	}
	if _, ok, _ := store.LastAnswer(ctx, "s3"); !ok {
		t.Fatalf("newest session must survive")
	}
}

func TestTTLExpiry(t *testing.T) {
	store := New(10, 20*time.Millisecond)
	ctx := context.Background()

	store.RememberAnswer(ctx, "s1", "a")
	time.Sleep(60 * time.Millisecond)

	if _, ok, _ := store.LastAnswer(ctx, "s1"); ok {
		t.Fatalf("entry should have expired")
	}
}
