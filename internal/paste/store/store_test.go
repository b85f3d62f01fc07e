package store

import (
	"context"
	"testing"
	"time"
)

func TestAdapter_CreateIfAbsent_NoOverwrite(t *testing.T) {
	a := New(NewFakeClient())
	ctx := context.Background()

	created, err := a.CreateIfAbsent(ctx, "paste:1", "first", 60)
	if err != nil || !created {
		t.Fatalf("first create: created=%v err=%v", created, err)
	}

	created, err = a.CreateIfAbsent(ctx, "paste:1", "second", 60)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if created {
		t.Fatal("expected second create to report exists, not created")
	}

	v, ok, err := a.Get(ctx, "paste:1")
	if err != nil || !ok || v != "first" {
		t.Fatalf("expected original value preserved, got v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestAdapter_Get_AbsentIsNotAnError(t *testing.T) {
	a := New(NewFakeClient())
	v, ok, err := a.Get(context.Background(), "paste:missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for absent key, got value %q", v)
	}
}

func TestAdapter_UpdatePreservingTTL(t *testing.T) {
	fc := NewFakeClient()
	a := New(fc)
	ctx := context.Background()

	if _, err := a.CreateIfAbsent(ctx, "paste:1", "v1", 100); err != nil {
		t.Fatal(err)
	}
	ttlBefore, _ := fc.TTL("paste:1")

	if err := a.UpdatePreservingTTL(ctx, "paste:1", "v2"); err != nil {
		t.Fatal(err)
	}

	v, ok, err := a.Get(ctx, "paste:1")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("expected updated value v2, got v=%q ok=%v err=%v", v, ok, err)
	}
	ttlAfter, _ := fc.TTL("paste:1")
	if ttlAfter > ttlBefore {
		t.Fatalf("TTL should not increase on update: before=%v after=%v", ttlBefore, ttlAfter)
	}
}

func TestAdapter_SetTTL_Shortens(t *testing.T) {
	fc := NewFakeClient()
	a := New(fc)
	ctx := context.Background()

	if _, err := a.CreateIfAbsent(ctx, "paste:1", "v1", 1000); err != nil {
		t.Fatal(err)
	}
	if err := a.SetTTL(ctx, "paste:1", 90); err != nil {
		t.Fatal(err)
	}
	ttl, ok := fc.TTL("paste:1")
	if !ok {
		t.Fatal("expected key to still exist")
	}
	if ttl > 90*time.Second {
		t.Fatalf("expected TTL <= 90s, got %v", ttl)
	}
}

func TestAdapter_Delete(t *testing.T) {
	a := New(NewFakeClient())
	ctx := context.Background()
	if _, err := a.CreateIfAbsent(ctx, "paste:1", "v1", 60); err != nil {
		t.Fatal(err)
	}
	if err := a.Delete(ctx, "paste:1"); err != nil {
		t.Fatal(err)
	}
	_, ok, err := a.Get(ctx, "paste:1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected key to be gone after delete")
	}
}
