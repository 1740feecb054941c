package localstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "users"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrKeyNotFound", err)
	}

	if err := s.Set(ctx, "users", []byte(`[{"id":"u1"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "users")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[{"id":"u1"}]` {
		t.Errorf("Get = %s", got)
	}

	if err := s.Set(ctx, "users", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = s.Get(ctx, "users")
	if string(got) != `[]` {
		t.Errorf("after overwrite Get = %s", got)
	}

	if err := s.Delete(ctx, "users"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "users"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get after Delete: err = %v, want ErrKeyNotFound", err)
	}
}

func TestMemoryStoreDeleteMissingKey(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Delete(context.Background(), "ghost"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := []byte("original")
	if err := s.Set(ctx, "k", in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in[0] = 'X'

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "original" {
		t.Errorf("stored value aliased caller buffer: %s", got)
	}

	got[0] = 'Y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("returned value aliased stored buffer: %s", again)
	}
}
