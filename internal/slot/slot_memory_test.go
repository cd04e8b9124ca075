package slot

import (
	"context"
	"errors"
	"testing"
)

func TestMemSlot_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemSlot()

	if _, ok, err := s.Get(ctx, "cart"); err != nil || ok {
		t.Fatalf("empty slot: ok=%v err=%v", ok, err)
	}

	in := []byte(`[{"id":1}]`)
	if err := s.Set(ctx, "cart", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[0] = 'X'

	got, ok, err := s.Get(ctx, "cart")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"id":1}]` {
		t.Fatalf("got=%s", got)
	}

	if err := s.Set(ctx, "cart", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = s.Get(ctx, "cart")
	if string(got) != `[]` {
		t.Fatalf("after overwrite got=%s", got)
	}
}

func TestMemSlot_EmptyKey(t *testing.T) {
	s := NewMemSlot()
	if err := s.Set(context.Background(), "", nil); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("set err=%v", err)
	}
	if _, _, err := s.Get(context.Background(), ""); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("get err=%v", err)
	}
}
