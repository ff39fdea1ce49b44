package blob

import (
	"bytes"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)

	data := []byte("webm bytes")
	key := MediaKey(1700000000001)

	if err := s.Put(key, data); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Get("media:999"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	key := MediaKey(5)
	if err := s.Put(key, []byte("x")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(key); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}

	// Deleting again is fine.
	if err := s.Delete(key); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestMediaKey(t *testing.T) {
	if got := MediaKey(42); got != "media:42" {
		t.Errorf("key = %q, want %q", got, "media:42")
	}
}
