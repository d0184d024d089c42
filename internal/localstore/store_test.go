package localstore

import (
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := sample{Name: "Hà Nội", Count: 3}
	if err := s.Put("city", in); err != nil {
		t.Fatal(err)
	}

	var out sample
	ok, err := s.Get("city", &out)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("key should exist after Put")
	}
	if out != in {
		t.Errorf("round trip changed value: %+v -> %+v", in, out)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	var out sample
	ok, err := s.Get("nothing", &out)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("missing key reported as present")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put("trip", sample{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	if !s.Has("trip") {
		t.Fatal("Has = false after Put")
	}
	if err := s.Delete("trip"); err != nil {
		t.Fatal(err)
	}
	if s.Has("trip") {
		t.Error("Has = true after Delete")
	}

	// Deleting again is not an error.
	if err := s.Delete("trip"); err != nil {
		t.Errorf("double delete: %v", err)
	}
}

func TestKeysWithUnsafeCharacters(t *testing.T) {
	s := newTestStore(t)

	key := "visitor_seen_ids_hà nội"
	if err := s.Put(key, []int64{1, 2}); err != nil {
		t.Fatal(err)
	}

	var ids []int64
	ok, err := s.Get(key, &ids)
	if err != nil || !ok {
		t.Fatalf("get %q: ok=%v err=%v", key, ok, err)
	}
	if len(ids) != 2 {
		t.Errorf("got %v", ids)
	}
}

func TestOverwrite(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put("user", sample{Name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put("user", sample{Name: "b"}); err != nil {
		t.Fatal(err)
	}

	var out sample
	if _, err := s.Get("user", &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "b" {
		t.Errorf("overwrite did not stick: %q", out.Name)
	}
}
