package localstore

import "strings"

// SeenStore tracks which place ids have already been recommended, per city.
// The server owns the canonical list: after every recommendation call the
// response's seen_ids replaces whatever was stored, it is never merged. That
// keeps the client from drifting if the backend dedups or expires ids.
type SeenStore struct {
	store *Store
}

// NewSeenStore wraps a Store with per-city seen-id tracking.
func NewSeenStore(store *Store) *SeenStore {
	return &SeenStore{store: store}
}

// seenKey normalizes the city so "Hà Nội" and " hà nội " share one list.
func seenKey(city string) string {
	return "visitor_seen_ids_" + strings.ToLower(strings.TrimSpace(city))
}

// Load returns the stored seen ids for a city. Missing or unreadable data
// is an empty list, never an error; the worst case is a repeated suggestion.
func (s *SeenStore) Load(city string) []int64 {
	var ids []int64
	ok, err := s.store.Get(seenKey(city), &ids)
	if err != nil || !ok || ids == nil {
		return []int64{}
	}
	return ids
}

// Replace overwrites the stored list with the server's authoritative one.
func (s *SeenStore) Replace(city string, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	return s.store.Put(seenKey(city), ids)
}

// Clear forgets the city's history so places can be recommended again.
func (s *SeenStore) Clear(city string) error {
	return s.store.Delete(seenKey(city))
}
