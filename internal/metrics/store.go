package metrics

import (
	"sort"
	"sync"
	"time"
)

// OperationUsage aggregates the calls made against one API operation.
type OperationUsage struct {
	Operation    string
	Count        int64
	Errors       int64
	TotalLatency time.Duration
	LastCall     time.Time
}

// AvgLatency returns the mean latency across all recorded calls.
func (u OperationUsage) AvgLatency() time.Duration {
	if u.Count == 0 {
		return 0
	}
	return u.TotalLatency / time.Duration(u.Count)
}

// Store accumulates in-memory API call metrics for the status report.
type Store struct {
	mu      sync.Mutex
	started time.Time
	usage   map[string]*OperationUsage
}

// NewStore initializes an empty metrics store.
func NewStore() *Store {
	return &Store{
		started: time.Now(),
		usage:   make(map[string]*OperationUsage),
	}
}

// Record saves one call's outcome.
func (s *Store) Record(operation string, latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.usage[operation]
	if !ok {
		u = &OperationUsage{Operation: operation}
		s.usage[operation] = u
	}
	u.Count++
	if err != nil {
		u.Errors++
	}
	u.TotalLatency += latency
	u.LastCall = time.Now()
}

// Snapshot returns the usage per operation, busiest first.
func (s *Store) Snapshot() []OperationUsage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]OperationUsage, 0, len(s.usage))
	for _, u := range s.usage {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Operation < out[j].Operation
	})
	return out
}

// Started returns when this store began collecting.
func (s *Store) Started() time.Time {
	return s.started
}
