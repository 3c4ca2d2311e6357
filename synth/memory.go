package synth

import (
	"sync"

	"github.com/cwbudde/algo-score/avl"
)

// Memory wraps a backing generator with a render cache keyed by
// (frequency, totalTime, sampleRate). Amplitude is deliberately not
// part of the key: a hit with a different amplitude rescales the cached
// buffer by the amplitude ratio instead of recomputing it. Callers
// always receive an independent copy, so downstream mutation can never
// corrupt the cache.
//
// The cache grows without bound; there is no eviction. For very long or
// highly varied scores this trades memory for deterministic behavior.
type Memory struct {
	backing Generator

	mu    sync.Mutex
	store memoryStore
}

type memoryKey struct {
	frequency  float64
	totalTime  float64
	sampleRate float64
}

type memoryEntry struct {
	key       memoryKey
	amplitude float64
	data      []float64
}

type memoryStore interface {
	lookup(k memoryKey) (*memoryEntry, bool)
	insert(e *memoryEntry)
}

// NewHashMemory creates a memoizing generator backed by a hash map.
// Best when the same few notes repeat many times.
func NewHashMemory(backing Generator) *Memory {
	return &Memory{backing: backing, store: make(hashStore)}
}

// NewTreeMemory creates a memoizing generator backed by an ordered
// tree, compared lexicographically by (frequency, totalTime,
// sampleRate). Scales better as the number of distinct notes grows.
func NewTreeMemory(backing Generator) *Memory {
	tree, _ := avl.New(compareMemoryEntries)
	return &Memory{backing: backing, store: &treeStore{tree: tree}}
}

// Render returns a fresh copy of the cached buffer for the requested
// note, rescaling by amplitude ratio on an amplitude mismatch, or
// delegates to the backing generator on a miss.
func (m *Memory) Render(frequency, totalTime, amplitude, sampleRate float64) []float64 {
	k := memoryKey{frequency: frequency, totalTime: totalTime, sampleRate: sampleRate}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.store.lookup(k); ok {
		out := make([]float64, len(e.data))
		if e.amplitude == amplitude {
			copy(out, e.data)
			return out
		}
		ratio := amplitude / e.amplitude
		for i, v := range e.data {
			out[i] = ratio * v
		}
		return out
	}

	data := m.backing.Render(frequency, totalTime, amplitude, sampleRate)
	m.store.insert(&memoryEntry{key: k, amplitude: amplitude, data: data})

	out := make([]float64, len(data))
	copy(out, data)
	return out
}

type hashStore map[memoryKey]*memoryEntry

func (s hashStore) lookup(k memoryKey) (*memoryEntry, bool) {
	e, ok := s[k]
	return e, ok
}

func (s hashStore) insert(e *memoryEntry) {
	s[e.key] = e
}

type treeStore struct {
	tree *avl.Tree[*memoryEntry]
}

func (s *treeStore) lookup(k memoryKey) (*memoryEntry, bool) {
	e, err := s.tree.Find(&memoryEntry{key: k})
	if err != nil {
		return nil, false
	}
	return e, true
}

func (s *treeStore) insert(e *memoryEntry) {
	s.tree.Insert(e)
}

func compareMemoryEntries(a, b *memoryEntry) int {
	switch {
	case a.key.frequency < b.key.frequency:
		return -1
	case a.key.frequency > b.key.frequency:
		return 1
	case a.key.totalTime < b.key.totalTime:
		return -1
	case a.key.totalTime > b.key.totalTime:
		return 1
	case a.key.sampleRate < b.key.sampleRate:
		return -1
	case a.key.sampleRate > b.key.sampleRate:
		return 1
	default:
		return 0
	}
}
