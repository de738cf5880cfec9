package common

// Map is a map that remembers insertion order.
type Map[K comparable, V any] struct {
	values map[K]V
	keys   []K
}

func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

func (m *Map[K, V]) Add(k K, v V) {
	if !m.Contains(k) {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

func (m *Map[K, V]) Contains(k K) bool {
	_, ok := m.values[k]
	return ok
}

func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

func (m *Map[K, V]) Keys() []K {
	return append([]K(nil), m.keys...)
}

func (m *Map[K, V]) Iter(f func(K, V)) {
	for _, k := range m.keys {
		f(k, m.values[k])
	}
}
