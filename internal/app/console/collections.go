package console

// Collection helpers. Each returns a new slice so snapshots already handed
// out are never modified in place.

func prepend[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

func replaceByKey[T any, K comparable](items []T, key K, keyOf func(T) K, v T) ([]T, bool) {
	for i := range items {
		if keyOf(items[i]) == key {
			out := append([]T(nil), items...)
			out[i] = v
			return out, true
		}
	}
	return items, false
}

func removeByKey[T any, K comparable](items []T, key K, keyOf func(T) K) ([]T, bool) {
	for i := range items {
		if keyOf(items[i]) == key {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}

func findByKey[T any, K comparable](items []T, key K, keyOf func(T) K) (T, bool) {
	for _, it := range items {
		if keyOf(it) == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}
