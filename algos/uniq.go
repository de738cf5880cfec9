package algos

import "github.com/hashicorp/go-set/v3"

// UniqBy drops elements whose key was already seen, keeping first occurrences.
func UniqBy[T any, K comparable](s []T, key func(T) K) []T {
	seen := set.New[K](len(s))
	uniq := make([]T, 0, len(s))
	for _, v := range s {
		if seen.Insert(key(v)) {
			uniq = append(uniq, v)
		}
	}
	return uniq
}
