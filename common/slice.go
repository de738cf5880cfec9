package common

func PopBack[T any](s []T) (T, []T) {
	return s[len(s)-1], s[:len(s)-1]
}

func MapSlice[T, U any](s []T, f func(T) U) []U {
	result := make([]U, len(s))
	for i, x := range s {
		result[i] = f(x)
	}
	return result
}
