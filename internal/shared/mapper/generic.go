// Package mapper holds small generic slice helpers used by DTO and model mappers.
package mapper

// MapSlice applies fn to every element. A nil input yields an empty,
// non-nil slice so JSON renders [] rather than null.
func MapSlice[T any, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// IndexBy builds a lookup map keyed by key(item). Later items win.
func IndexBy[T any, K comparable](items []T, key func(T) K) map[K]T {
	out := make(map[K]T, len(items))
	for _, item := range items {
		out[key(item)] = item
	}
	return out
}
