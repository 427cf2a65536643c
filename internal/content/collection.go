package content

import "strings"

// The repeating editor sections (links, Q&A, education, certificates,
// skill groups) all share the same add/remove/update shape, so the
// operations are generic. Every helper is copy-on-write: the input
// slice is never mutated, which keeps drafts safe to snapshot.

// AddItem returns a new slice with item appended, preserving order.
func AddItem[T any](list []T, item T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, item)
}

// RemoveItem returns a new slice without the item at index. Subsequent
// indices shift down. An out-of-range index returns the input unchanged.
func RemoveItem[T any](list []T, index int) []T {
	if index < 0 || index >= len(list) {
		return list
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...)
}

// UpdateItem returns a new slice with patch applied to the item at
// index, leaving all other items untouched.
func UpdateItem[T any](list []T, index int, patch func(T) T) []T {
	if index < 0 || index >= len(list) {
		return list
	}
	out := make([]T, len(list))
	copy(out, list)
	out[index] = patch(out[index])
	return out
}

// SplitList parses a comma-delimited form value into a list, trimming
// whitespace and discarding empty fragments. Skill items and tags are
// both edited this way.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JoinList renders a list back into the comma-delimited form value.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
