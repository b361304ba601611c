package normalization

import "strings"

// ParseInputString trims and lower-cases free-form input. Symptom names are
// stored under this form, which acts as their natural key.
func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// SymptomNames normalizes a list of symptom names, dropping empties and
// duplicates while preserving first-seen order.
func SymptomNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		n := ParseInputString(name)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
