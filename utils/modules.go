package utils

import "strings"

// NormalizeModuleCode uppercases and trims a course identifier so that
// "cs101 " and "CS101" match.
func NormalizeModuleCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeModuleCodes normalizes every entry, drops blanks and collapses
// duplicates while preserving first-occurrence order.
func NormalizeModuleCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		norm := NormalizeModuleCode(c)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

// NormalizeEmail lowercases and trims an address before uniqueness checks
// and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
