package trace

import (
	"fmt"
	"strings"
)

// enumName looks v up in a name table indexed by value.
func enumName[T ~uint8](names []string, v T) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}
	return "unknown"
}

// parseEnum is the inverse of enumName; matching ignores case and
// surrounding space.
func parseEnum[T ~uint8](what, s string, names []string) (T, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	valid := make([]string, 0, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		if name == key {
			return T(i), nil
		}
		valid = append(valid, name)
	}
	return 0, fmt.Errorf("invalid %s: %q (expected: %s)", what, s, strings.Join(valid, "|"))
}
