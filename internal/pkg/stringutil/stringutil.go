package stringutil

import "strings"

// BuildFQN joins name parts into a dotted fully qualified name.
// Empty parts are skipped.
func BuildFQN(parts ...string) string {
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		tokens = append(tokens, p)
	}
	return strings.Join(tokens, ".")
}

// SplitFQN splits a dotted fully qualified name into its parts.
func SplitFQN(fqn string) []string {
	if fqn == "" {
		return nil
	}
	return strings.Split(fqn, ".")
}

// ParentFQN strips the last segment from a fully qualified name.
// For a column FQN this yields the owning table FQN.
func ParentFQN(fqn string) string {
	idx := strings.LastIndex(fqn, ".")
	if idx < 0 {
		return ""
	}
	return fqn[:idx]
}

// LastSegment returns the final segment of a fully qualified name,
// or the input unchanged when it has no dots.
func LastSegment(fqn string) string {
	idx := strings.LastIndex(fqn, ".")
	if idx < 0 {
		return fqn
	}
	return fqn[idx+1:]
}

// CopyStrings creates a copy of a string slice.
func CopyStrings(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
