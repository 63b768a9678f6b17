package event

import "strings"

// Topic is a hierarchical event type using dot-notation, e.g.
// "occurrence.created" or "buffer.edited".
type Topic string

// Segments splits the topic into its dot-separated segments.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), ".")
}

// IsPattern returns true if the topic contains wildcard segments.
func (t Topic) IsPattern() bool {
	for _, seg := range t.Segments() {
		if seg == "*" || seg == "**" {
			return true
		}
	}
	return false
}

// Match reports whether the concrete topic matches the pattern.
// A "*" segment matches exactly one segment; a "**" segment matches
// zero or more trailing segments.
func Match(pattern, topic Topic) bool {
	return matchSegments(pattern.Segments(), topic.Segments())
}

func matchSegments(pattern, topic []string) bool {
	for i, seg := range pattern {
		if seg == "**" {
			// Trailing multi-wildcard matches the rest, including nothing.
			if i == len(pattern)-1 {
				return true
			}
			for j := i; j <= len(topic); j++ {
				if matchSegments(pattern[i+1:], topic[j:]) {
					return true
				}
			}
			return false
		}
		if i >= len(topic) {
			return false
		}
		if seg != "*" && seg != topic[i] {
			return false
		}
	}
	return len(pattern) == len(topic)
}
