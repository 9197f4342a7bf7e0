package render

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Wrap splits s into fragments: the first holds up to first cells, the rest up to width cells
// Splits only on grapheme cluster boundaries; concatenating the fragments reproduces s
// A cluster wider than width is placed alone in its fragment so wrapping always progresses
// With width <= 0 everything after the first fragment is returned as one fragment
func Wrap(s string, width, first int) []string {
	head, rest := take(s, first)
	parts := []string{head}

	if width <= 0 {
		if rest != "" {
			parts = append(parts, rest)
		}
		return parts
	}

	for rest != "" {
		frag, tail := take(rest, width)
		if frag == "" {
			// Single cluster wider than width
			frag, tail = firstCluster(rest)
		}
		parts = append(parts, frag)
		rest = tail
	}
	return parts
}

// take returns the longest prefix of s fitting budget cells and the remainder
func take(s string, budget int) (string, string) {
	if budget <= 0 {
		return "", s
	}

	used := 0
	end := 0
	state := -1
	remaining := s
	for remaining != "" {
		var cluster string
		cluster, remaining, _, state = uniseg.FirstGraphemeClusterInString(remaining, state)
		w := runewidth.StringWidth(cluster)
		if used+w > budget {
			break
		}
		used += w
		end += len(cluster)
	}
	return s[:end], s[end:]
}

func firstCluster(s string) (string, string) {
	cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster, rest
}

// Width returns the number of terminal cells s occupies
func Width(s string) int {
	total := 0
	state := -1
	for s != "" {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		total += runewidth.StringWidth(cluster)
	}
	return total
}
