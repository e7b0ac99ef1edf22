//go:build property
// +build property

package extractor

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestExtractorProperties tests invariant properties of region extraction
func TestExtractorProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property 1: Matches are ordered, non-overlapping, and within bounds
	properties.Property("matches ordered and in bounds", prop.ForAll(
		func(src string) bool {
			matches := Extract(src)

			prev := 0
			for _, m := range matches {
				if m.Start < prev || m.End <= m.Start || m.End > len(src) {
					return false
				}
				prev = m.End
			}
			return true
		},
		gen.AnyString(),
	))

	// Property 2: FullExpression is exactly the source slice it claims
	properties.Property("full expression matches source slice", prop.ForAll(
		func(src string) bool {
			for _, m := range Extract(src) {
				if src[m.Start:m.End] != m.FullExpression {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	// Property 3: Every match is parenthesized and opens with markup
	properties.Property("matches are markup regions", prop.ForAll(
		func(src string) bool {
			for _, m := range Extract(src) {
				if !strings.HasPrefix(m.FullExpression, "(<") ||
					!strings.HasSuffix(m.FullExpression, ")") {
					return false
				}
				if !strings.HasPrefix(m.Content, "<") {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	// Property 4: Extraction never mutates and is deterministic
	properties.Property("extraction determinism", prop.ForAll(
		func(src string) bool {
			first := Extract(src)
			second := Extract(src)

			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
