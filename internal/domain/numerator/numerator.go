// Package numerator derives human-readable reference numbers for
// documents. Numbers are suggestions, not enforced unique keys: the
// sequence is recomputed from the current store count on every call,
// and the caller may override the value before committing.
package numerator

import (
	"fmt"
	"strings"
)

// Config controls the reference format for one document type.
type Config struct {
	// Prefix is the fixed literal per document type (e.g. "REC", "ISS").
	Prefix string

	// Width is the minimum number of digits; the sequence grows past
	// it unpadded (REC-9999 is followed by REC-10000).
	Width int
}

// DefaultConfig returns the standard 4-digit format for a prefix.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix: prefix,
		Width:  4,
	}
}

// Format renders "<PREFIX>-<seq>" with the sequence zero-padded to Width.
func (c Config) Format(seq int) string {
	var b strings.Builder
	b.WriteString(c.Prefix)
	b.WriteByte('-')
	fmt.Fprintf(&b, "%0*d", c.Width, seq)
	return b.String()
}

// Next returns the suggestion for a store that already holds count
// documents of the type: seq = count + 1. Calling it again without
// committing a document yields the same suggestion.
func (c Config) Next(count int) string {
	return c.Format(count + 1)
}
