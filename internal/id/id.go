// Package id generates the opaque identifiers assigned to records at creation.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// New returns a prefixed NanoID, e.g. "book-V1StGXR8_Z5jdHi6B-myT".
// The prefix makes identifiers self-describing in logs and in the
// persisted collection.
func New(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustNew is New but panics when the system cannot produce random bytes.
// Used by the import paths, where an entropy failure should abort the batch.
func MustNew(prefix string) string {
	id, err := New(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
