package primitives

import (
	"io"

	"github.com/google/uuid"
)

// GUID draws a version 4 UUID from r. A failed read yields the nil UUID
// string.
func GUID(r io.Reader) string {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return uuid.Nil.String()
	}
	return id.String()
}
