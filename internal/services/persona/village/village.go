// Package village serves the town code → village and residents' committee
// name corpus used to make street addresses look real.
package village

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Corpus is a read-only town code → raw committee names table.
type Corpus struct {
	byTown map[string][]string
}

// New wraps an already decoded table.
func New(byTown map[string][]string) *Corpus {
	return &Corpus{byTown: byTown}
}

// DecodeGzip parses a gzip-compressed JSON object of town code → [name].
func DecodeGzip(raw []byte) (*Corpus, error) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open village corpus: %w", err)
	}
	defer zr.Close()
	return Decode(zr)
}

// Decode parses an uncompressed JSON village corpus stream.
func Decode(r io.Reader) (*Corpus, error) {
	var byTown map[string][]string
	if err := json.NewDecoder(r).Decode(&byTown); err != nil {
		return nil, fmt.Errorf("decode village corpus: %w", err)
	}
	return New(byTown), nil
}

// Names returns the raw names recorded for a town code. The slice is
// shared and must not be modified.
func (c *Corpus) Names(townCode string) []string {
	if c == nil || townCode == "" {
		return nil
	}
	return c.byTown[townCode]
}

// Towns reports how many towns have names.
func (c *Corpus) Towns() int {
	if c == nil {
		return 0
	}
	return len(c.byTown)
}
