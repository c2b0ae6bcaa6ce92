// Package json encodes and decodes vehicle collections as JSON arrays.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/carlot"
)

var _ carlot.Codec = (*Codec)(nil)

// Codec implements carlot.Codec for pretty-printed JSON arrays.
type Codec struct{}

// NewCodec returns a JSON codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Format returns carlot.FormatJSON.
func (c *Codec) Format() carlot.Format {
	return carlot.FormatJSON
}

// Encode writes vehicles as an array indented by two spaces. An empty
// collection encodes as [].
func (c *Codec) Encode(w io.Writer, vehicles []*carlot.Vehicle) error {
	if vehicles == nil {
		vehicles = []*carlot.Vehicle{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vehicles); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Decode reads an array of vehicles. Anything that does not decode into an
// array of vehicles is an EINVALID error.
func (c *Codec) Decode(r io.Reader) ([]*carlot.Vehicle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, carlot.Errorf(carlot.EINVALID, "invalid import: expected a JSON array of vehicles")
	}

	var vehicles []*carlot.Vehicle
	if err := json.Unmarshal(trimmed, &vehicles); err != nil {
		return nil, carlot.Errorf(carlot.EINVALID, "invalid import: %v", err)
	}

	kept := vehicles[:0]
	for _, v := range vehicles {
		if v != nil {
			kept = append(kept, v)
		}
	}
	return kept, nil
}
