package mock

import (
	"io"

	"github.com/fwojciec/carlot"
)

var _ carlot.Codec = (*Codec)(nil)

// Codec is a mock implementation of carlot.Codec.
type Codec struct {
	FormatFn func() carlot.Format
	EncodeFn func(w io.Writer, vehicles []*carlot.Vehicle) error
	DecodeFn func(r io.Reader) ([]*carlot.Vehicle, error)
}

func (c *Codec) Format() carlot.Format {
	return c.FormatFn()
}

func (c *Codec) Encode(w io.Writer, vehicles []*carlot.Vehicle) error {
	return c.EncodeFn(w, vehicles)
}

func (c *Codec) Decode(r io.Reader) ([]*carlot.Vehicle, error) {
	return c.DecodeFn(r)
}
