package carlot

import (
	"io"
	"strings"
)

// Format names an export/import file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat returns the format named by s, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", Errorf(EINVALID, "unsupported format %q", s)
}

// FormatForPath guesses a format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

// Codec encodes and decodes vehicle collections.
type Codec interface {
	// Format returns the format the codec handles.
	Format() Format

	// Encode writes vehicles to w.
	Encode(w io.Writer, vehicles []*Vehicle) error

	// Decode reads vehicles from r. Returns EINVALID for malformed input.
	Decode(r io.Reader) ([]*Vehicle, error)
}
