// Package csv encodes and decodes vehicle collections as CSV.
package csv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/carlot"
)

var _ carlot.Codec = (*Codec)(nil)

// Header is the column order written by Encode.
var Header = []string{
	"ID", "Title", "Price", "Year", "Make", "Model", "Mileage",
	"Source", "URL", "Location", "Scraped At",
}

// timeFormat is ISO-8601 in UTC with millisecond precision.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Codec implements carlot.Codec for CSV.
type Codec struct{}

// NewCodec returns a CSV codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Format returns carlot.FormatCSV.
func (c *Codec) Format() carlot.Format {
	return carlot.FormatCSV
}

// Encode writes a header row and one row per vehicle. Every cell is quoted
// and embedded quotes are doubled; missing numbers are empty cells.
func (c *Codec) Encode(w io.Writer, vehicles []*carlot.Vehicle) error {
	bw := bufio.NewWriter(w)

	writeRow(bw, Header)
	for _, v := range vehicles {
		writeRow(bw, []string{
			v.ID,
			v.Title,
			formatInt(v.Price),
			formatInt(v.Year),
			v.Make,
			v.Model,
			formatInt(v.Mileage),
			v.Source,
			v.URL,
			v.Location,
			v.ScrapedAt.UTC().Format(timeFormat),
		})
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Decode reads vehicles from CSV with a header row. Headers are matched
// case-insensitively with spaces removed, so "Scraped At" and "scrapedat"
// name the same column. Unknown columns are ignored. Number cells that are
// not integers become nil, and a missing or unparsable Scraped At leaves
// the time zero.
func (c *Codec) Decode(r io.Reader) ([]*carlot.Vehicle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, invalid(err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = headerKey(h)
	}

	var vehicles []*carlot.Vehicle
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, invalid(err)
		}
		if blank(record) {
			continue
		}

		v := &carlot.Vehicle{}
		for i, cell := range record {
			if i >= len(columns) {
				break
			}
			setField(v, columns[i], cell)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}

func setField(v *carlot.Vehicle, column, cell string) {
	switch column {
	case "id":
		v.ID = cell
	case "title":
		v.Title = cell
	case "price":
		v.Price = parseInt(cell)
	case "year":
		v.Year = parseInt(cell)
	case "make":
		v.Make = cell
	case "model":
		v.Model = cell
	case "mileage":
		v.Mileage = parseInt(cell)
	case "source":
		v.Source = cell
	case "url":
		v.URL = cell
	case "location":
		v.Location = cell
	case "scrapedat":
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(cell)); err == nil {
			v.ScrapedAt = t.UTC()
		}
	}
}

func writeRow(w *bufio.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteByte('\n')
}

func headerKey(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", ""))
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func parseInt(cell string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return nil
	}
	return &n
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func invalid(err error) error {
	return carlot.Errorf(carlot.EINVALID, "invalid import: %v", err)
}
