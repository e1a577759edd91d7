package engine

import (
	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
)

// CountryColumn is the header of the identifier column.
const CountryColumn = "country"

// Table holds the wide GDP table as an Arrow record: column 0 is the
// country, columns 1..N are contiguous years holding the raw cell text
// (null for empty cells). It is immutable once built and safe for
// concurrent reads.
type Table struct {
	record arrow.Record

	// Row-aligned copy of column 0 plus a lookup from country to its rows.
	rowCountries []string
	rowsByName   map[string][]int

	// Unique countries in table order.
	countries []string

	minYear int
	maxYear int
}

func (t *Table) MinYear() int { return t.minYear }
func (t *Table) MaxYear() int { return t.maxYear }

// NumRows is the number of data rows, duplicates included.
func (t *Table) NumRows() int { return len(t.rowCountries) }

// NumYears is the number of year columns.
func (t *Table) NumYears() int { return t.maxYear - t.minYear + 1 }

// Countries returns the distinct country names in table order.
func (t *Table) Countries() []string {
	out := make([]string, len(t.countries))
	copy(out, t.countries)
	return out
}

// HasCountry reports whether at least one row carries the name.
func (t *Table) HasCountry(name string) bool {
	_, ok := t.rowsByName[name]
	return ok
}

// Marks returns year labels every step years starting at MinYear, the
// tick positions of the year range control.
func (t *Table) Marks(step int) []int {
	if step <= 0 {
		return nil
	}
	marks := make([]int, 0, t.NumYears()/step+1)
	for y := t.minYear; y <= t.maxYear; y += step {
		marks = append(marks, y)
	}
	return marks
}

// yearColumn returns the cell column for a year inside [minYear, maxYear].
func (t *Table) yearColumn(year int) *array.String {
	return t.record.Column(1 + year - t.minYear).(*array.String)
}

// Release frees the Arrow buffers. The table must not be used afterwards.
func (t *Table) Release() {
	if t.record != nil {
		t.record.Release()
		t.record = nil
	}
}
