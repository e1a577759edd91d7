package engine

import (
	"math"
	"sort"
	"strconv"

	apperrors "gdpdash/internal/errors"
	"gdpdash/internal/models"

	"github.com/apache/arrow/go/v18/arrow/array"
)

type groupKey struct {
	country string
	year    int
}

type meanAgg struct {
	sum float64
	n   int
}

// Query runs the chart pipeline for one selection:
//
//  1. keep year columns inside [StartYear, EndYear]
//  2. keep rows whose country is selected
//  3. melt each remaining cell into a (country, year, cell) record
//  4. coerce cells to numbers, unparseable text becomes missing
//  5. average per (country, year), skipping missing values
//  6. order by year; within a year by country
//
// Groups whose cells are all missing produce no record. An empty country
// selection is a valid query with an empty result.
func (t *Table) Query(sel models.Selection) ([]models.ChartRecord, error) {
	if err := t.ValidateRange(sel.StartYear, sel.EndYear); err != nil {
		return nil, err
	}

	out := make([]models.ChartRecord, 0)
	rows := t.selectRows(sel.Countries)
	if len(rows) == 0 {
		return out, nil
	}

	cells := len(rows) * (sel.EndYear - sel.StartYear + 1)
	groups := make(map[groupKey]*meanAgg, cells)
	keys := make([]groupKey, 0, cells)

	for year := sel.StartYear; year <= sel.EndYear; year++ {
		col := t.yearColumn(year)
		for _, row := range rows {
			key := groupKey{country: t.rowCountries[row], year: year}
			agg, ok := groups[key]
			if !ok {
				agg = &meanAgg{}
				groups[key] = agg
				keys = append(keys, key)
			}
			if v, ok := coerce(col, row); ok {
				agg.sum += v
				agg.n++
			}
		}
	}

	// Grouped order first (country, then year), then a stable pass on year
	// so countries keep that order inside each year.
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].country != keys[j].country {
			return keys[i].country < keys[j].country
		}
		return keys[i].year < keys[j].year
	})
	for _, key := range keys {
		agg := groups[key]
		if agg.n == 0 {
			continue
		}
		out = append(out, models.ChartRecord{
			Country:      key.country,
			Year:         key.year,
			GDPPerCapita: agg.sum / float64(agg.n),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	return out, nil
}

// ValidateRange rejects inverted ranges and bounds outside the table.
func (t *Table) ValidateRange(start, end int) error {
	if start > end || start < t.minYear || end > t.maxYear {
		return apperrors.NewInvalidYearRangeError(start, end, t.minYear, t.maxYear)
	}
	return nil
}

// selectRows returns the table rows of the selected countries in table
// order. Unknown names are ignored.
func (t *Table) selectRows(countries []string) []int {
	if len(countries) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		wanted[c] = struct{}{}
	}
	var rows []int
	for row, c := range t.rowCountries {
		if _, ok := wanted[c]; ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// coerce reads a cell as a number. Nulls, non-numeric placeholders, NaN
// and infinities are reported as missing.
func coerce(col *array.String, row int) (float64, bool) {
	if col.IsNull(row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(col.Value(row), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
