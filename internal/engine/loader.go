package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "gdpdash/internal/errors"
	"gdpdash/internal/logger"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

const utf8BOM = "\ufeff"

// LoadTable reads the wide-format GDP CSV at path.
func LoadTable(path string, log logger.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDataLoadFailedError(path, err)
	}
	defer f.Close()

	start := time.Now()
	t, err := ReadTable(f, log)
	if err != nil {
		return nil, err
	}

	log.Info("table loaded", map[string]interface{}{
		"path":      path,
		"rows":      t.NumRows(),
		"countries": len(t.countries),
		"min_year":  t.minYear,
		"max_year":  t.maxYear,
		"took":      time.Since(start).String(),
	})
	return t, nil
}

// ReadTable parses a wide-format table: a "country" column followed by one
// column per contiguous year.
func ReadTable(r io.Reader, log logger.Logger) (*Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewMalformedTableError("file is empty")
	}
	if err != nil {
		return nil, apperrors.NewMalformedTableError(fmt.Sprintf("reading header: %v", err))
	}
	minYear, maxYear, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, 0, len(header))
	fields = append(fields, arrow.Field{Name: CountryColumn, Type: arrow.BinaryTypes.String})
	for y := minYear; y <= maxYear; y++ {
		fields = append(fields, arrow.Field{Name: strconv.Itoa(y), Type: arrow.BinaryTypes.String, Nullable: true})
	}
	schema := arrow.NewSchema(fields, nil)

	rb := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer rb.Release()

	t := &Table{
		rowsByName: make(map[string][]int),
		minYear:    minYear,
		maxYear:    maxYear,
	}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewMalformedTableError(err.Error())
		}

		country := strings.TrimSpace(row[0])
		if country == "" {
			return nil, apperrors.NewMalformedTableError(fmt.Sprintf("line %d: empty country name", line))
		}

		rowIdx := len(t.rowCountries)
		if prev, dup := t.rowsByName[country]; dup {
			log.Warn("duplicate country row, values will be averaged", map[string]interface{}{
				"country": country,
				"line":    line,
				"rows":    len(prev) + 1,
			})
		} else {
			t.countries = append(t.countries, country)
		}
		t.rowsByName[country] = append(t.rowsByName[country], rowIdx)
		t.rowCountries = append(t.rowCountries, country)

		rb.Field(0).(*array.StringBuilder).Append(country)
		for j := 1; j < len(row); j++ {
			b := rb.Field(j).(*array.StringBuilder)
			if cell := strings.TrimSpace(row[j]); cell != "" {
				b.Append(cell)
			} else {
				b.AppendNull()
			}
		}
	}

	t.record = rb.NewRecord()
	return t, nil
}

// parseHeader validates the header row and returns the year bounds.
func parseHeader(header []string) (int, int, error) {
	if len(header) < 2 {
		return 0, 0, apperrors.NewMalformedTableError("expected a country column and at least one year column")
	}
	first := strings.TrimSpace(strings.TrimPrefix(header[0], utf8BOM))
	if first != CountryColumn {
		return 0, 0, apperrors.NewMalformedTableError(fmt.Sprintf("first column must be %q, got %q", CountryColumn, first))
	}

	minYear, err := strconv.Atoi(strings.TrimSpace(header[1]))
	if err != nil {
		return 0, 0, apperrors.NewMalformedTableError(fmt.Sprintf("column 2: year label %q is not an integer", header[1]))
	}
	for j := 2; j < len(header); j++ {
		y, err := strconv.Atoi(strings.TrimSpace(header[j]))
		if err != nil {
			return 0, 0, apperrors.NewMalformedTableError(fmt.Sprintf("column %d: year label %q is not an integer", j+1, header[j]))
		}
		if want := minYear + j - 1; y != want {
			return 0, 0, apperrors.NewMalformedTableError(fmt.Sprintf("column %d: year labels must be contiguous, expected %d got %d", j+1, want, y))
		}
	}
	return minYear, minYear + len(header) - 2, nil
}
