package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "gdpdash/internal/errors"
	"gdpdash/internal/logger"
)

func TestLoadTable(t *testing.T) {
	csvContent := []byte(`country,1800,1801,1802
Afghanistan,599,599,600
"Congo, Dem. Rep.",N/A,1.2k,
Norway, 1000 ,1010,1020
`)

	tmpFile, err := os.CreateTemp("", "gdp_pcap_*.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(csvContent); err != nil {
		t.Fatal(err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(tmpFile.Name(), logger.NewTestLogger(t))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	defer table.Release()

	if table.NumRows() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.NumRows())
	}
	if table.MinYear() != 1800 || table.MaxYear() != 1802 {
		t.Errorf("Expected years 1800..1802, got %d..%d", table.MinYear(), table.MaxYear())
	}
	if table.NumYears() != 3 {
		t.Errorf("Expected 3 year columns, got %d", table.NumYears())
	}

	want := []string{"Afghanistan", "Congo, Dem. Rep.", "Norway"}
	got := table.Countries()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Countries: expected %v, got %v", want, got)
	}

	// Cells keep their raw text, trimmed; empty cells are null.
	col := table.yearColumn(1800)
	if col.Value(2) != "1000" {
		t.Errorf("Norway 1800: expected trimmed \"1000\", got %q", col.Value(2))
	}
	if col.Value(1) != "N/A" {
		t.Errorf("Congo 1800: expected raw \"N/A\", got %q", col.Value(1))
	}
	if !table.yearColumn(1802).IsNull(1) {
		t.Error("Congo 1802: expected null for empty cell")
	}
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.csv"), logger.NewNoOpLogger())
	if !errors.Is(err, apperrors.ErrDataLoadFailed) {
		t.Fatalf("expected DATA_LOAD_FAILED, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestReadTable_Malformed(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "empty", csv: ""},
		{name: "no year columns", csv: "country\nA\n"},
		{name: "wrong first column", csv: "name,2000\nA,1\n"},
		{name: "non-integer year", csv: "country,2000,abc\nA,1,2\n"},
		{name: "gap in years", csv: "country,2000,2002\nA,1,2\n"},
		{name: "descending years", csv: "country,2001,2000\nA,1,2\n"},
		{name: "short row", csv: "country,2000,2001\nA,1\n"},
		{name: "empty country", csv: "country,2000\n,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tt.csv), logger.NewNoOpLogger())
			if !errors.Is(err, apperrors.ErrMalformedTable) {
				t.Fatalf("expected MALFORMED_TABLE, got %v", err)
			}
		})
	}
}

func TestReadTable_BOMAndDuplicates(t *testing.T) {
	csv := "\ufeffcountry,2000\nA,1\nB,2\nA,3\n"
	table, err := ReadTable(strings.NewReader(csv), logger.NewTestLogger(t))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	defer table.Release()

	if table.NumRows() != 3 {
		t.Errorf("Expected 3 rows, got %d", table.NumRows())
	}
	if got := table.Countries(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Expected distinct countries [A B], got %v", got)
	}
	if !table.HasCountry("A") || table.HasCountry("C") {
		t.Error("HasCountry mismatch")
	}
}

func TestMarks(t *testing.T) {
	table, err := ReadTable(strings.NewReader("country,1800,1801,1802,1803,1804\nA,1,2,3,4,5\n"), logger.NewNoOpLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer table.Release()

	got := table.Marks(2)
	want := []int{1800, 1802, 1804}
	if len(got) != len(want) {
		t.Fatalf("Marks(2): expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Marks(2)[%d]: expected %d, got %d", i, want[i], got[i])
		}
	}
	if table.Marks(0) != nil {
		t.Error("Marks(0) should be nil")
	}
}
