package usecase

import (
	"testing"

	"github.com/stylefit/backend/internal/domain"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []float64
	}{
		{"single number", "35", []float64{35}},
		{"single decimal", "35.5", []float64{35.5}},
		{"dash range", "35-36", []float64{35, 36}},
		{"dash range reversed endpoints", "36-35", []float64{35, 36}},
		{"dash range with spaces", "35 - 36", []float64{35, 36}},
		{"comma list", "35,36,37", []float64{35, 36, 37}},
		{"comma list unsorted", "37,35,36", []float64{35, 36, 37}},
		{"comma list with junk token", "35,abc,37", []float64{35, 37}},
		{"quoted single", `"35"`, []float64{35}},
		{"quoted range", `"35-36"`, []float64{35, 36}},
		{"single-quoted", "'28'", []float64{28}},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"non-numeric", "n/a", nil},
		{"dash with bad endpoint", "35-x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRange(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseRange(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseRange(%q)[%d] = %v, want %v", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind domain.CellKind
	}{
		{"empty cell", "", domain.CellEmpty},
		{"unparseable cell", "one size", domain.CellEmpty},
		{"single cell", "35", domain.CellSingle},
		{"range cell", "35-36", domain.CellRange},
		{"two-value comma list is a range", "35,36", domain.CellRange},
		{"longer comma list", "35,36,37", domain.CellList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCell(tt.raw)
			if got.Kind != tt.kind {
				t.Errorf("ParseCell(%q).Kind = %v, want %v", tt.raw, got.Kind, tt.kind)
			}
		})
	}
}

func TestPrimaryValue(t *testing.T) {
	t.Run("returns minimum of range", func(t *testing.T) {
		v, ok := PrimaryValue("35-36")
		if !ok || v != 35 {
			t.Errorf("PrimaryValue(35-36) = %v, %v, want 35, true", v, ok)
		}
	})

	t.Run("returns minimum of list", func(t *testing.T) {
		v, ok := PrimaryValue("37,35,36")
		if !ok || v != 35 {
			t.Errorf("PrimaryValue(37,35,36) = %v, %v, want 35, true", v, ok)
		}
	})

	t.Run("not ok for unparseable cell", func(t *testing.T) {
		if _, ok := PrimaryValue("n/a"); ok {
			t.Error("PrimaryValue(n/a) ok = true, want false")
		}
	})
}
