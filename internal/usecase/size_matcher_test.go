package usecase

import (
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stylefit/backend/internal/domain"
)

func testMatcher() *Matcher {
	return NewMatcher("velora", zerolog.Nop())
}

func topsChart() []domain.SizeChartEntry {
	return []domain.SizeChartEntry{
		{Name: "S", Measurements: map[string]domain.FlexString{"bust": "33-34", "waist": "25-26", "sleeves": "22"}},
		{Name: "M", Measurements: map[string]domain.FlexString{"bust": "35-36", "waist": "27-28", "sleeves": "23"}},
		{Name: "L", Measurements: map[string]domain.FlexString{"bust": "37-38", "waist": "29-30", "sleeves": "24"}},
	}
}

func findSize(t *testing.T, results []domain.SizeMatchResult, name string) domain.SizeMatchResult {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("size %q not in results", name)
	return domain.SizeMatchResult{}
}

func TestMatchSizesForCategory_Tops(t *testing.T) {
	m := testMatcher()

	t.Run("bust and waist fitted means no alteration", func(t *testing.T) {
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryTops, topsChart(),
			map[string]float64{"bust": 35.5, "waist": 27.5})
		got := findSize(t, results, "M")
		if got.FitType != domain.FitFitted {
			t.Errorf("FitType = %q, want fitted", got.FitType)
		}
		if got.AlterationRequired {
			t.Error("AlterationRequired = true, want false")
		}
		if got.SizeDifference != 0 {
			t.Errorf("SizeDifference = %v, want 0", got.SizeDifference)
		}
	})

	t.Run("bust fitted but waist not is fitted with alteration", func(t *testing.T) {
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryTops, topsChart(),
			map[string]float64{"bust": 35.5, "waist": 30})
		got := findSize(t, results, "M")
		if got.FitType != domain.FitFitted {
			t.Errorf("FitType = %q, want fitted", got.FitType)
		}
		if !got.AlterationRequired {
			t.Error("AlterationRequired = false, want true")
		}
	})

	t.Run("loose bust dominates", func(t *testing.T) {
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryTops, topsChart(),
			map[string]float64{"bust": 30, "waist": 27.5})
		got := findSize(t, results, "M")
		if got.FitType != domain.FitLoose {
			t.Errorf("FitType = %q, want loose", got.FitType)
		}
		if got.SizeDifference != 5 {
			t.Errorf("SizeDifference = %v, want 5", got.SizeDifference)
		}
	})

	t.Run("tight when above range and nothing loose", func(t *testing.T) {
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryTops, topsChart(),
			map[string]float64{"bust": 39, "waist": 31})
		got := findSize(t, results, "L")
		if got.FitType != domain.FitTight {
			t.Errorf("FitType = %q, want tight", got.FitType)
		}
		if !got.AlterationRequired {
			t.Error("AlterationRequired = false, want true")
		}
	})

	t.Run("sleeves are informational for ordinary brands", func(t *testing.T) {
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryTops, topsChart(),
			map[string]float64{"bust": 35.5, "waist": 27.5, "sleeves": 25})
		got := findSize(t, results, "M")
		if got.AlterationRequired {
			t.Error("AlterationRequired = true, want false (sleeves do not block)")
		}
		if got.AttributeDifferences["sleeves"].FitType != domain.FitTight {
			t.Errorf("sleeves fit = %q, want tight (still reported)", got.AttributeDifferences["sleeves"].FitType)
		}
	})

	t.Run("sleeve-strict brand requires fitted sleeves", func(t *testing.T) {
		results := m.MatchSizesForCategory(NewMatchCache(), "velora", domain.SubcategoryTops, topsChart(),
			map[string]float64{"bust": 35.5, "waist": 27.5, "sleeves": 25})
		got := findSize(t, results, "M")
		if got.FitType != domain.FitFitted {
			t.Errorf("FitType = %q, want fitted", got.FitType)
		}
		if !got.AlterationRequired {
			t.Error("AlterationRequired = false, want true for sleeve-strict brand")
		}
	})

	t.Run("sleeve-strict brand passes when sleeves fit", func(t *testing.T) {
		results := m.MatchSizesForCategory(NewMatchCache(), "velora", domain.SubcategoryTops, topsChart(),
			map[string]float64{"bust": 35.5, "waist": 27.5, "sleeves": 23})
		got := findSize(t, results, "M")
		if got.AlterationRequired {
			t.Error("AlterationRequired = true, want false")
		}
	})
}

func TestMatchSizesForCategory_Bottoms(t *testing.T) {
	m := testMatcher()
	chart := []domain.SizeChartEntry{
		{Name: "28", Measurements: map[string]domain.FlexString{"waist": "28-29", "hip": "38-39"}},
		{Name: "30", Measurements: map[string]domain.FlexString{"waist": "30-31", "hip": "40-41"}},
	}

	t.Run("waist and hip fitted means no alteration", func(t *testing.T) {
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryBottoms, chart,
			map[string]float64{"waist": 28.5, "hip": 38.5})
		got := findSize(t, results, "28")
		if got.FitType != domain.FitFitted || got.AlterationRequired {
			t.Errorf("got %q/alteration=%v, want fitted without alteration", got.FitType, got.AlterationRequired)
		}
	})

	t.Run("waist fitted but hip not requires alteration", func(t *testing.T) {
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryBottoms, chart,
			map[string]float64{"waist": 28.5, "hip": 42})
		got := findSize(t, results, "28")
		if got.FitType != domain.FitFitted || !got.AlterationRequired {
			t.Errorf("got %q/alteration=%v, want fitted with alteration", got.FitType, got.AlterationRequired)
		}
	})

	t.Run("aggregate difference sums waist and hip", func(t *testing.T) {
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryBottoms, chart,
			map[string]float64{"waist": 26, "hip": 37})
		got := findSize(t, results, "28")
		if got.FitType != domain.FitLoose {
			t.Errorf("FitType = %q, want loose", got.FitType)
		}
		if got.SizeDifference != 3 {
			t.Errorf("SizeDifference = %v, want 3 (2 waist + 1 hip)", got.SizeDifference)
		}
	})
}

func TestMatchSizesForCategory_AbsentAttributes(t *testing.T) {
	m := testMatcher()

	t.Run("attribute absent on both sides never blocks a fit", func(t *testing.T) {
		chart := []domain.SizeChartEntry{
			{Name: "S", Measurements: map[string]domain.FlexString{"bust": "33-34"}},
			{Name: "M", Measurements: map[string]domain.FlexString{"bust": "35-36"}},
		}
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryTops, chart,
			map[string]float64{"bust": 35.5})
		got := findSize(t, results, "M")
		if got.FitType != domain.FitFitted {
			t.Errorf("FitType = %q, want fitted", got.FitType)
		}
		if got.AlterationRequired {
			t.Error("AlterationRequired = true, want false (waist absent on both sides)")
		}
		if _, ok := got.AttributeDifferences["waist"]; ok {
			t.Error("waist present in attribute differences, want excluded")
		}
	})

	t.Run("below every row classifies as loose with positive difference", func(t *testing.T) {
		chart := []domain.SizeChartEntry{
			{Name: "S", Measurements: map[string]domain.FlexString{"bust": "33-34"}},
			{Name: "M", Measurements: map[string]domain.FlexString{"bust": "35-36"}},
		}
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryTops, chart,
			map[string]float64{"bust": 32})
		got := findSize(t, results, "S")
		if got.FitType != domain.FitLoose {
			t.Errorf("FitType = %q, want loose", got.FitType)
		}
		if got.SizeDifference <= 0 {
			t.Errorf("SizeDifference = %v, want positive", got.SizeDifference)
		}
	})

	t.Run("attribute absent on one side is unknown and forces alteration", func(t *testing.T) {
		chart := []domain.SizeChartEntry{
			{Name: "M", Measurements: map[string]domain.FlexString{"bust": "35-36", "waist": "27-28"}},
		}
		// User has no waist measurement but the chart does
		results := m.MatchSizesForCategory(NewMatchCache(), "novara", domain.SubcategoryTops, chart,
			map[string]float64{"bust": 35.5})
		got := findSize(t, results, "M")
		if got.FitType != domain.FitFitted {
			t.Errorf("FitType = %q, want fitted", got.FitType)
		}
		if !got.AlterationRequired {
			t.Error("AlterationRequired = false, want true (waist unknown)")
		}
		waist, ok := got.AttributeDifferences["waist"]
		if !ok {
			t.Fatal("waist missing from attribute differences")
		}
		if waist.FitType != domain.FitUnknown || waist.Difference != nil {
			t.Errorf("waist = %+v, want unknown fit with nil difference", waist)
		}
	})
}

func TestMatchSizesForCategory_Memoization(t *testing.T) {
	m := testMatcher()
	cache := NewMatchCache()
	user := map[string]float64{"bust": 35.5, "waist": 27.5}

	first := m.MatchSizesForCategory(cache, "novara", domain.SubcategoryTops, topsChart(), user)
	if cache.Computations != 1 {
		t.Fatalf("Computations = %d after first call, want 1", cache.Computations)
	}

	second := m.MatchSizesForCategory(cache, "novara", domain.SubcategoryTops, topsChart(), user)
	if cache.Computations != 1 {
		t.Errorf("Computations = %d after repeat, want 1 (served from cache)", cache.Computations)
	}
	if &first[0] != &second[0] {
		t.Error("repeat call returned a different slice, want the identical cached result")
	}

	m.MatchSizesForCategory(cache, "novara", domain.SubcategoryBottoms, topsChart(), user)
	if cache.Computations != 2 {
		t.Errorf("Computations = %d, want 2 (distinct subcategory key)", cache.Computations)
	}
}

func TestNormalizeSizeLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"M#1", "M"},
		{"28/32", "28"},
		{" L ", "L"},
		{"XS", "XS"},
		{"30/34#2", "30"},
	}
	for _, tt := range tests {
		if got := NormalizeSizeLabel(tt.label); got != tt.want {
			t.Errorf("NormalizeSizeLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestFindBestFitAcrossChart(t *testing.T) {
	chart := []domain.SizeChartEntry{
		{Name: "S", Measurements: map[string]domain.FlexString{"bust": "33-34"}},
		{Name: "M", Measurements: map[string]domain.FlexString{"bust": "35-36"}},
		{Name: "L", Measurements: map[string]domain.FlexString{"bust": "37-38"}},
	}
	allStocked := []domain.ProductSize{
		{Size: "S", InStock: true},
		{Size: "M", InStock: true},
		{Size: "L", InStock: true},
	}

	t.Run("perfect containment wins", func(t *testing.T) {
		got := FindBestFitAcrossChart(chart, 35.5, domain.FitFitted, domain.AttrBust, allStocked)
		if got == nil {
			t.Fatal("got nil")
		}
		if got.Entry.Name != "M" || !got.Fits || got.Score != 0 {
			t.Errorf("got %s fits=%v score=%v, want M true 0", got.Entry.Name, got.Fits, got.Score)
		}
	})

	t.Run("fitted has no fallback", func(t *testing.T) {
		got := FindBestFitAcrossChart(chart, 32, domain.FitFitted, domain.AttrBust, allStocked)
		if got == nil {
			t.Fatal("got nil")
		}
		if got.Fits {
			t.Error("Fits = true, want false")
		}
		if !math.IsInf(got.Score, 1) {
			t.Errorf("Score = %v, want +Inf", got.Score)
		}
	})

	t.Run("only stocked sizes are candidates", func(t *testing.T) {
		stocked := []domain.ProductSize{
			{Size: "S", InStock: true},
			{Size: "M", InStock: false},
			{Size: "L", InStock: true},
		}
		got := FindBestFitAcrossChart(chart, 35.5, domain.FitFitted, domain.AttrBust, stocked)
		if got == nil {
			t.Fatal("got nil")
		}
		if got.Entry.Name == "M" {
			t.Error("picked out-of-stock M")
		}
	})

	t.Run("label suffixes are stripped before matching", func(t *testing.T) {
		stocked := []domain.ProductSize{{Size: "M#1", InStock: true}}
		got := FindBestFitAcrossChart(chart, 35.5, domain.FitFitted, domain.AttrBust, stocked)
		if got == nil || got.Entry.Name != "M" {
			t.Fatalf("got %+v, want entry M", got)
		}
	})

	t.Run("tight prefers the largest size below the measurement", func(t *testing.T) {
		got := FindBestFitAcrossChart(chart, 36.5, domain.FitTight, domain.AttrBust, allStocked)
		if got == nil {
			t.Fatal("got nil")
		}
		if got.Entry.Name != "M" || !got.Fits {
			t.Errorf("got %s fits=%v, want M true", got.Entry.Name, got.Fits)
		}
	})

	t.Run("nil when no stocked size matches a chart row", func(t *testing.T) {
		stocked := []domain.ProductSize{{Size: "XXL", InStock: true}}
		if got := FindBestFitAcrossChart(chart, 35.5, domain.FitFitted, domain.AttrBust, stocked); got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})
}
