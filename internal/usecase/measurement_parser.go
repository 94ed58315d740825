package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/stylefit/backend/internal/domain"
)

// ParseRange parses a raw size-chart cell into an ascending list of numeric
// values. Cells arrive as a single number ("35"), a dash range ("35-36"),
// or a comma list ("35,36,37"), optionally wrapped in quotes. Non-numeric
// or empty input yields an empty list, which callers treat as "no data for
// this attribute".
func ParseRange(raw string) []float64 {
	cell := stripQuotes(strings.TrimSpace(raw))
	if cell == "" {
		return nil
	}

	switch {
	case strings.Contains(cell, "-"):
		// A dash cell must be exactly two endpoints; anything else is
		// unparseable rather than a partial range.
		parts := strings.SplitN(cell, "-", 2)
		lo, err1 := parseFloat(parts[0])
		hi, err2 := parseFloat(parts[1])
		if err1 != nil || err2 != nil {
			return nil
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return []float64{lo, hi}

	case strings.Contains(cell, ","):
		var values []float64
		for _, part := range strings.Split(cell, ",") {
			v, err := parseFloat(part)
			if err != nil {
				continue
			}
			values = append(values, v)
		}
		sort.Float64s(values)
		return values

	default:
		v, err := parseFloat(cell)
		if err != nil {
			return nil
		}
		return []float64{v}
	}
}

// ParseCell parses a raw cell into its tagged variant form
func ParseCell(raw string) domain.MeasurementCell {
	values := ParseRange(raw)
	switch len(values) {
	case 0:
		return domain.MeasurementCell{Kind: domain.CellEmpty}
	case 1:
		return domain.MeasurementCell{Kind: domain.CellSingle, Values: values}
	case 2:
		return domain.MeasurementCell{Kind: domain.CellRange, Values: values}
	default:
		return domain.MeasurementCell{Kind: domain.CellList, Values: values}
	}
}

// PrimaryValue returns the smallest value of a cell, used to sort chart
// rows by ascending size. ok is false when the cell is unparseable.
func PrimaryValue(raw string) (float64, bool) {
	values := ParseRange(raw)
	if len(values) == 0 {
		return 0, false
	}
	return values[0], true
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
