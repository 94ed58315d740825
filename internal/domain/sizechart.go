package domain

import (
	"encoding/json"
	"strconv"
)

// Chart lookup buckets. Subcategories fold into one of these, with a
// per-brand override that keeps female denim on its own chart slice.
const (
	CategoryKeyTops    = "tops"
	CategoryKeyBottoms = "bottoms"
	CategoryKeyDenim   = "denim"
	CategoryKeyDefault = "default"
)

// FlexString absorbs JSON values that upstream chart data encodes
// inconsistently as string, number, or null.
type FlexString string

// UnmarshalJSON accepts strings, numbers, and null
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// MarshalJSON emits the underlying string, or null when empty
func (f FlexString) MarshalJSON() ([]byte, error) {
	if f == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(f))
}

// SizeChartEntry is one row of a brand size chart. Measurement cells are
// raw strings; MeasurementParser turns them into MeasurementCell values.
type SizeChartEntry struct {
	Name           string                `json:"name"`
	NumericalSize  FlexString            `json:"numericalSize,omitempty"`
	NumericalValue FlexString            `json:"numericalValue,omitempty"`
	Measurements   map[string]FlexString `json:"measurements"`
}

// Cell returns the raw measurement cell for an attribute, empty string if absent
func (e SizeChartEntry) Cell(attr string) string {
	return string(e.Measurements[attr])
}

// CategoryCharts maps a categoryKey (tops/bottoms/denim/default) to chart rows
type CategoryCharts map[string][]SizeChartEntry

// SizeChart is one brand's chart for one unit, keyed by gender with an
// optional "default" gender slice.
type SizeChart map[string]CategoryCharts
