package domain

// Measurement units supported by user profiles and size charts
const (
	UnitCm   = "cm"
	UnitInch = "inch"
)

const cmPerInch = 2.54

// Measurement represents a single named body measurement with its unit
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// ValueIn converts the measurement value to the requested unit.
// Unknown units are returned unchanged.
func (m Measurement) ValueIn(unit string) float64 {
	if m.Unit == unit {
		return m.Value
	}
	switch {
	case m.Unit == UnitCm && unit == UnitInch:
		return m.Value / cmPerInch
	case m.Unit == UnitInch && unit == UnitCm:
		return m.Value * cmPerInch
	}
	return m.Value
}

// Body measurement attribute keys used by size charts and user profiles
const (
	AttrBust    = "bust"
	AttrWaist   = "waist"
	AttrHip     = "hip"
	AttrSleeves = "sleeves"
)

// FitType classifies how a garment size relates to a body measurement
type FitType string

const (
	FitFitted  FitType = "fitted"
	FitTight   FitType = "tight"
	FitLoose   FitType = "loose"
	FitUnknown FitType = ""
)

// ValidFitType reports whether s is one of the three concrete fit types
func ValidFitType(s string) bool {
	switch FitType(s) {
	case FitFitted, FitTight, FitLoose:
		return true
	}
	return false
}

// Direction indicates which way a garment would need to change to fit
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// CellKind tags the shape of a parsed size-chart measurement cell
type CellKind int

const (
	CellEmpty CellKind = iota
	CellSingle
	CellRange
	CellList
)

// MeasurementCell is the parsed form of a raw size-chart cell. Raw cells
// arrive as a single number ("35"), a dash range ("35-36"), or a comma
// list ("35,36,37"); parsing them once into a closed variant lets scoring
// branch exhaustively instead of re-sniffing strings.
type MeasurementCell struct {
	Kind   CellKind
	Values []float64 // ascending
}

// IsEmpty reports whether the cell carried no parseable numeric data
func (c MeasurementCell) IsEmpty() bool {
	return c.Kind == CellEmpty || len(c.Values) == 0
}

// Min returns the smallest value in the cell. Callers must check IsEmpty first.
func (c MeasurementCell) Min() float64 {
	return c.Values[0]
}

// Max returns the largest value in the cell. Callers must check IsEmpty first.
func (c MeasurementCell) Max() float64 {
	return c.Values[len(c.Values)-1]
}
