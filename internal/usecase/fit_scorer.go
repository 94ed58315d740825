package usecase

import (
	"math"

	"github.com/stylefit/backend/internal/domain"
)

// ScoreAttribute classifies how one user measurement relates to one chart
// cell. When either side is absent or unparseable, the fit is unknown and
// alteration is required — absence is never treated as a fit.
//
// Range cells use inclusive containment. Single-value cells use exact
// equality with no tolerance band; that matches the reference behavior
// and is a possible future refinement, not a bug.
func ScoreAttribute(userValue *float64, cell domain.MeasurementCell) domain.AttributeFit {
	if userValue == nil || cell.IsEmpty() {
		return domain.AttributeFit{FitType: domain.FitUnknown, AlterationRequired: true}
	}
	user := *userValue

	if cell.Kind == domain.CellRange {
		lo, hi := cell.Min(), cell.Max()
		switch {
		case user >= lo && user <= hi:
			return fitResult(domain.FitFitted, 0, "")
		case user < lo:
			return fitResult(domain.FitLoose, lo-user, domain.DirectionIncrease)
		default:
			return fitResult(domain.FitTight, user-hi, domain.DirectionDecrease)
		}
	}

	// Single value (comma lists with other than two values score by their
	// smallest value)
	s := cell.Min()
	switch {
	case user == s:
		return fitResult(domain.FitFitted, 0, "")
	case user < s:
		return fitResult(domain.FitLoose, s-user, domain.DirectionIncrease)
	default:
		return fitResult(domain.FitTight, user-s, domain.DirectionDecrease)
	}
}

func fitResult(fit domain.FitType, diff float64, dir domain.Direction) domain.AttributeFit {
	return domain.AttributeFit{
		FitType:            fit,
		AlterationRequired: fit != domain.FitFitted,
		Difference:         &diff,
		Direction:          dir,
	}
}

// BestFitForFitType scores one chart cell against a user measurement for a
// desired fit type, for the best-size-across-the-chart query.
//
// fitted accepts only exact containment (score 0) and never falls back to
// a nearest neighbor: no containment means fits=false with score +Inf.
// tight prefers the closest chart value strictly below the user
// measurement; loose the closest strictly above. When no value lies on the
// preferred side, both fall back to the globally closest value and report
// fits=false.
func BestFitForFitType(user float64, cell domain.MeasurementCell, desired domain.FitType) (bool, float64) {
	if cell.IsEmpty() {
		return false, math.Inf(1)
	}

	switch desired {
	case domain.FitFitted:
		if cell.Kind == domain.CellRange {
			if user >= cell.Min() && user <= cell.Max() {
				return true, 0
			}
			return false, math.Inf(1)
		}
		for _, v := range cell.Values {
			if v == user {
				return true, 0
			}
		}
		return false, math.Inf(1)

	case domain.FitTight:
		return closestOnSide(user, cell.Values, func(v float64) bool { return v < user })

	case domain.FitLoose:
		return closestOnSide(user, cell.Values, func(v float64) bool { return v > user })
	}

	return false, math.Inf(1)
}

// closestOnSide picks the value closest to user among those satisfying
// prefer, falling back to the globally closest value (fits=false) when the
// preferred side is empty.
func closestOnSide(user float64, values []float64, prefer func(float64) bool) (bool, float64) {
	best := math.Inf(1)
	found := false
	for _, v := range values {
		if !prefer(v) {
			continue
		}
		if d := math.Abs(user - v); d < best {
			best = d
			found = true
		}
	}
	if found {
		return true, best
	}
	for _, v := range values {
		if d := math.Abs(user - v); d < best {
			best = d
		}
	}
	return false, best
}
